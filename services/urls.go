package services

import (
	"fmt"
	"strings"

	"github.com/igreja-site/cms-backend/config"
	"github.com/igreja-site/cms-backend/models"
)

// GetBaseURL returns the public site address, SITE_BASE_URL, falling back to
// BASE_URL.
func GetBaseURL(cfg map[string]string) string {
	if baseURL := config.GetString(cfg, "SITE_BASE_URL", ""); baseURL != "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	return strings.TrimSuffix(config.GetString(cfg, "BASE_URL", ""), "/")
}

// BuildPostURL returns the public page of a post: /blog/{slug} for blog
// posts and /estudos/{slug} for studies. Posts without a slug are reached by
// id. An empty baseURL yields a site-relative path.
func BuildPostURL(baseURL string, post models.Post) string {
	section := "blog"
	if post.Type == models.PostTypeStudy {
		section = "estudos"
	}
	ref := post.ID.String()
	if post.Slug != nil && *post.Slug != "" {
		ref = *post.Slug
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), section, ref)
}
