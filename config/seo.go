package config

import "github.com/igreja-site/cms-backend/content"

// SEOThresholds reads the advisory SEO bounds, keeping the content package
// defaults for anything not configured.
func SEOThresholds(c map[string]string) content.Thresholds {
	d := content.DefaultThresholds()
	return content.Thresholds{
		TitleMin:           GetInt(c, "SEO_TITLE_MIN", d.TitleMin),
		TitleMax:           GetInt(c, "SEO_TITLE_MAX", d.TitleMax),
		DescriptionMin:     GetInt(c, "SEO_DESCRIPTION_MIN", d.DescriptionMin),
		DescriptionMax:     GetInt(c, "SEO_DESCRIPTION_MAX", d.DescriptionMax),
		MetaTitleMax:       GetInt(c, "SEO_META_TITLE_MAX", d.MetaTitleMax),
		MetaDescriptionMax: GetInt(c, "SEO_META_DESCRIPTION_MAX", d.MetaDescriptionMax),
		MaxKeywords:        GetInt(c, "SEO_MAX_KEYWORDS", d.MaxKeywords),
		MinWords:           GetInt(c, "CONTENT_MIN_WORDS", d.MinWords),
		ThinWords:          GetInt(c, "CONTENT_THIN_WORDS", d.ThinWords),
	}
}
