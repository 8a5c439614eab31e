package api

import (
	"time"

	"github.com/igreja-site/cms-backend/database"
	"github.com/igreja-site/cms-backend/models"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, svc Services, baseURL string, secureCookie bool, startupTime time.Time) *routeHandlers {
	// a nil *MediaService must not reach the handler as a non-nil interface
	var media imageUploader
	if svc.Media != nil {
		media = svc.Media
	}

	return &routeHandlers{
		postHandler:   newPostHandler(db.PostRepo(), svc.Posts, baseURL),
		authHandler:   newAuthHandler(svc.Auth, secureCookie),
		uploadHandler: newUploadHandler(media),
		homeHandler:   newHomeHandler(svc.Home, db, startupTime),
		siteHandler:   newSiteHandler(db.DepartmentRepo(), db.DepartmentMemberRepo(), db.PageBannerRepo()),

		bannerHandler:      newCrudHandler[models.Banner]("banner", db.BannerRepo(), map[string]any{"active": true}),
		pageBannerHandler:  newCrudHandler[models.PageBanner]("page banner", db.PageBannerRepo(), nil),
		eventHandler:       newCrudHandler[models.Event]("event", db.EventRepo(), map[string]any{"published": true}),
		testimonialHandler: newCrudHandler[models.Testimonial]("testimonial", db.TestimonialRepo(), map[string]any{"approved": true}),
		departmentHandler:  newCrudHandler[models.Department]("department", db.DepartmentRepo(), nil),
		memberHandler:      newCrudHandler[models.DepartmentMember]("department member", db.DepartmentMemberRepo(), nil),
		galleryHandler:     newCrudHandler[models.GalleryLink]("gallery link", db.GalleryLinkRepo(), nil),

		aboutCoverHandler: newSingletonHandler[models.AboutPageCover]("about cover", db.AboutCoverRepo()),
		financialHandler:  newSingletonHandler[models.Financial]("financial", db.FinancialRepo()),
		settingsHandler:   newSingletonHandler[models.SiteSettings]("site settings", db.SiteSettingsRepo()),
	}
}
