package api

import "github.com/igreja-site/cms-backend/models"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler   postHandler
	authHandler   authHandler
	uploadHandler uploadHandler
	homeHandler   homeHandler
	siteHandler   siteHandler

	bannerHandler      crudHandler[models.Banner, *models.Banner]
	pageBannerHandler  crudHandler[models.PageBanner, *models.PageBanner]
	eventHandler       crudHandler[models.Event, *models.Event]
	testimonialHandler crudHandler[models.Testimonial, *models.Testimonial]
	departmentHandler  crudHandler[models.Department, *models.Department]
	memberHandler      crudHandler[models.DepartmentMember, *models.DepartmentMember]
	galleryHandler     crudHandler[models.GalleryLink, *models.GalleryLink]

	aboutCoverHandler singletonHandler[models.AboutPageCover, *models.AboutPageCover]
	financialHandler  singletonHandler[models.Financial, *models.Financial]
	settingsHandler   singletonHandler[models.SiteSettings, *models.SiteSettings]
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
