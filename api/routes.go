package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes registers the read-only routes used by the site.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/health", handlers.homeHandler.health())
	r.Get("/home", handlers.homeHandler.getHome())

	r.Get("/posts", handlers.postHandler.getPublishedPosts())
	r.Get("/posts/{slug}", handlers.postHandler.getPublishedPost())

	r.Get("/banners", handlers.bannerHandler.listPublic())
	r.Get("/page-banners/{page}", handlers.siteHandler.getPageBanner())
	r.Get("/events", handlers.eventHandler.listPublic())
	r.Get("/testimonials", handlers.testimonialHandler.listPublic())
	r.Get("/departments", handlers.siteHandler.getDepartments())
	r.Get("/departments/{id}", handlers.siteHandler.getDepartment())
	r.Get("/departments/{id}/members", handlers.siteHandler.getDepartmentMembers())
	r.Get("/gallery", handlers.galleryHandler.listPublic())
	r.Get("/about-cover", handlers.aboutCoverHandler.get())
	r.Get("/financials", handlers.financialHandler.get())
	r.Get("/settings", handlers.settingsHandler.get())

	r.Post("/auth/login", handlers.authHandler.login())
	r.Post("/auth/refresh", handlers.authHandler.refresh())
	r.Post("/auth/logout", handlers.authHandler.logout())
}

// setupAdminRoutes sets up the admin panel routes behind authentication
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Get("/me", handlers.authHandler.me())

		// Post authoring
		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Post("/posts", handlers.postHandler.createPost())
		r.Post("/posts/validate", handlers.postHandler.validatePost())
		r.Get("/posts/{postID}", handlers.postHandler.getPost())
		r.Put("/posts/{postID}", handlers.postHandler.updatePost())
		r.Delete("/posts/{postID}", handlers.postHandler.deletePost())
		r.Get("/posts/{postID}/related-candidates", handlers.postHandler.getRelatedCandidates())
		r.Post("/slug", handlers.postHandler.generateSlug())

		mountCrud(r, "/banners", handlers.bannerHandler)
		mountCrud(r, "/page-banners", handlers.pageBannerHandler)
		mountCrud(r, "/events", handlers.eventHandler)
		mountCrud(r, "/testimonials", handlers.testimonialHandler)
		mountCrud(r, "/departments", handlers.departmentHandler)
		mountCrud(r, "/department-members", handlers.memberHandler)
		mountCrud(r, "/gallery", handlers.galleryHandler)

		r.Get("/about-cover", handlers.aboutCoverHandler.get())
		r.Put("/about-cover", handlers.aboutCoverHandler.put())
		r.Get("/financials", handlers.financialHandler.get())
		r.Put("/financials", handlers.financialHandler.put())
		r.Get("/settings", handlers.settingsHandler.get())
		r.Put("/settings", handlers.settingsHandler.put())

		r.Post("/uploads", handlers.uploadHandler.uploadImage())
	})
}

func mountCrud[T any, PT entityRow[T]](r chi.Router, path string, h crudHandler[T, PT]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", h.listAll())
		r.Post("/", h.create())
		r.Get("/{id}", h.get())
		r.Put("/{id}", h.update())
		r.Delete("/{id}", h.delete())
	})
}
