package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// public routes, attributed to the visitor session when there is one
	router.Group(func(r chi.Router) {
		r.Use(h.withSessionUser)

		r.Get("/forms/{pageKey}", h.getForm)
		r.Post("/forms/{pageKey}/submit", h.submit)

		r.Get("/content/{pageKey}", h.getContent)
		r.Get("/content/{pageKey}/fields", h.getContentFields)

		r.Get("/auth/google", h.googleSignIn)
		r.Get("/auth/google/callback", h.googleCallback)
		r.Get("/auth/me", h.me)
		r.Post("/auth/logout", h.logout)

		r.Get("/api/version/", h.getServerVersion)
		r.Post("/api/admin/login", h.adminLogin)
	})

	router.Get(uploadsPattern, h.serveUploads())

	// the first admin registers without a token
	router.With(h.registrationAuth).Post("/api/admin/register", h.adminRegister)

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.adminAuth)

		r.Get("/forms", h.listForms)
		r.Put("/forms/{pageKey}", h.saveForm)
		r.Delete("/forms/{pageKey}", h.deleteForm)
		r.Get("/forms/{pageKey}/submissions", h.listSubmissions)

		r.Put("/content/{pageKey}/{locale}", h.saveContent)
		r.Patch("/content/{pageKey}/{locale}", h.updateContentField)

		r.Post("/uploads", h.upload)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
