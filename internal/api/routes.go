// Package api serves the clausebook catalog over HTTP so a browser-hosted
// add-in can fetch and resolve entities.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// NewRouter returns the HTTP handler for lib. A nil logger disables request
// logging.
func NewRouter(lib types.Library, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	h := &handler{lib: lib, logger: logger}

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", h.listCategories)
		r.Get("/entities", h.listEntities)
		r.Get("/entities/{id}", h.getEntity)
		r.Put("/entities/{id}", h.putEntity)
		r.Post("/entities/{id}/resolve", h.resolveEntity)
	})

	return r
}

type handler struct {
	lib    types.Library
	logger *zap.Logger
}
