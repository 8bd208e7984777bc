package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/clausebook/pkg/types"
)

// resolveRequest is the body of POST /api/entities/{id}/resolve.
type resolveRequest struct {
	Values map[string]string `json:"values"`
}

// resolveResponse carries the resolved text and the placeholders it still
// contains.
type resolveResponse struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Unresolved []string `json:"unresolved"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, types.Categories())
}

// listEntities filters by the category and q query parameters. Both may be
// given; the result is their intersection in registration order.
func (h *handler) listEntities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var category types.Category
	if raw := query.Get("category"); raw != "" {
		c, err := types.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		category = c
	}

	var entities []types.Entity
	if category != "" {
		entities = h.lib.ListByCategory(category)
	} else {
		entities = h.lib.Search(query.Get("q"))
	}
	if q := query.Get("q"); category != "" && q != "" {
		matched := make([]types.Entity, 0, len(entities))
		for _, e := range entities {
			if e.Matches(q) {
				matched = append(matched, e)
			}
		}
		entities = matched
	}
	writeJSON(w, http.StatusOK, entities)
}

func (h *handler) getEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.lib.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, types.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// putEntity registers the body as an entity. The id in the path wins over
// any id in the body, and LastUpdated is always stamped by the library.
func (h *handler) putEntity(w http.ResponseWriter, r *http.Request) {
	var e types.Entity
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e.ID = chi.URLParam(r, "id")
	e.LastUpdated = time.Time{}
	if strings.TrimSpace(e.Name) == "" {
		writeError(w, http.StatusBadRequest, types.ErrInvalidName)
		return
	}

	if err := h.lib.Register(e); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, types.ErrInvalidCategory) || errors.Is(err, types.ErrInvalidID) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error("registering entity", zap.String("id", e.ID), zap.Error(err))
		}
		writeError(w, status, err)
		return
	}

	stored, _ := h.lib.Get(e.ID)
	writeJSON(w, http.StatusOK, stored)
}

func (h *handler) resolveEntity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, ok := h.lib.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, types.ErrNotFound)
		return
	}

	var req resolveRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	text := types.ResolvePlaceholders(e, req.Values)
	writeJSON(w, http.StatusOK, resolveResponse{
		ID:         e.ID,
		Text:       text,
		Unresolved: types.Unresolved(text),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
