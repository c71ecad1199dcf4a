package handler

import (
	"net/http"

	"waterworks-backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type LocationHandler struct {
	Repo repository.LocationRepository
}

func (h LocationHandler) RegisterRoutes(r chi.Router) {
	r.Get("/locations", h.list)
}

func (h LocationHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	names := make([]string, 0, len(items))
	for _, loc := range items {
		names = append(names, loc.Name)
	}
	writeJSON(w, http.StatusOK, names)
}
