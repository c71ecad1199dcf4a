package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/repository"
	"waterworks-backend/internal/server/authctx"
	"waterworks-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// UserAdminHandler lets administrators provision and review accounts.
type UserAdminHandler struct {
	Service *service.AuthService
	Users   repository.UserRepository
}

func (h UserAdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Post("/users", h.create)
}

func (h UserAdminHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, u := range items {
		resp = append(resp, map[string]any{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.FullName,
			"role":      string(u.Role),
			"createdAt": u.CreatedAt,
			"createdBy": u.CreatedBy,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h UserAdminHandler) create(w http.ResponseWriter, r *http.Request) {
	user := authctx.FromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	role := domain.UserRole(req.Role)
	switch role {
	case domain.RoleAdmin, domain.RoleUser, domain.RoleReader, "":
	default:
		writeError(w, http.StatusBadRequest, "invalid role")
		return
	}
	created, err := h.Service.CreateAccount(r.Context(), service.CreateAccountInput{
		Email:    strings.ToLower(req.Email),
		FullName: req.FullName,
		Password: req.Password,
		Role:     role,
	}, user.Actor())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":    created.ID,
		"email": created.Email,
		"name":  created.FullName,
		"role":  string(created.Role),
	})
}
