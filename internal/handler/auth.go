package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"waterworks-backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	Service *service.AuthService
}

func (h AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/google", h.loginGoogle)
	r.Post("/auth/refresh", h.refresh)
}

func (h AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	res, err := h.Service.Register(r.Context(), service.RegisterInput{
		Email:    strings.ToLower(req.Email),
		FullName: req.FullName,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeAuthResponse(w, res)
}

func (h AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.Login(r.Context(), service.LoginInput{
		Email:    strings.ToLower(req.Email),
		Password: req.Password,
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeAuthResponse(w, res)
}

func (h AuthHandler) loginGoogle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken  string `json:"idToken"`
		Email    string `json:"email"`
		FullName string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.LoginWithToken(r.Context(), service.TokenLoginInput{
		IDToken:  req.IDToken,
		Email:    strings.ToLower(req.Email),
		FullName: req.FullName,
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeAuthResponse(w, res)
}

func (h AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	res, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeAuthResponse(w, res)
}

func writeAuthResponse(w http.ResponseWriter, res *service.AuthResult) {
	writeJSON(w, http.StatusOK, map[string]any{
		"token":        res.AccessToken,
		"refreshToken": res.RefreshToken,
		"expiresAt":    res.ExpiresAt.UTC().Format(time.RFC3339),
		"user": map[string]any{
			"id":    strconv.FormatInt(res.User.ID, 10),
			"name":  res.User.FullName,
			"email": res.User.Email,
			"role":  string(res.User.Role),
		},
	})
}
