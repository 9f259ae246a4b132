package handlers

import (
	"net/http"

	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
	"github.com/rs/zerolog/log"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login verifies credentials and returns a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	log.Info().Str("username", resp.Username).Str("role", string(resp.Role)).Msg("Staff logged in")
	respondJSON(w, http.StatusOK, resp)
}

// CreateStaff registers a staff member (admin only)
func (h *AuthHandler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string      `json:"username"`
		FullName string      `json:"fullname"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	staff, err := h.authService.CreateStaff(r.Context(), req.Username, req.FullName, req.Password, req.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, staff)
}

// ListDoctors returns active doctors for assignment pickers
func (h *AuthHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.authService.ListDoctors(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, doctors)
}
