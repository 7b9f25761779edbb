package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hugh/staffhub/internal/api/dto"
	"github.com/hugh/staffhub/internal/api/middleware"
	"github.com/hugh/staffhub/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
}

func NewAuthHandler(authService auth.Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Validation failed", Details: details})
		return
	}

	result, err := h.authService.Register(r.Context(), auth.RegisterInput{
		OrgName:   req.OrgName,
		AdminName: req.AdminName,
		Email:     req.Email,
		Password:  req.Password,
	})

	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Email already registered"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Registration failed"})
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Message: "Organisation created successfully",
		Token:   result.Token,
		User: dto.UserDTO{
			ID:               result.User.ID.String(),
			Name:             result.User.Name,
			Email:            result.User.Email,
			OrganisationID:   result.User.OrganisationID.String(),
			OrganisationName: result.User.Organisation.Name,
		},
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Validation failed", Details: details})
		return
	}

	result, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		// Same body for unknown email and wrong password.
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Login failed"})
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		Token:   result.Token,
		User: dto.UserDTO{
			ID:               result.User.ID.String(),
			Name:             result.User.Name,
			Email:            result.User.Email,
			OrganisationID:   result.User.OrganisationID.String(),
			OrganisationName: result.User.Organisation.Name,
		},
	})
}

// Logout handles POST /api/auth/logout. It records the event only; the
// token stays valid until its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	h.authService.Logout(r.Context(), identity)

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Logout successful"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
