package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hugh/staffhub/internal/api/dto"
	"github.com/hugh/staffhub/internal/api/middleware"
	"github.com/hugh/staffhub/internal/directory"
)

type TeamHandler struct {
	service *directory.TeamService
}

func NewTeamHandler(service *directory.TeamService) *TeamHandler {
	return &TeamHandler{service: service}
}

// List handles GET /api/teams
func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	teams, err := h.service.List(r.Context(), identity)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list teams"})
		return
	}

	writeJSON(w, http.StatusOK, teams)
}

// Get handles GET /api/teams/{id}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid team ID"})
		return
	}

	detail, err := h.service.Get(r.Context(), identity, teamID)
	if err != nil {
		if errors.Is(err, directory.ErrTeamNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Team not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to get team"})
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/teams
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Validation failed", Details: details})
		return
	}

	team, err := h.service.Create(r.Context(), identity, directory.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create team"})
		return
	}

	writeJSON(w, http.StatusCreated, team)
}

// Update handles PUT /api/teams/{id}
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid team ID"})
		return
	}

	var req dto.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	team, err := h.service.Update(r.Context(), identity, teamID, directory.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, directory.ErrTeamNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Team not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update team"})
		return
	}

	writeJSON(w, http.StatusOK, team)
}

// Delete handles DELETE /api/teams/{id}
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid team ID"})
		return
	}

	if err := h.service.Delete(r.Context(), identity, teamID); err != nil {
		if errors.Is(err, directory.ErrTeamNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Team not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete team"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Team deleted successfully"})
}

// Assign handles POST /api/teams/{id}/assign
func (h *TeamHandler) Assign(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid team ID"})
		return
	}

	employeeID, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}

	if err := h.service.Assign(r.Context(), identity, teamID, employeeID); err != nil {
		switch {
		case errors.Is(err, directory.ErrTeamNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Team not found"})
		case errors.Is(err, directory.ErrEmployeeNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Employee not found"})
		case errors.Is(err, directory.ErrAlreadyAssigned):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Employee already assigned to this team"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to assign employee"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Employee assigned to team successfully"})
}

// Unassign handles POST /api/teams/{id}/unassign
func (h *TeamHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid team ID"})
		return
	}

	employeeID, ok := h.decodeAssignment(w, r)
	if !ok {
		return
	}

	if err := h.service.Unassign(r.Context(), identity, teamID, employeeID); err != nil {
		switch {
		case errors.Is(err, directory.ErrTeamNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Team not found"})
		case errors.Is(err, directory.ErrAssignmentNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Employee not assigned to this team"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to unassign employee"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Employee unassigned from team successfully"})
}

func (h *TeamHandler) decodeAssignment(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req dto.AssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return uuid.Nil, false
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Validation failed", Details: details})
		return uuid.Nil, false
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid employee ID"})
		return uuid.Nil, false
	}

	return employeeID, true
}
