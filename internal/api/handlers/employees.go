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

type EmployeeHandler struct {
	service *directory.EmployeeService
}

func NewEmployeeHandler(service *directory.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	employees, err := h.service.List(r.Context(), identity)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to list employees"})
		return
	}

	writeJSON(w, http.StatusOK, employees)
}

// Get handles GET /api/employees/{id}
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid employee ID"})
		return
	}

	detail, err := h.service.Get(r.Context(), identity, employeeID)
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Employee not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to get employee"})
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	if details := req.Validate(); len(details) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Validation failed", Details: details})
		return
	}

	employee, err := h.service.Create(r.Context(), identity, directory.CreateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create employee"})
		return
	}

	writeJSON(w, http.StatusCreated, employee)
}

// Update handles PUT /api/employees/{id}
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid employee ID"})
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body"})
		return
	}

	employee, err := h.service.Update(r.Context(), identity, employeeID, directory.UpdateEmployeeInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Employee not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update employee"})
		return
	}

	writeJSON(w, http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/{id}
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthorized"})
		return
	}

	employeeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid employee ID"})
		return
	}

	if err := h.service.Delete(r.Context(), identity, employeeID); err != nil {
		if errors.Is(err, directory.ErrEmployeeNotFound) {
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Message: "Employee not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete employee"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Employee deleted successfully"})
}
