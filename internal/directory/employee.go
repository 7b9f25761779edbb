package directory

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/staffhub/internal/audit"
	"github.com/hugh/staffhub/internal/auth"
	"github.com/hugh/staffhub/internal/database/models"
	"gorm.io/gorm"
)

// EmployeeService owns Employee records. Every method takes the verified
// caller identity and scopes all reads and writes to its organisation.
type EmployeeService struct {
	db    *gorm.DB
	audit *audit.Logger
	log   *slog.Logger
}

func NewEmployeeService(db *gorm.DB, auditLog *audit.Logger, log *slog.Logger) *EmployeeService {
	return &EmployeeService{db: db, audit: auditLog, log: log}
}

type CreateEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UpdateEmployeeInput carries a partial update. Empty strings mean "keep the
// previous value" for the required fields; Phone is a pointer so an explicit
// empty value clears it while nil leaves it untouched.
type UpdateEmployeeInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// TeamMembership is a team plus the assignment timestamp, for detail views.
type TeamMembership struct {
	models.Team
	AssignedAt time.Time `json:"assigned_at"`
}

// EmployeeDetail is the single-entity view with join-table metadata.
type EmployeeDetail struct {
	models.Employee
	Teams []TeamMembership `json:"teams"`
}

func (s *EmployeeService) List(ctx context.Context, identity auth.Identity) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).
		Where("organisation_id = ?", identity.OrganisationID).
		Preload("Teams").
		Order("created_at DESC").
		Find(&employees).Error
	return employees, err
}

func (s *EmployeeService) Get(ctx context.Context, identity auth.Identity, employeeID uuid.UUID) (*EmployeeDetail, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", employeeID, identity.OrganisationID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	memberships, err := s.teamMemberships(ctx, employee.ID)
	if err != nil {
		return nil, err
	}

	return &EmployeeDetail{Employee: employee, Teams: memberships}, nil
}

func (s *EmployeeService) teamMemberships(ctx context.Context, employeeID uuid.UUID) ([]TeamMembership, error) {
	var links []models.EmployeeTeam
	if err := s.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("assigned_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	memberships := make([]TeamMembership, 0, len(links))
	if len(links) == 0 {
		return memberships, nil
	}

	teamIDs := make([]uuid.UUID, len(links))
	for i, link := range links {
		teamIDs[i] = link.TeamID
	}

	var teams []models.Team
	if err := s.db.WithContext(ctx).Where("id IN ?", teamIDs).Find(&teams).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}

	for _, link := range links {
		team, ok := byID[link.TeamID]
		if !ok {
			continue
		}
		memberships = append(memberships, TeamMembership{Team: team, AssignedAt: link.AssignedAt})
	}

	return memberships, nil
}

func (s *EmployeeService) Create(ctx context.Context, identity auth.Identity, input CreateEmployeeInput) (*models.Employee, error) {
	employee := models.Employee{
		// Tenant comes from the verified identity, never from client input.
		OrganisationID: identity.OrganisationID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
	}

	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionEmployeeCreated, audit.Meta{
		"employeeId": employee.ID,
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
		"email":      employee.Email,
	})

	return &employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, identity auth.Identity, employeeID uuid.UUID, input UpdateEmployeeInput) (*models.Employee, error) {
	var employee models.Employee
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", employeeID, identity.OrganisationID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if input.FirstName != "" {
		employee.FirstName = input.FirstName
	}
	if input.LastName != "" {
		employee.LastName = input.LastName
	}
	if input.Email != "" {
		employee.Email = input.Email
	}
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}

	if err := s.db.WithContext(ctx).Save(&employee).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionEmployeeUpdated, audit.Meta{
		"employeeId": employee.ID,
		"updates": map[string]any{
			"first_name": input.FirstName,
			"last_name":  input.LastName,
			"email":      input.Email,
			"phone":      input.Phone,
		},
	})

	return &employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, identity auth.Identity, employeeID uuid.UUID) error {
	var employee models.Employee
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", employeeID, identity.OrganisationID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	// Snapshot before the row disappears; the audit payload is the only
	// place the deleted state survives.
	snapshot := audit.Meta{
		"employeeId":      employee.ID,
		"organisation_id": employee.OrganisationID,
		"first_name":      employee.FirstName,
		"last_name":       employee.LastName,
		"email":           employee.Email,
		"phone":           employee.Phone,
		"created_at":      employee.CreatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&models.EmployeeTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&employee).Error
	})
	if err != nil {
		return err
	}

	s.log.Debug("employee deleted", "employee_id", employee.ID, "organisation_id", identity.OrganisationID)
	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionEmployeeDeleted, snapshot)

	return nil
}
