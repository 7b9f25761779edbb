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

// TeamService owns Team records and the Employee<->Team assignments.
type TeamService struct {
	db    *gorm.DB
	audit *audit.Logger
	log   *slog.Logger
}

func NewTeamService(db *gorm.DB, auditLog *audit.Logger, log *slog.Logger) *TeamService {
	return &TeamService{db: db, audit: auditLog, log: log}
}

type CreateTeamInput struct {
	Name        string
	Description string
}

// UpdateTeamInput carries a partial update. An empty Name keeps the previous
// value; Description is a pointer so an explicit empty value is honored.
type UpdateTeamInput struct {
	Name        string
	Description *string
}

// EmployeeMembership is an employee plus the assignment timestamp.
type EmployeeMembership struct {
	models.Employee
	AssignedAt time.Time `json:"assigned_at"`
}

// TeamDetail is the single-entity view with join-table metadata.
type TeamDetail struct {
	models.Team
	Employees []EmployeeMembership `json:"employees"`
}

func (s *TeamService) List(ctx context.Context, identity auth.Identity) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Where("organisation_id = ?", identity.OrganisationID).
		Preload("Employees").
		Order("created_at DESC").
		Find(&teams).Error
	return teams, err
}

func (s *TeamService) Get(ctx context.Context, identity auth.Identity, teamID uuid.UUID) (*TeamDetail, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", teamID, identity.OrganisationID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	memberships, err := s.employeeMemberships(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	return &TeamDetail{Team: team, Employees: memberships}, nil
}

func (s *TeamService) employeeMemberships(ctx context.Context, teamID uuid.UUID) ([]EmployeeMembership, error) {
	var links []models.EmployeeTeam
	if err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("assigned_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}

	memberships := make([]EmployeeMembership, 0, len(links))
	if len(links) == 0 {
		return memberships, nil
	}

	employeeIDs := make([]uuid.UUID, len(links))
	for i, link := range links {
		employeeIDs[i] = link.EmployeeID
	}

	var employees []models.Employee
	if err := s.db.WithContext(ctx).Where("id IN ?", employeeIDs).Find(&employees).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]models.Employee, len(employees))
	for _, employee := range employees {
		byID[employee.ID] = employee
	}

	for _, link := range links {
		employee, ok := byID[link.EmployeeID]
		if !ok {
			continue
		}
		memberships = append(memberships, EmployeeMembership{Employee: employee, AssignedAt: link.AssignedAt})
	}

	return memberships, nil
}

func (s *TeamService) Create(ctx context.Context, identity auth.Identity, input CreateTeamInput) (*models.Team, error) {
	team := models.Team{
		OrganisationID: identity.OrganisationID,
		Name:           input.Name,
		Description:    input.Description,
	}

	if err := s.db.WithContext(ctx).Create(&team).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionTeamCreated, audit.Meta{
		"teamId":      team.ID,
		"name":        team.Name,
		"description": team.Description,
	})

	return &team, nil
}

func (s *TeamService) Update(ctx context.Context, identity auth.Identity, teamID uuid.UUID, input UpdateTeamInput) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", teamID, identity.OrganisationID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		team.Name = input.Name
	}
	if input.Description != nil {
		team.Description = *input.Description
	}

	if err := s.db.WithContext(ctx).Save(&team).Error; err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionTeamUpdated, audit.Meta{
		"teamId": team.ID,
		"updates": map[string]any{
			"name":        input.Name,
			"description": input.Description,
		},
	})

	return &team, nil
}

func (s *TeamService) Delete(ctx context.Context, identity auth.Identity, teamID uuid.UUID) error {
	var team models.Team
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", teamID, identity.OrganisationID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	snapshot := audit.Meta{
		"teamId":          team.ID,
		"organisation_id": team.OrganisationID,
		"name":            team.Name,
		"description":     team.Description,
		"created_at":      team.CreatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&models.EmployeeTeam{}).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
	if err != nil {
		return err
	}

	s.log.Debug("team deleted", "team_id", team.ID, "organisation_id", identity.OrganisationID)
	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionTeamDeleted, snapshot)

	return nil
}

// Assign links an employee to a team. Team and employee are verified against
// the caller's organisation independently, so a valid team cannot smuggle in
// a foreign employee or vice versa.
func (s *TeamService) Assign(ctx context.Context, identity auth.Identity, teamID, employeeID uuid.UUID) error {
	var team models.Team
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", teamID, identity.OrganisationID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	var employee models.Employee
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", employeeID, identity.OrganisationID).
		First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}

	// Advisory pre-check for a friendly error; the unique index on
	// (employee_id, team_id) is the authoritative guard.
	var existing models.EmployeeTeam
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyAssigned
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	assignment := models.EmployeeTeam{
		EmployeeID: employeeID,
		TeamID:     teamID,
	}
	if err := s.db.WithContext(ctx).Create(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyAssigned
		}
		return err
	}

	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionEmployeeAssigned, audit.Meta{
		"employeeId":   employeeID,
		"teamId":       teamID,
		"employeeName": employee.FirstName + " " + employee.LastName,
		"teamName":     team.Name,
	})

	return nil
}

func (s *TeamService) Unassign(ctx context.Context, identity auth.Identity, teamID, employeeID uuid.UUID) error {
	var team models.Team
	if err := s.db.WithContext(ctx).
		Where("id = ? AND organisation_id = ?", teamID, identity.OrganisationID).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	var assignment models.EmployeeTeam
	if err := s.db.WithContext(ctx).
		Where("employee_id = ? AND team_id = ?", employeeID, teamID).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&assignment).Error; err != nil {
		return err
	}

	s.audit.Record(ctx, &identity.OrganisationID, &identity.UserID, models.ActionEmployeeUnassigned, audit.Meta{
		"employeeId": employeeID,
		"teamId":     teamID,
	})

	return nil
}
