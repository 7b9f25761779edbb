package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LogAction is the closed vocabulary of auditable actions.
type LogAction string

const (
	ActionOrganisationCreated LogAction = "organisation_created"
	ActionUserLogin           LogAction = "user_login"
	ActionUserLogout          LogAction = "user_logout"
	ActionEmployeeCreated     LogAction = "employee_created"
	ActionEmployeeUpdated     LogAction = "employee_updated"
	ActionEmployeeDeleted     LogAction = "employee_deleted"
	ActionTeamCreated         LogAction = "team_created"
	ActionTeamUpdated         LogAction = "team_updated"
	ActionTeamDeleted         LogAction = "team_deleted"
	ActionEmployeeAssigned    LogAction = "employee_assigned_to_team"
	ActionEmployeeUnassigned  LogAction = "employee_unassigned_from_team"
)

// Log is an append-only audit record. OrganisationID is nullable so
// system-level events without a tenant can still be recorded.
type Log struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrganisationID *uuid.UUID     `gorm:"type:uuid;index" json:"organisation_id"`
	UserID         *uuid.UUID     `gorm:"type:uuid" json:"user_id"`
	Action         LogAction      `gorm:"not null;index" json:"action"`
	Meta           map[string]any `gorm:"serializer:json" json:"meta"`
	Timestamp      time.Time      `gorm:"index" json:"timestamp"`
}

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now()
	}
	return nil
}

func (Log) TableName() string {
	return "logs"
}
