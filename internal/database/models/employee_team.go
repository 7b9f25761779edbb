package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeTeam is the Employee<->Team association with its own attributes.
// The composite unique index is the authoritative guard against duplicate
// assignment; service-level pre-checks are advisory and may lose a race.
type EmployeeTeam struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_teams_pair" json:"employee_id"`
	TeamID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_teams_pair" json:"team_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

func (et *EmployeeTeam) BeforeCreate(tx *gorm.DB) error {
	if et.ID == uuid.Nil {
		et.ID = uuid.New()
	}
	if et.AssignedAt.IsZero() {
		et.AssignedAt = time.Now()
	}
	return nil
}

func (EmployeeTeam) TableName() string {
	return "employee_teams"
}
