package models

import "github.com/google/uuid"

type Team struct {
	Base
	OrganisationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organisation_id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `json:"description"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID" json:"-"`
	Employees    []Employee    `gorm:"many2many:employee_teams" json:"employees,omitempty"`
}

func (Team) TableName() string {
	return "teams"
}
