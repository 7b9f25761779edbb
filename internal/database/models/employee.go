package models

import "github.com/google/uuid"

// Employee is a directory record, not a login identity.
type Employee struct {
	Base
	OrganisationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organisation_id"`
	FirstName      string    `gorm:"not null" json:"first_name"`
	LastName       string    `gorm:"not null" json:"last_name"`
	Email          string    `gorm:"not null" json:"email"`
	Phone          string    `json:"phone"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID" json:"-"`
	Teams        []Team        `gorm:"many2many:employee_teams" json:"teams,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}
