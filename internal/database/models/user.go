package models

import "github.com/google/uuid"

// User is a login identity. Email is unique system-wide, not per tenant,
// because login happens before any tenant is known.
type User struct {
	Base
	OrganisationID uuid.UUID `gorm:"type:uuid;index;not null" json:"organisation_id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Name           string    `gorm:"not null" json:"name"`

	Organisation *Organisation `gorm:"foreignKey:OrganisationID" json:"organisation,omitempty"`
}

func (User) TableName() string {
	return "users"
}
