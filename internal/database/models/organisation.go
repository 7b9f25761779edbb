package models

type Organisation struct {
	Base
	Name string `gorm:"not null" json:"name"`

	// Relationships - everything the organisation owns goes with it
	Users     []User     `gorm:"foreignKey:OrganisationID;constraint:OnDelete:CASCADE" json:"-"`
	Employees []Employee `gorm:"foreignKey:OrganisationID;constraint:OnDelete:CASCADE" json:"-"`
	Teams     []Team     `gorm:"foreignKey:OrganisationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Organisation) TableName() string {
	return "organisations"
}
