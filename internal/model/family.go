package model

import "time"

// Family is the tenancy unit that members and task lists point back to.
type Family struct {
	Audit

	Name                string     `gorm:"not null" json:"name"`
	ColorCode           *string    `json:"color_code,omitempty"`
	SubscriptionEndDate *time.Time `gorm:"type:date" json:"subscription_end_date,omitempty"`
	PlaceOfLiving       *string    `json:"place_of_living,omitempty"`
	ResidenceType       *string    `json:"residence_type,omitempty"`
	FamilyImage         *string    `json:"family_image,omitempty"`
}

func (Family) TableName() string { return "family" }
