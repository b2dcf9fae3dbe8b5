package model

import (
	"time"

	"github.com/google/uuid"
)

type Member struct {
	Audit

	Name         string     `gorm:"not null" json:"name"`
	Email        *string    `gorm:"index:idx_member_email" json:"email,omitempty"`
	PasswordHash *string    `gorm:"column:password" json:"-"`
	IsGoogle     bool       `gorm:"not null;default:false" json:"is_google"`
	IsApple      bool       `gorm:"not null;default:false" json:"is_apple"`
	FamilyID     *uuid.UUID `gorm:"type:uuid;index:idx_member_family_id" json:"family_id,omitempty"`
	MemberRole   *string    `json:"member_role,omitempty"`
	BirthDate    *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	Color        *string    `json:"color,omitempty"`
	Image        *string    `json:"image,omitempty"`
	IsVerified   bool       `gorm:"not null;default:false" json:"is_verified"`
}

func (Member) TableName() string { return "member" }
