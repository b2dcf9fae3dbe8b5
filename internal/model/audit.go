package model

import (
	"time"

	"github.com/google/uuid"
)

// Record is implemented by every persisted entity.
type Record interface {
	RecordID() uuid.UUID
}

// Audit holds the identity and audit columns shared by every table.
// Timestamps are stamped explicitly by the write path, never by gorm.
type Audit struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
	CreatorID *uuid.UUID `gorm:"type:uuid" json:"creator_id,omitempty"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
}

func (a Audit) RecordID() uuid.UUID { return a.ID }

// StampCreate marks the first persistence of a record. A nil actor leaves
// the actor columns empty.
func (a *Audit) StampCreate(now time.Time, actor *uuid.UUID) {
	a.CreatedAt = now
	a.UpdatedAt = now
	a.CreatorID = copyID(actor)
	a.UpdatedBy = copyID(actor)
}

// StampUpdate marks a later persistence of an existing record.
func (a *Audit) StampUpdate(now time.Time, actor *uuid.UUID) {
	a.UpdatedAt = now
	if actor != nil {
		a.UpdatedBy = copyID(actor)
	}
}

// Inherit copies the creation stamp of the stored version of a record onto
// a replacement built from scratch.
func (a *Audit) Inherit(prev Audit) {
	a.CreatedAt = prev.CreatedAt
	a.CreatorID = prev.CreatorID
	a.UpdatedBy = prev.UpdatedBy
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
