package model

import (
	"hotel/shared/constant"
	"time"
)

// Metadata is the audit block every stored row carries.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
	ModifiedAt time.Time `db:"modified_at" json:"modified_at"`
	CreatedBy  string    `db:"created_by"  json:"created_by"`
	ModifiedBy string    `db:"modified_by" json:"modified_by"`
}

// NewMetadata stamps a row created by actor at the given time.
func NewMetadata(actor string, at time.Time) Metadata {
	return Metadata{
		CreatedAt:  at,
		ModifiedAt: at,
		CreatedBy:  actor,
		ModifiedBy: actor,
	}
}

// Touch records a modification on the in-memory copy.
func (m *Metadata) Touch(actor string, at time.Time) {
	m.ModifiedAt = at
	m.ModifiedBy = actor
}

// Modified returns the column updates that go with a modification.
func Modified(actor string, at time.Time) map[string]any {
	return map[string]any{
		constant.FieldModifiedAt: at,
		constant.FieldModifiedBy: actor,
	}
}
