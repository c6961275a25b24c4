package model

import (
	"time"
)

// ParentFields are the mutable attributes of a parent record. The phone
// number is the natural key and lives on Parent itself.
type ParentFields struct {
	Name         string     `db:"name" json:"name"`
	Address      string     `db:"address" json:"address"`
	Note         *string    `db:"note" json:"note,omitempty"`
	LastVisit    *time.Time `db:"last_visit" json:"last_visit,omitempty"`
	ExpectedDate *time.Time `db:"expected_date" json:"expected_date,omitempty"`
}

type Parent struct {
	ID    int64  `db:"id" json:"id"`
	Phone string `db:"phone" json:"phone"`
	ParentFields
	Lifecycle
}

func (p *Parent) Apply(fields ParentFields) { p.ParentFields = fields }

// UpdateParentPatch carries a partial update; nil fields are left
// untouched.
type UpdateParentPatch struct {
	Name         *string
	Address      *string
	Note         *string
	LastVisit    *time.Time
	ExpectedDate *time.Time
}
