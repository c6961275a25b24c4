package model

import (
	"time"
)

// KidKey is the natural key for kids: name plus birthday. A nil
// birthday is never unique-enforced, so two kids may share a name as
// long as neither has a birthday on record.
type KidKey struct {
	Name     string
	Birthday *time.Time
}

// KidFields are the mutable attributes of a kid record.
type KidFields struct {
	ParentID *int64  `db:"parent_id" json:"parent_id,omitempty"`
	Note     *string `db:"note" json:"note,omitempty"`
}

type Kid struct {
	ID       int64      `db:"id" json:"id"`
	Name     string     `db:"name" json:"name"`
	Birthday *time.Time `db:"birthday" json:"birthday,omitempty"`
	KidFields
	Lifecycle
}

func (k *Kid) Apply(fields KidFields) { k.KidFields = fields }

// KidWithParent is the dashboard read-shape: a kid joined with its
// parent's name and last visit.
type KidWithParent struct {
	Kid
	ParentName      *string    `db:"parent_name" json:"parent_name,omitempty"`
	ParentLastVisit *time.Time `db:"parent_last_visit" json:"parent_last_visit,omitempty"`
}

// UpdateKidPatch carries a partial update; nil fields are left
// untouched.
type UpdateKidPatch struct {
	Name     *string
	Birthday *time.Time
	ParentID *int64
	Note     *string
}
