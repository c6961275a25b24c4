package model

import (
	"time"
)

// Lifecycle carries the soft-delete state shared by all recoverable
// entities. Rows are never hard-deleted; they are flagged and can be
// restored later.
type Lifecycle struct {
	Deleted   bool       `db:"deleted" json:"deleted"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// State exposes the embedded soft-delete state to the lifecycle
// manager. The embedded field itself is named Lifecycle, so the
// accessor needs a distinct name to be promoted as a method.
func (l *Lifecycle) State() *Lifecycle { return l }

// SearchFilter contains common search parameters. Query matches the
// entity's name field, Phone the parent phone fragment where relevant.
type SearchFilter struct {
	Query string `form:"q"`
	Phone string `form:"phone"`
	Limit int    `form:"limit"`
}

// SearchLimits bound the result count of list and search operations.
// Out-of-range requests are clamped rather than rejected.
type SearchLimits struct {
	Default int
	Max     int
}

// ClampLimit forces the requested limit into [1, max], defaulting when
// the caller asked for nothing.
func (f *SearchFilter) ClampLimit(limits SearchLimits) {
	if f.Limit <= 0 {
		f.Limit = limits.Default
	}
	if f.Limit > limits.Max {
		f.Limit = limits.Max
	}
}
