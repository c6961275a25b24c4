package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Prescription is one drug line on an exam.
type Prescription struct {
	DrugID   int64  `json:"drug_id"`
	Quantity int    `json:"quantity"`
	Dosage   string `json:"dosage,omitempty"`
}

// PrescriptionList stores the prescribed drugs as a JSON column.
type PrescriptionList []Prescription

func (p PrescriptionList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *PrescriptionList) Scan(src interface{}) error {
	if src == nil {
		*p = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("cannot scan %T into PrescriptionList", src)
	}
}

// ExamFields are the mutable attributes of an exam. The parent link is
// fixed at creation.
type ExamFields struct {
	KidID      *int64           `db:"kid_id" json:"kid_id,omitempty"`
	ExamTime   time.Time        `db:"exam_time" json:"exam_time"`
	Weight     *float64         `db:"weight" json:"weight,omitempty"`
	Height     *float64         `db:"height" json:"height,omitempty"`
	History    *string          `db:"history" json:"history,omitempty"`
	Drugs      PrescriptionList `db:"drugs" json:"drugs"`
	ReexamDate *time.Time       `db:"reexam_date" json:"reexam_date,omitempty"`
	Paid       bool             `db:"paid" json:"paid"`
	Note       *string          `db:"note" json:"note,omitempty"`
}

// Exam identifiers are UUID strings, unlike the serial ids of the other
// entities.
type Exam struct {
	ID       string `db:"id" json:"id"`
	ParentID int64  `db:"parent_id" json:"parent_id"`
	ExamFields
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`
	Lifecycle
}

func (e *Exam) Apply(fields ExamFields) { e.ExamFields = fields }

// UpdateExamPatch carries a partial update; nil fields are left
// untouched.
type UpdateExamPatch struct {
	KidID      *int64
	ExamTime   *time.Time
	Weight     *float64
	Height     *float64
	History    *string
	Drugs      PrescriptionList
	ReexamDate *time.Time
	Paid       *bool
	Note       *string
}

// ExamImage is an uploaded image attached to an exam.
type ExamImage struct {
	ID          string    `db:"id" json:"id"`
	ExamID      string    `db:"exam_id" json:"exam_id"`
	Filename    string    `db:"filename" json:"filename"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	URL         *string   `db:"url" json:"url,omitempty"`
	Mimetype    *string   `db:"mimetype" json:"mimetype,omitempty"`
	Size        *int64    `db:"size" json:"size,omitempty"`
	Position    *int      `db:"position" json:"position,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
