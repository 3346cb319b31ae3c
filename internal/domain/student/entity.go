// Package student contains the student record aggregate: the entity itself,
// its validation and default-resolution rules, and the repository contract
// the rest of the system depends on.
package student

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/record-hub/student-record-hub/internal/domain/shared"
)

// Status represents the enrollment state of a record.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Record is one student's enrollment snapshot.
//
// The ID is assigned by the store on creation and is immutable thereafter.
// Every record belongs to exactly one course and one semester.
type Record struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Course   string  `json:"course"`
	Semester string  `json:"semester"`
	Score    float64 `json:"score"`
	Status   Status  `json:"status"`
}

// validate is the shared validator instance. validator.Validate is safe for
// concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateInput is the payload for creating a record. Score and Status are
// optional; missing values are resolved to their defaults (0, Active) by
// Resolve before the record reaches the store.
type CreateInput struct {
	Name     string   `json:"name" validate:"required"`
	Course   string   `json:"course" validate:"required"`
	Semester string   `json:"semester" validate:"required"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Status   *Status  `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// Validate checks the input against the student schema. The returned error
// carries a field-level detail message suitable for a client response.
func (in CreateInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return shared.WrapError("student", "Validate", shared.ErrValidation, fieldDetail(err), err)
	}
	return nil
}

// Resolve applies default values for omitted fields and returns a record
// ready for insertion. The ID is left zero for the store to assign.
func (in CreateInput) Resolve() Record {
	rec := Record{
		Name:     strings.TrimSpace(in.Name),
		Course:   strings.TrimSpace(in.Course),
		Semester: strings.TrimSpace(in.Semester),
		Status:   StatusActive,
	}
	if in.Score != nil {
		rec.Score = *in.Score
	}
	if in.Status != nil {
		rec.Status = *in.Status
	}
	return rec
}

// UpdatePatch is a partial update: nil fields retain their prior values.
type UpdatePatch struct {
	Name     *string  `json:"name" validate:"omitempty,min=1"`
	Course   *string  `json:"course" validate:"omitempty,min=1"`
	Semester *string  `json:"semester" validate:"omitempty,min=1"`
	Score    *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Status   *Status  `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// Validate checks the patch fields that are present.
func (p UpdatePatch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return shared.WrapError("student", "Validate", shared.ErrValidation, fieldDetail(err), err)
	}
	return nil
}

// Apply merges the patch into the record. The ID is never touched.
func (p UpdatePatch) Apply(rec *Record) {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Course != nil {
		rec.Course = *p.Course
	}
	if p.Semester != nil {
		rec.Semester = *p.Semester
	}
	if p.Score != nil {
		rec.Score = *p.Score
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
}

// fieldDetail converts a validator error into a short field-level message,
// e.g. "name is required" or "score must be at most 100".
func fieldDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required", "min":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
