package journal

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// WriteErrorCategory is the user-facing classification of a rejected write.
type WriteErrorCategory string

const (
	WriteErrMissingGroup WriteErrorCategory = "missing_group_context"
	WriteErrDuplicate    WriteErrorCategory = "duplicate_record"
	WriteErrBadReference WriteErrorCategory = "missing_reference"
	WriteErrGeneric      WriteErrorCategory = "could_not_save"
)

// Message returns the text the UI shows for the category.
func (c WriteErrorCategory) Message() string {
	switch c {
	case WriteErrMissingGroup:
		return "an active group is required for this entry"
	case WriteErrDuplicate:
		return "this record already exists"
	case WriteErrBadReference:
		return "the referenced record no longer exists"
	default:
		return "could not save"
	}
}

// Postgres error classes surfaced by lib/pq.
const (
	pqNotNullViolation    = "23502"
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// ClassifyWriteError maps a backend write rejection to a category.
// Known constraint signatures get a precise category; everything else
// falls back to the generic one.
func ClassifyWriteError(err error) WriteErrorCategory {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqNotNullViolation:
			if strings.Contains(string(pqErr.Column), "group_id") || strings.Contains(pqErr.Message, "group_id") {
				return WriteErrMissingGroup
			}
			return WriteErrGeneric
		case pqUniqueViolation:
			return WriteErrDuplicate
		case pqForeignKeyViolation:
			return WriteErrBadReference
		}
		return WriteErrGeneric
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return WriteErrDuplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return WriteErrBadReference
	}

	// message-level fallback for drivers that do not expose typed errors
	msg := err.Error()
	if strings.Contains(msg, "group_id") && strings.Contains(msg, "null value") {
		return WriteErrMissingGroup
	}
	return WriteErrGeneric
}
