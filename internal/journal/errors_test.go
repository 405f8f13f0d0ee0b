package journal_test

import (
	"errors"
	"testing"

	"pact/internal/journal"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

func TestClassifyWriteError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want journal.WriteErrorCategory
	}{
		{
			"null group id",
			&pq.Error{Code: "23502", Column: "group_id", Message: `null value in column "group_id"`},
			journal.WriteErrMissingGroup,
		},
		{
			"null other column",
			&pq.Error{Code: "23502", Column: "day"},
			journal.WriteErrGeneric,
		},
		{
			"unique violation",
			&pq.Error{Code: "23505", Constraint: "uq_group_activities_bucket"},
			journal.WriteErrDuplicate,
		},
		{
			"foreign key violation",
			&pq.Error{Code: "23503"},
			journal.WriteErrBadReference,
		},
		{
			"gorm duplicate sentinel",
			gorm.ErrDuplicatedKey,
			journal.WriteErrDuplicate,
		},
		{
			"plain message with group_id null",
			errors.New(`insert failed: null value in column "group_id" violates not-null constraint`),
			journal.WriteErrMissingGroup,
		},
		{
			"unknown error",
			errors.New("connection reset"),
			journal.WriteErrGeneric,
		},
	}

	for _, c := range cases {
		if got := journal.ClassifyWriteError(c.err); got != c.want {
			t.Fatalf("%s: expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestWriteErrorMessages(t *testing.T) {
	if journal.WriteErrGeneric.Message() != "could not save" {
		t.Fatalf("unexpected generic message: %s", journal.WriteErrGeneric.Message())
	}
	if journal.WriteErrMissingGroup.Message() == "" {
		t.Fatalf("missing group category must carry a message")
	}
}
