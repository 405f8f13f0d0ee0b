package journal_test

import (
	"math"
	"testing"

	"pact/internal/journal"
	"pact/internal/macro"
)

func TestSummarizeSnapshots(t *testing.T) {
	entries := []journal.LogEntry{
		{Kcal: 247.5, Protein: 46.5, Carbs: 0, Fat: 5.4},
		{Kcal: 350, Protein: 20, Carbs: 45.5, Fat: 12.1},
	}
	got := journal.SummarizeSnapshots(entries)
	want := macro.Totals{Kcal: 597.5, Protein: 66.5, Carbs: 45.5, Fat: 17.5}
	if math.Abs(got.Kcal-want.Kcal) > 1e-9 ||
		math.Abs(got.Protein-want.Protein) > 1e-9 ||
		math.Abs(got.Carbs-want.Carbs) > 1e-9 ||
		math.Abs(got.Fat-want.Fat) > 1e-9 {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestSummarizeSnapshotsEmpty(t *testing.T) {
	if got := journal.SummarizeSnapshots(nil); got != (macro.Totals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

// Snapshots are frozen copies: summarizing stored entries must not
// involve ingredient rates at all, so an ingredient edit after logging
// cannot move a historical summary.
func TestSnapshotsIndependentOfLibrary(t *testing.T) {
	per100 := macro.Totals{Kcal: 165, Protein: 31, Carbs: 0, Fat: 3.6}
	frozen := macro.Scale(per100, 150).Round2()
	entry := journal.LogEntry{Kcal: frozen.Kcal, Protein: frozen.Protein, Carbs: frozen.Carbs, Fat: frozen.Fat}

	// the "edit": doubled rates produce a different fresh computation
	edited := macro.Totals{Kcal: 330, Protein: 62, Carbs: 0, Fat: 7.2}
	fresh := macro.Scale(edited, 150)

	stored := journal.SummarizeSnapshots([]journal.LogEntry{entry})
	if stored.Protein == fresh.Protein {
		t.Fatalf("fresh computation should differ from the stored snapshot")
	}
	if stored.Protein != 46.5 {
		t.Fatalf("stored snapshot moved: expected 46.5, got %v", stored.Protein)
	}
}
