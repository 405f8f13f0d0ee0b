package journal

import (
	"context"
	"errors"
	"time"

	"pact/internal/jobs"
	"pact/internal/macro"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	DB *gorm.DB
}

type CreateEntryInput struct {
	OwnerID   uint64
	GroupID   *uint64
	Day       string
	EntryType string
	RefID     uint64
	Quantity  float64

	// Totals computed at write time from the current library state;
	// rounded to two decimals here, at the persistence boundary.
	Totals macro.Totals
}

// SummarizeSnapshots sums the frozen macro snapshots of a bucket's
// entries. The result never depends on current ingredient rates.
func SummarizeSnapshots(entries []LogEntry) macro.Totals {
	var sum macro.Totals
	for _, e := range entries {
		sum = sum.Add(macro.Totals{Kcal: e.Kcal, Protein: e.Protein, Carbs: e.Carbs, Fat: e.Fat})
	}
	return sum
}

func bucketScope(tx *gorm.DB, ownerID uint64, groupID *uint64, day string) *gorm.DB {
	tx = tx.Where("owner_id=? AND day=?", ownerID, day)
	if groupID != nil {
		return tx.Where("group_id=?", *groupID)
	}
	return tx.Where("group_id IS NULL")
}

// CreateEntry appends a log entry with its frozen snapshot and refreshes
// the bucket's daily summary from stored snapshots, atomically.
func (s *Service) CreateEntry(ctx context.Context, in CreateEntryInput) (LogEntry, DailySummary, error) {
	snapshot := in.Totals.Round2()
	entry := LogEntry{
		OwnerID:   in.OwnerID,
		GroupID:   in.GroupID,
		Day:       in.Day,
		EntryType: in.EntryType,
		RefID:     in.RefID,
		Quantity:  in.Quantity,
		Kcal:      snapshot.Kcal,
		Protein:   snapshot.Protein,
		Carbs:     snapshot.Carbs,
		Fat:       snapshot.Fat,
	}

	var summary DailySummary
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var bucket []LogEntry
		if err := bucketScope(tx.Model(&LogEntry{}), in.OwnerID, in.GroupID, in.Day).Find(&bucket).Error; err != nil {
			return err
		}
		totals := SummarizeSnapshots(bucket)

		var existing DailySummary
		err := bucketScope(
			tx.Clauses(clause.Locking{Strength: "UPDATE"}).Model(&DailySummary{}),
			in.OwnerID, in.GroupID, in.Day,
		).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			summary = DailySummary{
				OwnerID: in.OwnerID,
				GroupID: in.GroupID,
				Day:     in.Day,
				Kcal:    totals.Kcal,
				Protein: totals.Protein,
				Carbs:   totals.Carbs,
				Fat:     totals.Fat,
			}
			return tx.Create(&summary).Error
		case err != nil:
			return err
		}

		existing.Kcal = totals.Kcal
		existing.Protein = totals.Protein
		existing.Carbs = totals.Carbs
		existing.Fat = totals.Fat
		existing.UpdatedAt = time.Now()
		summary = existing
		return tx.Save(&existing).Error
	})
	if err != nil {
		return LogEntry{}, DailySummary{}, err
	}
	return entry, summary, nil
}

// DeleteEntry removes an entry and enqueues a summary rebuild for its
// bucket; the worker recomputes from the remaining frozen snapshots.
// The delete and the enqueue commit together.
func (s *Service) DeleteEntry(ctx context.Context, ownerID, entryID uint64) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry LogEntry
		if err := tx.Where("id=? AND owner_id=?", entryID, ownerID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		repo := &jobs.Repo{DB: tx}
		return repo.EnqueueSummaryRebuild(entry.OwnerID, entry.GroupID, entry.Day)
	})
}

// EntriesForDay lists an owner's entries for one day, newest first,
// scoped to the given group or to the private bucket.
func (s *Service) EntriesForDay(ctx context.Context, ownerID uint64, groupID *uint64, day string) ([]LogEntry, error) {
	var rows []LogEntry
	err := bucketScope(s.DB.WithContext(ctx).Model(&LogEntry{}), ownerID, groupID, day).
		Order("created_at desc").
		Find(&rows).Error
	return rows, err
}

// SummaryForDay returns the bucket's summary, or nil when nothing was
// logged that day.
func (s *Service) SummaryForDay(ctx context.Context, ownerID uint64, groupID *uint64, day string) (*DailySummary, error) {
	var row DailySummary
	err := bucketScope(s.DB.WithContext(ctx).Model(&DailySummary{}), ownerID, groupID, day).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// GroupSummariesInRange lists a group's summaries for an inclusive
// day-key range, for the leaderboard and dashboard windows.
func (s *Service) GroupSummariesInRange(ctx context.Context, groupID uint64, startDay, endDay string) ([]DailySummary, error) {
	var rows []DailySummary
	err := s.DB.WithContext(ctx).
		Where("group_id=? AND day >= ? AND day <= ?", groupID, startDay, endDay).
		Find(&rows).Error
	return rows, err
}

// OwnerSummariesInRange lists one owner's summaries in a range across
// the given group scope.
func (s *Service) OwnerSummariesInRange(ctx context.Context, ownerID uint64, groupID *uint64, startDay, endDay string) ([]DailySummary, error) {
	q := s.DB.WithContext(ctx).Where("owner_id=? AND day >= ? AND day <= ?", ownerID, startDay, endDay)
	if groupID != nil {
		q = q.Where("group_id=?", *groupID)
	} else {
		q = q.Where("group_id IS NULL")
	}
	var rows []DailySummary
	err := q.Find(&rows).Error
	return rows, err
}
