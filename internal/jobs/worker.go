package jobs

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"time"

	"gorm.io/gorm"
)

type Worker struct {
	ID   string
	Repo *Repo
	DB   *gorm.DB
}

// Private read/write shapes for the rebuild; the worker talks to the
// journal tables directly, like any other claimed-job side effect.
type logEntryRow struct {
	OwnerID uint64  `gorm:"column:owner_id"`
	GroupID *uint64 `gorm:"column:group_id"`
	Day     string  `gorm:"column:day"`
	Kcal    float64 `gorm:"column:kcal"`
	Protein float64 `gorm:"column:protein"`
	Carbs   float64 `gorm:"column:carbs"`
	Fat     float64 `gorm:"column:fat"`
}

func (logEntryRow) TableName() string { return "log_entries" }

type dailySummaryRow struct {
	ID      uint64  `gorm:"column:id;primaryKey"`
	OwnerID uint64  `gorm:"column:owner_id"`
	GroupID *uint64 `gorm:"column:group_id"`
	Day     string  `gorm:"column:day"`
	Kcal    float64 `gorm:"column:kcal"`
	Protein float64 `gorm:"column:protein"`
	Carbs   float64 `gorm:"column:carbs"`
	Fat     float64 `gorm:"column:fat"`
}

func (dailySummaryRow) TableName() string { return "daily_summaries" }

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				log.Printf("worker claim error: %v\n", err)
				continue
			}
			if job == nil {
				continue
			}
			w.handle(job)
		}
	}
}

func (w *Worker) handle(job *Job) {
	switch job.Type {
	case TypeSummaryRebuild:
		w.handleSummaryRebuild(job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleSummaryRebuild(job *Job) {
	type payload struct {
		OwnerID uint64  `json:"owner_id"`
		GroupID *uint64 `json:"group_id"`
		Day     string  `json:"day"`
	}
	var p payload
	if err := json.Unmarshal(job.Payload, &p); err != nil || p.Day == "" {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	err := w.DB.Transaction(func(tx *gorm.DB) error {
		scope := func(q *gorm.DB) *gorm.DB {
			q = q.Where("owner_id=? AND day=?", p.OwnerID, p.Day)
			if p.GroupID != nil {
				return q.Where("group_id=?", *p.GroupID)
			}
			return q.Where("group_id IS NULL")
		}

		var entries []logEntryRow
		if err := scope(tx.Model(&logEntryRow{})).Find(&entries).Error; err != nil {
			return err
		}

		// bucket drained: the summary row goes away with it
		if len(entries) == 0 {
			return scope(tx.Model(&dailySummaryRow{})).Delete(&dailySummaryRow{}).Error
		}

		var sum dailySummaryRow
		for _, e := range entries {
			sum.Kcal += e.Kcal
			sum.Protein += e.Protein
			sum.Carbs += e.Carbs
			sum.Fat += e.Fat
		}

		res := scope(tx.Model(&dailySummaryRow{})).Updates(map[string]any{
			"kcal":       sum.Kcal,
			"protein":    sum.Protein,
			"carbs":      sum.Carbs,
			"fat":        sum.Fat,
			"updated_at": time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		fresh := dailySummaryRow{
			OwnerID: p.OwnerID,
			GroupID: p.GroupID,
			Day:     p.Day,
			Kcal:    sum.Kcal,
			Protein: sum.Protein,
			Carbs:   sum.Carbs,
			Fat:     sum.Fat,
		}
		return tx.Create(&fresh).Error
	})
	if err != nil {
		w.retry(job, "summary rebuild failed: "+err.Error())
		return
	}

	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
