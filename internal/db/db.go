package db

import (
	"fmt"

	"pact/internal/auth"
	"pact/internal/food"
	"pact/internal/group"
	"pact/internal/jobs"
	"pact/internal/journal"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&food.Ingredient{},
		&food.Meal{},
		&food.MealItem{},
		&journal.LogEntry{},
		&journal.DailySummary{},
		&group.Group{},
		&group.Member{},
		&group.Activity{},
		&group.GymCheckin{},
		&group.Profile{},
		&group.WeightLog{},
		&jobs.Job{},
		&auth.User{},
	); err != nil {
		return err
	}

	// One activity row per (group, user, day); flags are merged on write.
	if err := gdb.Exec(`create unique index if not exists uq_activities_group_user_day on group_activities(group_id, user_id, day);`).Error; err != nil {
		return err
	}

	// One summary per bucket. group_id is nullable, so personal rows
	// collapse onto coalesce(group_id, 0).
	if err := gdb.Exec(`
create unique index if not exists uq_summaries_owner_group_day
on daily_summaries(owner_id, coalesce(group_id, 0), day);
`).Error; err != nil {
		return err
	}

	// One weight sample per user per day, upserted in place.
	if err := gdb.Exec(`create unique index if not exists uq_weight_logs_user_day on weight_logs(user_id, logged_on);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_entries_owner_day on log_entries(owner_id, day);`,
		`create index if not exists idx_entries_group_day on log_entries(group_id, day);`,
		`create index if not exists idx_summaries_group_day on daily_summaries(group_id, day);`,
		`create index if not exists idx_checkins_group_date on gym_checkins(group_id, checkin_date);`,
		`create index if not exists idx_checkins_user_week on gym_checkins(user_id, week_start);`,
		`create index if not exists idx_activities_group_day on group_activities(group_id, day);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
