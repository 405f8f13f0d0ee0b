package journal

import "time"

// LogEntry is an append-only record of one act of eating. The four macro
// values are a snapshot frozen at creation; later ingredient or meal
// edits never change stored history.
type LogEntry struct {
	ID      uint64  `gorm:"primaryKey" json:"id"`
	OwnerID uint64  `gorm:"index;not null" json:"owner_id"`
	GroupID *uint64 `gorm:"index" json:"group_id"`
	Day     string  `gorm:"index;not null" json:"day"` // YYYY-MM-DD

	EntryType string  `gorm:"not null" json:"entry_type"` // ingredient|meal
	RefID     uint64  `gorm:"not null" json:"ref_id"`
	Quantity  float64 `gorm:"not null" json:"quantity"`

	Kcal    float64 `gorm:"not null" json:"kcal"`
	Protein float64 `gorm:"not null" json:"protein"`
	Carbs   float64 `gorm:"not null" json:"carbs"`
	Fat     float64 `gorm:"not null" json:"fat"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// DailySummary is the materialized macro sum for one (owner, group-or-none,
// day) bucket, maintained from entry snapshots on every write.
type DailySummary struct {
	ID      uint64  `gorm:"primaryKey" json:"-"`
	OwnerID uint64  `gorm:"index;not null" json:"owner_id"`
	GroupID *uint64 `gorm:"index" json:"group_id"`
	Day     string  `gorm:"index;not null" json:"day"`

	Kcal    float64 `gorm:"not null;default:0" json:"kcal"`
	Protein float64 `gorm:"not null;default:0" json:"protein"`
	Carbs   float64 `gorm:"not null;default:0" json:"carbs"`
	Fat     float64 `gorm:"not null;default:0" json:"fat"`

	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}
