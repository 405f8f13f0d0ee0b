package group

import "time"

type Group struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedBy uint64    `gorm:"index;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

type Member struct {
	GroupID   uint64    `gorm:"primaryKey" json:"group_id"`
	UserID    uint64    `gorm:"primaryKey" json:"user_id"`
	Role      string    `gorm:"not null;default:'member'" json:"role"` // owner|member
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// Activity is the canonical per-day ritual record for one member in one
// group. At most one row exists per (group, user, day); duplicate
// submissions OR-merge into it.
type Activity struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	GroupID uint64 `gorm:"index;not null" json:"group_id"`
	UserID  uint64 `gorm:"index;not null" json:"user_id"`
	Day     string `gorm:"not null" json:"day"`

	GymDone     bool `gorm:"not null;default:false" json:"gym_done"`
	SleepDone   bool `gorm:"not null;default:false" json:"sleep_done"`
	ProteinDone bool `gorm:"not null;default:false" json:"protein_done"`
	ConfirmDone bool `gorm:"not null;default:false" json:"confirm_done"`

	Note     *string `json:"note"`
	PhotoURL *string `json:"photo_url"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Activity) TableName() string { return "group_activities" }

// GymCheckin is the append-only attendance feed. Several check-ins may
// land on one calendar day; attendance counts distinct days only.
type GymCheckin struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	GroupID     uint64  `gorm:"index;not null" json:"group_id"`
	UserID      uint64  `gorm:"index;not null" json:"user_id"`
	CheckinDate string  `gorm:"not null" json:"checkin_date"`
	WeekStart   string  `gorm:"index;not null" json:"week_start"`
	Note        *string `json:"note"`
	PhotoURL    *string `json:"photo_url"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

type Profile struct {
	UserID      uint64  `gorm:"primaryKey" json:"user_id"`
	DisplayName string  `json:"display_name"`
	Bio         string  `json:"bio"`
	AvatarURL   *string `json:"avatar_url"`

	HeightCm        float64 `gorm:"not null;default:170" json:"height_cm"`
	CurrentWeightKg float64 `gorm:"not null;default:70" json:"current_weight_kg"`
	TargetWeightKg  float64 `gorm:"not null;default:70" json:"target_weight_kg"`
	WeeklyGymTarget int     `gorm:"not null;default:3" json:"weekly_gym_target"`
	ActivityLevel   string  `gorm:"not null;default:'moderate'" json:"activity_level"` // low|moderate|high

	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

type WeightLog struct {
	ID       uint64  `gorm:"primaryKey" json:"id"`
	UserID   uint64  `gorm:"index;not null" json:"user_id"`
	LoggedOn string  `gorm:"not null" json:"logged_on"`
	WeightKg float64 `gorm:"not null" json:"weight_kg"`
	Note     *string `json:"note"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}
