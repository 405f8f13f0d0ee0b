package group

import (
	"context"
	"errors"
	"time"

	"pact/internal/calendar"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")
var ErrAlreadyMember = errors.New("already a member")

type Service struct {
	DB *gorm.DB
}

// Create makes a new group and its owner membership atomically.
func (s *Service) Create(ctx context.Context, userID uint64, name string) (Group, error) {
	g := Group{Name: name, CreatedBy: userID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&g).Error; err != nil {
			return err
		}
		m := Member{GroupID: g.ID, UserID: userID, Role: "owner"}
		return tx.Create(&m).Error
	})
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

// Join adds the user to an existing group; the invite code is the group id.
func (s *Service) Join(ctx context.Context, userID, groupID uint64) (Group, error) {
	var g Group
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id=?", groupID).First(&g).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing Member
		err := tx.Where("group_id=? AND user_id=?", groupID, userID).First(&existing).Error
		if err == nil {
			return ErrAlreadyMember
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		m := Member{GroupID: groupID, UserID: userID, Role: "member"}
		return tx.Create(&m).Error
	})
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

// ListForUser returns every group the user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID uint64) ([]Group, error) {
	var groups []Group
	err := s.DB.WithContext(ctx).
		Joins("JOIN members ON members.group_id = groups.id").
		Where("members.user_id = ?", userID).
		Order("groups.created_at asc").
		Find(&groups).Error
	return groups, err
}

// MemberIDs returns the group's roster.
func (s *Service) MemberIDs(ctx context.Context, groupID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.DB.WithContext(ctx).Model(&Member{}).
		Where("group_id=?", groupID).
		Pluck("user_id", &ids).Error
	return ids, err
}

// IsMember reports whether the user belongs to the group.
func (s *Service) IsMember(ctx context.Context, groupID, userID uint64) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&Member{}).
		Where("group_id=? AND user_id=?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

type ActivityInput struct {
	GroupID     uint64
	UserID      uint64
	Day         string
	GymDone     bool
	SleepDone   bool
	ProteinDone bool
	ConfirmDone bool
	Note        *string
	PhotoURL    *string
}

// UpsertActivity writes the day's ritual record, OR-merging habit flags
// with any existing row for the (group, user, day) bucket. A flag once
// true stays true for the day.
func (s *Service) UpsertActivity(ctx context.Context, in ActivityInput) (Activity, error) {
	var row Activity
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("group_id=? AND user_id=? AND day=?", in.GroupID, in.UserID, in.Day).
			First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = Activity{
				GroupID:     in.GroupID,
				UserID:      in.UserID,
				Day:         in.Day,
				GymDone:     in.GymDone,
				SleepDone:   in.SleepDone,
				ProteinDone: in.ProteinDone,
				ConfirmDone: in.ConfirmDone,
				Note:        in.Note,
				PhotoURL:    in.PhotoURL,
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}

		row.GymDone = row.GymDone || in.GymDone
		row.SleepDone = row.SleepDone || in.SleepDone
		row.ProteinDone = row.ProteinDone || in.ProteinDone
		row.ConfirmDone = row.ConfirmDone || in.ConfirmDone
		if in.Note != nil {
			row.Note = in.Note
		}
		if in.PhotoURL != nil {
			row.PhotoURL = in.PhotoURL
		}
		row.UpdatedAt = time.Now()
		return tx.Save(&row).Error
	})
	if err != nil {
		return Activity{}, err
	}
	return row, nil
}

// EnsureProteinDone marks the day's protein flag when the journal
// reports the goal reached; all other fields stay untouched.
func (s *Service) EnsureProteinDone(ctx context.Context, groupID, userID uint64, day string) error {
	_, err := s.UpsertActivity(ctx, ActivityInput{
		GroupID:     groupID,
		UserID:      userID,
		Day:         day,
		ProteinDone: true,
	})
	return err
}

type CheckinInput struct {
	GroupID     uint64
	UserID      uint64
	CheckinDate string
	Note        *string
	PhotoURL    *string
}

// CreateCheckin appends a gym check-in tagged with its Monday week start.
func (s *Service) CreateCheckin(ctx context.Context, in CheckinInput) (GymCheckin, error) {
	c := GymCheckin{
		GroupID:     in.GroupID,
		UserID:      in.UserID,
		CheckinDate: in.CheckinDate,
		WeekStart:   calendar.WeekStart(in.CheckinDate),
		Note:        in.Note,
		PhotoURL:    in.PhotoURL,
	}
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return GymCheckin{}, err
	}
	return c, nil
}

// WeekActivities lists one member's ritual records for the week
// starting at weekStart.
func (s *Service) WeekActivities(ctx context.Context, groupID, userID uint64, weekStart string) ([]Activity, error) {
	weekEnd := calendar.ShiftDays(weekStart, 6)
	var rows []Activity
	err := s.DB.WithContext(ctx).
		Where("group_id=? AND user_id=? AND day >= ? AND day <= ?", groupID, userID, weekStart, weekEnd).
		Find(&rows).Error
	return rows, err
}

// WeekGroupActivities lists every member's ritual records for the week,
// for the group consistency grid.
func (s *Service) WeekGroupActivities(ctx context.Context, groupID uint64, weekStart string) ([]Activity, error) {
	weekEnd := calendar.ShiftDays(weekStart, 6)
	var rows []Activity
	err := s.DB.WithContext(ctx).
		Where("group_id=? AND day >= ? AND day <= ?", groupID, weekStart, weekEnd).
		Find(&rows).Error
	return rows, err
}

// CheckinsInRange lists the group's check-in feed for an inclusive
// date range, newest first.
func (s *Service) CheckinsInRange(ctx context.Context, groupID uint64, startDay, endDay string, limit int) ([]GymCheckin, error) {
	var rows []GymCheckin
	err := s.DB.WithContext(ctx).
		Where("group_id=? AND checkin_date >= ? AND checkin_date <= ?", groupID, startDay, endDay).
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// HasCheckinOn reports whether the member already checked in that day.
func (s *Service) HasCheckinOn(ctx context.Context, groupID, userID uint64, day string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&GymCheckin{}).
		Where("group_id=? AND user_id=? AND checkin_date=?", groupID, userID, day).
		Count(&count).Error
	return count > 0, err
}

// AttendanceDays counts the member's distinct check-in days for the
// given week start. Row count never inflates the result.
func (s *Service) AttendanceDays(ctx context.Context, groupID, userID uint64, weekStart string) (int, error) {
	var days []string
	err := s.DB.WithContext(ctx).Model(&GymCheckin{}).
		Where("group_id=? AND user_id=? AND week_start=?", groupID, userID, weekStart).
		Distinct().
		Pluck("checkin_date", &days).Error
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// Profiles loads display data for a roster, keyed by user id. Users
// without a profile row are simply absent.
func (s *Service) Profiles(ctx context.Context, userIDs []uint64) (map[uint64]Profile, error) {
	out := make(map[uint64]Profile, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}
	var rows []Profile
	if err := s.DB.WithContext(ctx).Where("user_id IN ?", userIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}

type ProfileInput struct {
	DisplayName     string
	Bio             string
	AvatarURL       *string
	HeightCm        float64
	CurrentWeightKg float64
	TargetWeightKg  float64
	WeeklyGymTarget int
	ActivityLevel   string
}

// UpsertProfile writes the user's profile row, creating it on first save.
func (s *Service) UpsertProfile(ctx context.Context, userID uint64, in ProfileInput) (Profile, error) {
	p := Profile{
		UserID:          userID,
		DisplayName:     in.DisplayName,
		Bio:             in.Bio,
		AvatarURL:       in.AvatarURL,
		HeightCm:        in.HeightCm,
		CurrentWeightKg: in.CurrentWeightKg,
		TargetWeightKg:  in.TargetWeightKg,
		WeeklyGymTarget: in.WeeklyGymTarget,
		ActivityLevel:   in.ActivityLevel,
		UpdatedAt:       time.Now(),
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(&p).Error
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// UpsertWeight writes one weight log per (user, day); logging twice on a
// day overwrites. The profile's current weight follows the latest log.
func (s *Service) UpsertWeight(ctx context.Context, userID uint64, loggedOn string, weightKg float64, note *string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w := WeightLog{UserID: userID, LoggedOn: loggedOn, WeightKg: weightKg, Note: note}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "logged_on"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight_kg", "note"}),
		}).Create(&w).Error
		if err != nil {
			return err
		}

		return tx.Model(&Profile{}).
			Where("user_id=?", userID).
			Updates(map[string]any{"current_weight_kg": weightKg, "updated_at": time.Now()}).Error
	})
}

// RecentWeights lists the user's latest weight logs, newest first.
func (s *Service) RecentWeights(ctx context.Context, userID uint64, limit int) ([]WeightLog, error) {
	var rows []WeightLog
	err := s.DB.WithContext(ctx).
		Where("user_id=?", userID).
		Order("logged_on desc").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
