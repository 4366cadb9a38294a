package models

import "time"

// Default values applied when the settings singleton is missing or partial.
const (
	DefaultPeriodsPerDay   = 8
	DefaultPeriodMinutes   = 45
	DefaultLunchPeriod     = 5
	DefaultWorkingDaysMask = 0b11111 // Monday through Friday
)

// WeekdayCount is the fixed day range exposed by grid responses.
const WeekdayCount = 5

// TimetableSettings is the per-school scheduling configuration singleton.
// WorkingDays is a bitmask with bit 0 = Monday, bit 4 = Friday. LunchPeriod
// is the 1-based period number locked for the lunch break.
type TimetableSettings struct {
	ID            string    `db:"id" json:"id"`
	WorkingDays   int       `db:"working_days" json:"working_days"`
	PeriodsPerDay int       `db:"periods_per_day" json:"periods_per_day"`
	PeriodMinutes int       `db:"period_minutes" json:"period_minutes"`
	LunchPeriod   int       `db:"lunch_period" json:"lunch_period"`
	MaxDailyLoad  int       `db:"max_daily_load" json:"max_daily_load"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultTimetableSettings returns the lazily-created singleton defaults.
func DefaultTimetableSettings() TimetableSettings {
	return TimetableSettings{
		WorkingDays:   DefaultWorkingDaysMask,
		PeriodsPerDay: DefaultPeriodsPerDay,
		PeriodMinutes: DefaultPeriodMinutes,
		LunchPeriod:   DefaultLunchPeriod,
		MaxDailyLoad:  DefaultPeriodsPerDay,
	}
}

// Normalize fills zero values with defaults so callers never see a partial
// configuration.
func (s *TimetableSettings) Normalize() {
	if s.PeriodsPerDay <= 0 {
		s.PeriodsPerDay = DefaultPeriodsPerDay
	}
	if s.PeriodMinutes <= 0 {
		s.PeriodMinutes = DefaultPeriodMinutes
	}
	if s.LunchPeriod <= 0 || s.LunchPeriod > s.PeriodsPerDay {
		s.LunchPeriod = DefaultLunchPeriod
		if s.LunchPeriod > s.PeriodsPerDay {
			s.LunchPeriod = s.PeriodsPerDay
		}
	}
	if s.MaxDailyLoad <= 0 {
		s.MaxDailyLoad = s.PeriodsPerDay
	}
	if s.WorkingDays&DefaultWorkingDaysMask == 0 {
		s.WorkingDays = DefaultWorkingDaysMask
	}
}

// WorkingDayNumbers expands the mask into ascending 1-based days of week
// (1 = Monday). Only weekdays are considered.
func (s TimetableSettings) WorkingDayNumbers() []int {
	days := make([]int, 0, WeekdayCount)
	for bit := 0; bit < WeekdayCount; bit++ {
		if s.WorkingDays&(1<<bit) != 0 {
			days = append(days, bit+1)
		}
	}
	return days
}

// IsWorkingDay reports whether a 1-based day of week is enabled.
func (s TimetableSettings) IsWorkingDay(day int) bool {
	if day < 1 || day > WeekdayCount {
		return false
	}
	return s.WorkingDays&(1<<(day-1)) != 0
}

var weekdayNames = [WeekdayCount]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// WeekdayName returns the display name for a 1-based day of week.
func WeekdayName(day int) string {
	if day < 1 || day > WeekdayCount {
		return ""
	}
	return weekdayNames[day-1]
}

// WeekdayNames lists the five exposed weekday names in order.
func WeekdayNames() []string {
	return weekdayNames[:]
}
