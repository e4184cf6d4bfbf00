package models

import (
	"time"

	"github.com/google/uuid"
)

// Role describes what the user does with their days.
type Role string

const (
	RoleUnspecified Role = ""
	RoleStudent     Role = "student"
	RoleWorking     Role = "working professional"
)

// PeakEnergy is the window of day the user reports being most energetic.
type PeakEnergy string

const (
	PeakEnergyMorning   PeakEnergy = "morning"
	PeakEnergyAfternoon PeakEnergy = "afternoon"
	PeakEnergyEvening   PeakEnergy = "evening"
	PeakEnergyNight     PeakEnergy = "night"
)

// SleepSchedule holds clock-of-day strings such as "7:00 AM" or "23:00".
type SleepSchedule struct {
	WakeTime string `json:"wake_time"`
	Bedtime  string `json:"bedtime"`
}

// DefaultWakeTime and DefaultBedtime apply when the profile omits a sleep schedule.
const (
	DefaultWakeTime = "7:00 AM"
	DefaultBedtime  = "11:00 PM"
)

// DayCommitment is one fixed weekly commitment window (college/work hours).
type DayCommitment struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Type  string `json:"type,omitempty"`
}

// Profile is the lifestyle/preference record the schedule engine reads.
type Profile struct {
	Name              string                   `json:"name"`
	Role              Role                     `json:"role"`
	PeakEnergy        PeakEnergy               `json:"peak_energy"`
	StudyPreference   string                   `json:"study_preference"`
	FamilyTime        string                   `json:"family_time"`
	WorkoutPreference string                   `json:"workout_preference"`
	WorkoutImpact     string                   `json:"workout_impact"`
	MainGoals         string                   `json:"main_goals"`
	SleepSchedule     SleepSchedule            `json:"sleep_schedule"`
	WeeklySchedule    map[string]DayCommitment `json:"weekly_schedule,omitempty"`
}

// WakeTime returns the profile wake time or the default when unset.
func (p *Profile) WakeTime() string {
	if p.SleepSchedule.WakeTime == "" {
		return DefaultWakeTime
	}
	return p.SleepSchedule.WakeTime
}

// BedtimeOrDefault returns the profile bedtime or the default when unset.
func (p *Profile) BedtimeOrDefault() string {
	if p.SleepSchedule.Bedtime == "" {
		return DefaultBedtime
	}
	return p.SleepSchedule.Bedtime
}

// Complete reports whether the profile carries enough data to generate a
// schedule: a name and a sleep schedule.
func (p *Profile) Complete() bool {
	return p.Name != "" && p.SleepSchedule.WakeTime != "" && p.SleepSchedule.Bedtime != ""
}

// User represents a registered user together with their profile.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	Profile   Profile   `json:"profile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
