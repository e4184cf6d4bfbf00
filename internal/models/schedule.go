package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleSource tags which path produced a schedule.
type ScheduleSource string

const (
	// ScheduleSourceLLM marks schedules produced by the external generation service.
	ScheduleSourceLLM ScheduleSource = "llm"
	// ScheduleSourceFallback marks schedules produced by the rule-based generator.
	ScheduleSourceFallback ScheduleSource = "fallback"
)

// ScheduleItem is one time block of a daily schedule. Time is a human range
// such as "7:00 AM - 7:30 AM"; items are chronological by construction.
type ScheduleItem struct {
	Time        string `json:"time"`
	Task        string `json:"task"`
	Reason      string `json:"reason"`
	Type        string `json:"type"`
	Priority    string `json:"priority,omitempty"`
	Flexibility string `json:"flexibility,omitempty"`
}

// ProductivityScore holds the five per-dimension quality scores, 0-100 each.
type ProductivityScore struct {
	EnergyAlignment int `json:"energy_alignment"`
	TaskCoverage    int `json:"task_coverage"`
	WorkLifeBalance int `json:"work_life_balance"`
	Realism         int `json:"realism"`
	TimeManagement  int `json:"time_management"`
}

// SchedulePlan is the engine-facing schedule payload: the part that is
// generated, interpreted and scored. It also defines the wire format the
// generation service is asked to produce.
type SchedulePlan struct {
	Schedule               []ScheduleItem     `json:"schedule"`
	DailySummary           string             `json:"daily_summary"`
	Tips                   []string           `json:"tips"`
	ProductivityScore      *ProductivityScore `json:"productivity_score,omitempty"`
	OverallQuality         int                `json:"overall_quality,omitempty"`
	ImprovementSuggestions []string           `json:"improvement_suggestions,omitempty"`
}

// Schedule is the persisted daily schedule for one user and date.
// One row per (user, date); regenerating upserts.
type Schedule struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	Date         string         `json:"date"` // YYYY-MM-DD
	Plan         SchedulePlan   `json:"plan"`
	Source       ScheduleSource `json:"source"`
	UserRating   *int           `json:"user_rating,omitempty"`
	UserFeedback string         `json:"user_feedback,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ScheduleFeedback is one append-only feedback record for a schedule.
type ScheduleFeedback struct {
	ID                uuid.UUID `json:"id"`
	ScheduleID        uuid.UUID `json:"schedule_id"`
	UserID            uuid.UUID `json:"user_id"`
	OverallRating     int       `json:"overall_rating"`
	AccuracyRating    *int      `json:"accuracy_rating,omitempty"`
	RealismRating     *int      `json:"realism_rating,omitempty"`
	HelpfulnessRating *int      `json:"helpfulness_rating,omitempty"`
	FeedbackText      string    `json:"feedback_text,omitempty"`
	PositiveAspects   []string  `json:"positive_aspects,omitempty"`
	NegativeAspects   []string  `json:"negative_aspects,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}
