package models

import (
	"time"

	"github.com/google/uuid"
)

// TaskPriority represents how urgent a task is.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is one pending or completed item the user wants scheduled.
// Duration is free text as entered ("1h", "30m"); the engine parses it
// leniently and treats anything unreadable as one hour.
type Task struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	Description   string       `json:"description"`
	Priority      TaskPriority `json:"priority"`
	Duration      string       `json:"duration"`
	Type          string       `json:"type"`
	Preferences   string       `json:"preferences,omitempty"`
	Status        TaskStatus   `json:"status"`
	AddedDate     time.Time    `json:"added_date"`
	CompletedDate *time.Time   `json:"completed_date,omitempty"`
}
