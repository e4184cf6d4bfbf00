package database

import (
	"context"

	"github.com/google/uuid"

	"github.com/planwell/dayplan/internal/models"
)

// UserRepositoryInterface defines the interface for user repository operations
// This interface enables better testability by allowing mock implementations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, profile *models.Profile) error
	List(ctx context.Context) ([]*models.User, error)
}

// TaskRepositoryInterface defines the interface for task repository operations
type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]models.Task, error)
	Complete(ctx context.Context, id, userID uuid.UUID) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// ScheduleRepositoryInterface defines the interface for schedule repository operations
type ScheduleRepositoryInterface interface {
	Upsert(ctx context.Context, schedule *models.Schedule) error
	GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.Schedule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating int, feedbackText string) error
}

// FeedbackRepositoryInterface defines the interface for feedback repository operations
type FeedbackRepositoryInterface interface {
	Create(ctx context.Context, feedback *models.ScheduleFeedback) error
	ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]models.ScheduleFeedback, error)
	AverageOverallRating(ctx context.Context, scheduleID uuid.UUID) (float64, int, error)
}

// Ensure concrete types implement the interfaces
var (
	_ UserRepositoryInterface     = (*UserRepository)(nil)
	_ TaskRepositoryInterface     = (*TaskRepository)(nil)
	_ ScheduleRepositoryInterface = (*ScheduleRepository)(nil)
	_ FeedbackRepositoryInterface = (*FeedbackRepository)(nil)
)
