package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planwell/dayplan/internal/models"
)

// ScheduleRepository handles schedule database operations
type ScheduleRepository struct {
	db *DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Upsert stores a schedule for a user and date, replacing any existing
// plan for that date.
func (r *ScheduleRepository) Upsert(ctx context.Context, schedule *models.Schedule) error {
	plan, err := json.Marshal(schedule.Plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	query := `
		INSERT INTO schedules (id, user_id, date, plan, source, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id, date) DO UPDATE
		SET plan = EXCLUDED.plan,
		    source = EXCLUDED.source,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at
	`

	err = r.db.QueryRowContext(ctx, query,
		schedule.ID,
		schedule.UserID,
		schedule.Date,
		plan,
		schedule.Source,
		time.Now(),
	).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return nil
}

func scanSchedule(row *sql.Row) (*models.Schedule, error) {
	s := &models.Schedule{}
	var plan []byte
	var date time.Time
	var feedback sql.NullString

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&date,
		&plan,
		&s.Source,
		&s.UserRating,
		&feedback,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan schedule: %w", err)
	}

	s.Date = date.Format("2006-01-02")
	s.UserFeedback = feedback.String
	if err := json.Unmarshal(plan, &s.Plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return s, nil
}

const scheduleColumns = `id, user_id, date, plan, source, user_rating, user_feedback, created_at, updated_at`

// GetByUserAndDate retrieves a user's schedule for a date.
func (r *ScheduleRepository) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE user_id = $1 AND date = $2`
	return scanSchedule(r.db.QueryRowContext(ctx, query, userID, date))
}

// GetByID retrieves a schedule by ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	return scanSchedule(r.db.QueryRowContext(ctx, query, id))
}

// UpdateRating stores the user's rating and feedback text on a schedule.
func (r *ScheduleRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating int, feedbackText string) error {
	query := `
		UPDATE schedules
		SET user_rating = $2, user_feedback = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, rating, feedbackText, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rating update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
