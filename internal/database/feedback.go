package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planwell/dayplan/internal/models"
)

// FeedbackRepository handles schedule feedback database operations
type FeedbackRepository struct {
	db *DB
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create appends a feedback record for a schedule
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.ScheduleFeedback) error {
	positive, err := json.Marshal(feedback.PositiveAspects)
	if err != nil {
		return fmt.Errorf("failed to marshal positive aspects: %w", err)
	}
	negative, err := json.Marshal(feedback.NegativeAspects)
	if err != nil {
		return fmt.Errorf("failed to marshal negative aspects: %w", err)
	}

	query := `
		INSERT INTO schedule_feedback
			(id, schedule_id, user_id, overall_rating, accuracy_rating, realism_rating, helpfulness_rating, feedback_text, positive_aspects, negative_aspects, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		feedback.ID,
		feedback.ScheduleID,
		feedback.UserID,
		feedback.OverallRating,
		feedback.AccuracyRating,
		feedback.RealismRating,
		feedback.HelpfulnessRating,
		feedback.FeedbackText,
		positive,
		negative,
		time.Now(),
	).Scan(&feedback.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

// ListBySchedule retrieves all feedback for a schedule, newest first
func (r *FeedbackRepository) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]models.ScheduleFeedback, error) {
	query := `
		SELECT id, schedule_id, user_id, overall_rating, accuracy_rating, realism_rating, helpfulness_rating, feedback_text, positive_aspects, negative_aspects, created_at
		FROM schedule_feedback
		WHERE schedule_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.ScheduleFeedback
	for rows.Next() {
		var f models.ScheduleFeedback
		var positive, negative []byte
		if err := rows.Scan(
			&f.ID,
			&f.ScheduleID,
			&f.UserID,
			&f.OverallRating,
			&f.AccuracyRating,
			&f.RealismRating,
			&f.HelpfulnessRating,
			&f.FeedbackText,
			&positive,
			&negative,
			&f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		if err := json.Unmarshal(positive, &f.PositiveAspects); err != nil {
			return nil, fmt.Errorf("failed to unmarshal positive aspects: %w", err)
		}
		if err := json.Unmarshal(negative, &f.NegativeAspects); err != nil {
			return nil, fmt.Errorf("failed to unmarshal negative aspects: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback: %w", err)
	}
	return out, nil
}

// AverageOverallRating computes the mean overall rating for a schedule.
// count is zero when no feedback exists yet.
func (r *FeedbackRepository) AverageOverallRating(ctx context.Context, scheduleID uuid.UUID) (avg float64, count int, err error) {
	query := `
		SELECT COALESCE(AVG(overall_rating), 0), COUNT(*)
		FROM schedule_feedback
		WHERE schedule_id = $1
	`
	if err := r.db.QueryRowContext(ctx, query, scheduleID).Scan(&avg, &count); err != nil {
		return 0, 0, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, count, nil
}
