package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/planwell/dayplan/internal/models"
)

// TaskRepository handles task database operations
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create creates a new task
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, description, priority, duration, type, preferences, status, added_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING added_date
	`

	err := r.db.QueryRowContext(ctx, query,
		task.ID,
		task.UserID,
		task.Description,
		task.Priority,
		task.Duration,
		task.Type,
		task.Preferences,
		task.Status,
		time.Now(),
	).Scan(&task.AddedDate)

	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task := &models.Task{}
	query := `
		SELECT id, user_id, description, priority, duration, type, preferences, status, added_date, completed_date
		FROM tasks
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID,
		&task.UserID,
		&task.Description,
		&task.Priority,
		&task.Duration,
		&task.Type,
		&task.Preferences,
		&task.Status,
		&task.AddedDate,
		&task.CompletedDate,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListByUser retrieves a user's tasks, optionally filtered by status,
// newest first.
func (r *TaskRepository) ListByUser(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]models.Task, error) {
	query := `
		SELECT id, user_id, description, priority, duration, type, preferences, status, added_date, completed_date
		FROM tasks
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY added_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []models.Task
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Description,
			&task.Priority,
			&task.Duration,
			&task.Type,
			&task.Preferences,
			&task.Status,
			&task.AddedDate,
			&task.CompletedDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// Complete marks a task completed and stamps the completion time.
func (r *TaskRepository) Complete(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE tasks
		SET status = $3, completed_date = $4
		WHERE id = $1 AND user_id = $2 AND status = $5
	`
	result, err := r.db.ExecContext(ctx, query, id, userID,
		models.TaskStatusCompleted, time.Now(), models.TaskStatusPending)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check completion result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a task owned by the user
func (r *TaskRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
