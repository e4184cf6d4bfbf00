package queue

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewJob(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	scheduleID := uuid.New()

	job := NewJob(JobTypeFeedbackAnalysis, userID, &scheduleID)

	if job.ID == uuid.Nil {
		t.Error("Expected job ID to be set")
	}
	if job.Type != JobTypeFeedbackAnalysis {
		t.Errorf("Expected type %s, got %s", JobTypeFeedbackAnalysis, job.Type)
	}
	if job.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, job.UserID)
	}
	if job.ScheduleID == nil || *job.ScheduleID != scheduleID {
		t.Errorf("Expected schedule ID %s, got %v", scheduleID, job.ScheduleID)
	}
	if job.CreatedAt.IsZero() {
		t.Error("Expected created time to be set")
	}
	if job.MaxRetries != 3 {
		t.Errorf("Expected max retries 3, got %d", job.MaxRetries)
	}
}

func TestJobRetry(t *testing.T) {
	t.Parallel()

	job := NewJob(JobTypeFeedbackAnalysis, uuid.New(), nil)

	for i := 0; i < job.MaxRetries; i++ {
		if !job.CanRetry() {
			t.Fatalf("Expected job to be retryable at count %d", job.RetryCount)
		}
		job.IncrementRetry()
	}

	if job.CanRetry() {
		t.Errorf("Expected job to be exhausted after %d retries", job.RetryCount)
	}
}
