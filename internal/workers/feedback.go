package workers

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/queue"
)

// FeedbackAnalyzer processes feedback analysis jobs. It aggregates the
// feedback submitted for a schedule into a single rating so later quality
// comparisons use the consensus score rather than the last submission.
type FeedbackAnalyzer struct {
	scheduleRepo database.ScheduleRepositoryInterface
	feedbackRepo database.FeedbackRepositoryInterface
}

// NewFeedbackAnalyzer creates a new feedback analyzer
func NewFeedbackAnalyzer(
	scheduleRepo database.ScheduleRepositoryInterface,
	feedbackRepo database.FeedbackRepositoryInterface,
) *FeedbackAnalyzer {
	return &FeedbackAnalyzer{
		scheduleRepo: scheduleRepo,
		feedbackRepo: feedbackRepo,
	}
}

// ProcessFeedbackAnalysisJob recomputes a schedule's rating from all feedback
func (a *FeedbackAnalyzer) ProcessFeedbackAnalysisJob(ctx context.Context, job *queue.Job) error {
	if job.ScheduleID == nil {
		return fmt.Errorf("schedule_id is required for feedback analysis job")
	}

	schedule, err := a.scheduleRepo.GetByID(ctx, *job.ScheduleID)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	// Verify schedule belongs to user
	if schedule.UserID != job.UserID {
		return fmt.Errorf("schedule does not belong to user")
	}

	avg, count, err := a.feedbackRepo.AverageOverallRating(ctx, *job.ScheduleID)
	if err != nil {
		return fmt.Errorf("failed to aggregate feedback: %w", err)
	}
	if count == 0 {
		log.Printf("No feedback for schedule %s, nothing to aggregate", schedule.ID)
		return nil
	}

	rating := int(math.Round(avg))
	if err := a.scheduleRepo.UpdateRating(ctx, schedule.ID, rating, schedule.UserFeedback); err != nil {
		return fmt.Errorf("failed to update schedule rating: %w", err)
	}

	log.Printf("Aggregated %d feedback entries for schedule %s: rating=%d", count, schedule.ID, rating)
	return nil
}

// ProcessJob processes a job based on its type
func (a *FeedbackAnalyzer) ProcessJob(ctx context.Context, msg *queue.Message) error {
	job := msg.Job

	switch job.Type {
	case queue.JobTypeFeedbackAnalysis:
		if err := a.ProcessFeedbackAnalysisJob(ctx, job); err != nil {
			return a.handleJobError(msg, job, err)
		}
		if ackErr := msg.Ack(); ackErr != nil {
			return fmt.Errorf("failed to ack job: %w", ackErr)
		}
		return nil

	default:
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			log.Printf("Failed to nack unknown job type: %v", nackErr)
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// handleJobError applies retry logic to a failed job
func (a *FeedbackAnalyzer) handleJobError(msg *queue.Message, job *queue.Job, err error) error {
	if job.CanRetry() {
		job.IncrementRetry()
		log.Printf("Feedback analysis job %s failed (attempt %d/%d): %v, will retry", job.ID, job.RetryCount, job.MaxRetries, err)
		if nackErr := msg.Nack(true); nackErr != nil {
			log.Printf("Failed to nack job: %v", nackErr)
		}
		return fmt.Errorf("job failed (will retry): %w", err)
	}

	// Max retries exceeded, send to DLQ
	log.Printf("Feedback analysis job %s failed after %d retries: %v, sending to DLQ", job.ID, job.MaxRetries, err)
	if nackErr := msg.Nack(false); nackErr != nil {
		log.Printf("Failed to nack job to DLQ: %v", nackErr)
	}
	return fmt.Errorf("job failed (max retries): %w", err)
}
