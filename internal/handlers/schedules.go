package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/models"
	"github.com/planwell/dayplan/internal/queue"
	"github.com/planwell/dayplan/internal/request"
	"github.com/planwell/dayplan/internal/schedule"
	"github.com/planwell/dayplan/internal/validation"
)

// ScheduleHandler handles schedule generation and feedback requests
type ScheduleHandler struct {
	generator    *schedule.Generator
	scheduleRepo database.ScheduleRepositoryInterface
	taskRepo     database.TaskRepositoryInterface
	feedbackRepo database.FeedbackRepositoryInterface
	jobQueue     queue.JobQueue // nil disables async feedback analysis
	logger       *zap.Logger
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(
	generator *schedule.Generator,
	scheduleRepo database.ScheduleRepositoryInterface,
	taskRepo database.TaskRepositoryInterface,
	feedbackRepo database.FeedbackRepositoryInterface,
	jobQueue queue.JobQueue,
	logger *zap.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		generator:    generator,
		scheduleRepo: scheduleRepo,
		taskRepo:     taskRepo,
		feedbackRepo: feedbackRepo,
		jobQueue:     jobQueue,
		logger:       logger,
	}
}

// RegisterRoutes registers schedule routes on the given router.
// The router should already have the /schedule prefix.
func (h *ScheduleHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/generate", h.GenerateSchedule).Methods("POST")
	r.HandleFunc("/feedback", h.SubmitFeedback).Methods("POST")
	r.HandleFunc("", h.GetSchedule).Methods("GET")
}

// GenerateScheduleRequest represents a schedule generation request
type GenerateScheduleRequest struct {
	Date   string `json:"date"`
	Prompt string `json:"prompt"`
}

// ScheduleResponse wraps a stored schedule for API responses
type ScheduleResponse struct {
	ID       uuid.UUID             `json:"id"`
	Date     string                `json:"date"`
	Source   models.ScheduleSource `json:"source"`
	Plan     models.SchedulePlan   `json:"plan"`
	Rating   *int                  `json:"user_rating,omitempty"`
	Feedback string                `json:"user_feedback,omitempty"`
}

func scheduleResponse(s *models.Schedule) ScheduleResponse {
	return ScheduleResponse{
		ID:       s.ID,
		Date:     s.Date,
		Source:   s.Source,
		Plan:     s.Plan,
		Rating:   s.UserRating,
		Feedback: s.UserFeedback,
	}
}

// GenerateSchedule builds a schedule for the given date and stores it.
// Regenerating for the same date overwrites the stored schedule.
func (h *ScheduleHandler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req GenerateScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}
	if err := validation.ValidateDate(req.Date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	req.Prompt = validation.SanitizeText(req.Prompt)

	ctx := r.Context()

	pending := models.TaskStatusPending
	tasks, err := h.taskRepo.ListByUser(ctx, user.ID, &pending)
	if err != nil {
		h.logger.Error("schedule_tasks_load_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load tasks")
		return
	}

	plan, source, err := h.generator.Generate(ctx, user.Profile, tasks, req.Prompt)
	if err != nil {
		if errors.Is(err, schedule.ErrProfileIncomplete) {
			respondJSONError(w, http.StatusBadRequest, "Bad Request",
				"Profile incomplete: set your name, wake time and bedtime before generating a schedule")
			return
		}
		h.logger.Error("schedule_generate_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to generate schedule")
		return
	}

	stored := &models.Schedule{
		ID:     uuid.New(),
		UserID: user.ID,
		Date:   req.Date,
		Plan:   plan,
		Source: source,
	}
	if err := h.scheduleRepo.Upsert(ctx, stored); err != nil {
		h.logger.Error("schedule_store_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store schedule")
		return
	}

	respondJSON(w, http.StatusOK, scheduleResponse(stored))
}

// GetSchedule returns the stored schedule for a date
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if err := validation.ValidateDate(date); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	stored, err := h.scheduleRepo.GetByUserAndDate(r.Context(), user.ID, date)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondJSONError(w, http.StatusNotFound, "Not Found", "No schedule for that date")
			return
		}
		h.logger.Error("schedule_load_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to load schedule")
		return
	}

	respondJSON(w, http.StatusOK, scheduleResponse(stored))
}

// FeedbackRequest represents a schedule feedback submission
type FeedbackRequest struct {
	ScheduleID      uuid.UUID `json:"schedule_id"`
	OverallRating   *int      `json:"overall_rating"`
	Accuracy        *int      `json:"accuracy,omitempty"`
	Realism         *int      `json:"realism,omitempty"`
	Helpfulness     *int      `json:"helpfulness,omitempty"`
	FeedbackText    string    `json:"feedback_text,omitempty"`
	PositiveAspects []string  `json:"positive_aspects,omitempty"`
	NegativeAspects []string  `json:"negative_aspects,omitempty"`
}

// SubmitFeedback rates a stored schedule and queues it for aggregation
func (h *ScheduleHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.ScheduleID == uuid.Nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "schedule_id is required")
		return
	}

	// A submission without an explicit rating counts as neutral
	overall := 3
	if req.OverallRating != nil {
		overall = *req.OverallRating
	}
	if overall < 1 || overall > 5 {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "overall_rating must be between 1 and 5")
		return
	}
	for name, v := range map[string]*int{"accuracy": req.Accuracy, "realism": req.Realism, "helpfulness": req.Helpfulness} {
		if v != nil && (*v < 1 || *v > 5) {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", name+" must be between 1 and 5")
			return
		}
	}

	ctx := r.Context()
	stored, err := h.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil || stored.UserID != user.ID {
		// Hide other users' schedules
		respondJSONError(w, http.StatusNotFound, "Not Found", "Schedule not found")
		return
	}

	req.FeedbackText = validation.SanitizeText(req.FeedbackText)

	feedback := &models.ScheduleFeedback{
		ID:                uuid.New(),
		ScheduleID:        stored.ID,
		UserID:            user.ID,
		OverallRating:     overall,
		AccuracyRating:    req.Accuracy,
		RealismRating:     req.Realism,
		HelpfulnessRating: req.Helpfulness,
		FeedbackText:      req.FeedbackText,
		PositiveAspects:   req.PositiveAspects,
		NegativeAspects:   req.NegativeAspects,
	}
	if err := h.feedbackRepo.Create(ctx, feedback); err != nil {
		h.logger.Error("feedback_store_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to store feedback")
		return
	}

	if err := h.scheduleRepo.UpdateRating(ctx, stored.ID, overall, req.FeedbackText); err != nil {
		h.logger.Error("rating_update_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update rating")
		return
	}

	if h.jobQueue != nil {
		job := queue.NewJob(queue.JobTypeFeedbackAnalysis, user.ID, &stored.ID)
		if err := h.jobQueue.Enqueue(ctx, job); err != nil {
			// Feedback is already stored; aggregation can be rerun later
			h.logger.Warn("feedback_job_enqueue_failed", zap.Error(err))
		}
	}

	respondJSON(w, http.StatusCreated, feedback)
}
