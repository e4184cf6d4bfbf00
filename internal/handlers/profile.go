package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/models"
	"github.com/planwell/dayplan/internal/request"
	"github.com/planwell/dayplan/internal/schedule"
	"github.com/planwell/dayplan/internal/validation"
)

// ProfileHandler handles profile requests
type ProfileHandler struct {
	userRepo database.UserRepositoryInterface
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userRepo database.UserRepositoryInterface, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{userRepo: userRepo, logger: logger}
}

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	Name              string                          `json:"name" validate:"required,max=128"`
	Role              string                          `json:"role" validate:"omitempty,max=64"`
	PeakEnergy        string                          `json:"peak_energy" validate:"omitempty,peak_energy"`
	StudyPreference   string                          `json:"study_preference" validate:"omitempty,max=256"`
	FamilyTime        string                          `json:"family_time" validate:"omitempty,max=64"`
	WorkoutPreference string                          `json:"workout_preference" validate:"omitempty,max=256"`
	WorkoutImpact     string                          `json:"workout_impact" validate:"omitempty,max=256"`
	MainGoals         string                          `json:"main_goals" validate:"omitempty,max=1024"`
	SleepSchedule     models.SleepSchedule            `json:"sleep_schedule"`
	WeeklySchedule    map[string]models.DayCommitment `json:"weekly_schedule,omitempty"`
}

// GetProfile returns the authenticated user's profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}
	respondJSON(w, http.StatusOK, user.Profile)
}

// UpdateProfile replaces the authenticated user's profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validation.Validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fieldError := range validationErrors {
				respondJSONError(w, http.StatusBadRequest, "Bad Request", fmt.Sprintf("Validation failed: %s", fieldError.Error()))
				return
			}
		}
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Validation failed")
		return
	}

	// Clock strings must parse in either 12h or 24h form
	for field, value := range map[string]string{
		"wake_time": req.SleepSchedule.WakeTime,
		"bedtime":   req.SleepSchedule.Bedtime,
	} {
		if value != "" && !schedule.ValidClock(value) {
			respondJSONError(w, http.StatusBadRequest, "Bad Request",
				fmt.Sprintf("Invalid %s: %q (use formats like '7:00 AM' or '23:00')", field, value))
			return
		}
	}

	profile := &models.Profile{
		Name:              validation.SanitizeText(req.Name),
		Role:              models.Role(req.Role),
		PeakEnergy:        models.PeakEnergy(req.PeakEnergy),
		StudyPreference:   validation.SanitizeText(req.StudyPreference),
		FamilyTime:        req.FamilyTime,
		WorkoutPreference: validation.SanitizeText(req.WorkoutPreference),
		WorkoutImpact:     validation.SanitizeText(req.WorkoutImpact),
		MainGoals:         validation.SanitizeText(req.MainGoals),
		SleepSchedule:     req.SleepSchedule,
		WeeklySchedule:    req.WeeklySchedule,
	}

	ctx := r.Context()
	if err := h.userRepo.UpdateProfile(ctx, user.ID, profile); err != nil {
		h.logger.Error("profile_update_failed", zap.Error(err), zap.String("user_id", user.ID.String()))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
