package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/models"
	"github.com/planwell/dayplan/internal/request"
	"github.com/planwell/dayplan/internal/services/token"
	"github.com/planwell/dayplan/internal/validation"
)

// UserHandler handles user registration and account requests
type UserHandler struct {
	userRepo  database.UserRepositoryInterface
	jwtSecret string
	logger    *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo database.UserRepositoryInterface, jwtSecret string, logger *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, jwtSecret: jwtSecret, logger: logger}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// RegisterResponse carries the new user and a bearer token for the API
type RegisterResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new user account
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
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

	req.Username = validation.SanitizeText(req.Username)

	ctx := r.Context()
	user := &models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Profile:  models.Profile{},
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			respondJSONError(w, http.StatusConflict, "Conflict", "A user with that username or email already exists")
			return
		}
		h.logger.Error("user_create_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to create user")
		return
	}

	bearer, err := token.Mint(h.jwtSecret, user.ID, token.DefaultTTL)
	if err != nil {
		h.logger.Error("token_mint_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to issue token")
		return
	}

	h.logger.Info("user_registered", zap.String("user_id", user.ID.String()))

	respondJSON(w, http.StatusCreated, RegisterResponse{User: user, Token: bearer})
}

// Me returns the authenticated user
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ListUsers returns all users. Admin only; gate with middleware.RequireAdmin.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.List(r.Context())
	if err != nil {
		h.logger.Error("user_list_failed", zap.Error(err))
		respondJSONError(w, http.StatusInternalServerError, "Internal Server Error", "Failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}
