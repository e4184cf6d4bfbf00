package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/request"
	"github.com/planwell/dayplan/internal/services/ai"
	"github.com/planwell/dayplan/internal/validation"
)

// ChatHandler handles general AI chat requests
type ChatHandler struct {
	chatService *ai.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *ai.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// MaxChatMessageLength is the maximum length for chat messages
const MaxChatMessageLength = 4000

// ChatRequest represents a chat message
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant's reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles a single chat message for the authenticated user
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	user := request.UserFromContext(r)
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Message = validation.SanitizeText(req.Message)
	if req.Message == "" {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Message is required")
		return
	}
	if len(req.Message) > MaxChatMessageLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Message too long")
		return
	}

	session := h.chatService.GetOrCreateSession(user.ID)
	reply := h.chatService.Respond(r.Context(), session, req.Message)

	respondJSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
