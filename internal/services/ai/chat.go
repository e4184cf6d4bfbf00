package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/schedule"
)

// schedulingKeywords route scheduling questions to the dedicated
// generation flow instead of free-form chat.
var schedulingKeywords = []string{
	"schedule", "plan", "organize", "task", "productivity", "time", "day", "week", "optimize",
}

// SchedulingRedirectMessage is returned when a chat message looks like a
// scheduling request.
const SchedulingRedirectMessage = "I notice you're asking about scheduling or task organization. " +
	"For the best scheduling experience, please use the dedicated scheduling feature. " +
	"Add your tasks in the Tasks section and then generate a schedule in the Schedule section. " +
	"This lets me create a personalized schedule based on your profile and preferences."

// UnavailableMessage is returned when the generation service is down.
const UnavailableMessage = "I'm currently unable to access the AI service. " +
	"Please try again later, or use the scheduling feature which works without AI assistance."

// maxHistoryExchanges bounds how much conversation history goes into the
// prompt.
const maxHistoryExchanges = 5

// Exchange is one user/assistant turn pair.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ChatSession holds the conversation history for one user.
type ChatSession struct {
	UserID       uuid.UUID
	Exchanges    []Exchange
	CreatedAt    time.Time
	LastActivity time.Time
}

// ChatService manages per-user chat sessions backed by a generation
// provider.
type ChatService struct {
	provider schedule.Provider
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*ChatSession
}

// NewChatService creates a chat service. provider may be nil, in which
// case every message gets the unavailability answer.
func NewChatService(provider schedule.Provider, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		provider: provider,
		logger:   logger,
		sessions: make(map[uuid.UUID]*ChatSession),
	}
}

// GetOrCreateSession returns the session for a user, creating it on first
// use.
func (s *ChatService) GetOrCreateSession(userID uuid.UUID) *ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions[userID]; ok {
		session.LastActivity = time.Now()
		return session
	}

	session := &ChatSession{
		UserID:       userID,
		Exchanges:    make([]Exchange, 0),
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
	s.sessions[userID] = session
	return session
}

// CloseSession discards a user's conversation history.
func (s *ChatService) CloseSession(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// IsSchedulingRequest reports whether a message looks like a scheduling
// question.
func IsSchedulingRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range schedulingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Respond answers a chat message, recording the exchange in the session.
// Scheduling questions are redirected without a provider call, and
// provider failures degrade to a canned answer instead of an error.
func (s *ChatService) Respond(ctx context.Context, session *ChatSession, message string) string {
	reply := s.reply(ctx, message, session.Exchanges)

	s.mu.Lock()
	session.Exchanges = append(session.Exchanges, Exchange{User: message, Assistant: reply})
	session.LastActivity = time.Now()
	s.mu.Unlock()

	return reply
}

func (s *ChatService) reply(ctx context.Context, message string, history []Exchange) string {
	if IsSchedulingRequest(message) {
		return SchedulingRedirectMessage
	}
	if s.provider == nil || !s.provider.Available(ctx) {
		return UnavailableMessage
	}

	prompt := buildChatPrompt(message, history)
	params := schedule.Params{
		Temperature:   0.7,
		TopP:          0.9,
		MaxTokens:     2048,
		RepeatPenalty: 1.1,
		TopK:          40,
	}

	reply, err := s.provider.Generate(ctx, prompt, params)
	if err != nil {
		s.logger.Warn("chat_generation_failed", zap.Error(err))
		return UnavailableMessage
	}
	return reply
}

func buildChatPrompt(message string, history []Exchange) string {
	var historyText strings.Builder
	start := 0
	if len(history) > maxHistoryExchanges {
		start = len(history) - maxHistoryExchanges
	}
	for _, e := range history[start:] {
		fmt.Fprintf(&historyText, "User: %s\nAssistant: %s\n\n", e.User, e.Assistant)
	}

	return fmt.Sprintf(`You are a helpful, knowledgeable and versatile assistant for a daily planning application. You can help with general questions, explanations, study support and creative problem solving.

CONVERSATION HISTORY:
%s

CURRENT USER REQUEST:
%s

INSTRUCTIONS:
- Be helpful, friendly and concise
- For complex requests, break them down into manageable steps
- Always prioritize accuracy and clarity
- If you don't know something, admit it honestly rather than making things up

Provide your response directly without any special formatting. Be conversational and helpful.`,
		historyText.String(), message)
}
