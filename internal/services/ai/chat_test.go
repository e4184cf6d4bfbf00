package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/planwell/dayplan/internal/schedule"
)

type stubProvider struct {
	available bool
	response  string
	err       error

	lastPrompt string
}

func (s *stubProvider) Available(ctx context.Context) bool { return s.available }

func (s *stubProvider) Generate(ctx context.Context, prompt string, params schedule.Params) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func TestIsSchedulingRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		message string
		want    bool
	}{
		{message: "Can you plan my day?", want: true},
		{message: "help me organize things", want: true},
		{message: "I need a SCHEDULE", want: true},
		{message: "What's the capital of France?", want: false},
		{message: "explain pointers in Go", want: false},
	}

	for _, tt := range tests {
		if got := IsSchedulingRequest(tt.message); got != tt.want {
			t.Errorf("IsSchedulingRequest(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestChatRespond(t *testing.T) {
	t.Parallel()

	t.Run("scheduling request redirected without provider call", func(t *testing.T) {
		t.Parallel()
		provider := &stubProvider{available: true, response: "should not be used"}
		svc := NewChatService(provider, nil)
		session := svc.GetOrCreateSession(uuid.New())

		reply := svc.Respond(context.Background(), session, "please schedule my tasks")
		if reply != SchedulingRedirectMessage {
			t.Errorf("reply = %q, want the redirect message", reply)
		}
		if provider.lastPrompt != "" {
			t.Error("provider should not have been called")
		}
	})

	t.Run("general question answered", func(t *testing.T) {
		t.Parallel()
		provider := &stubProvider{available: true, response: "Paris."}
		svc := NewChatService(provider, nil)
		session := svc.GetOrCreateSession(uuid.New())

		reply := svc.Respond(context.Background(), session, "What's the capital of France?")
		if reply != "Paris." {
			t.Errorf("reply = %q, want the provider answer", reply)
		}
		if !strings.Contains(provider.lastPrompt, "What's the capital of France?") {
			t.Error("prompt missing the user message")
		}
		if len(session.Exchanges) != 1 || session.Exchanges[0].Assistant != "Paris." {
			t.Errorf("exchange not recorded: %+v", session.Exchanges)
		}
	})

	t.Run("history included in prompt", func(t *testing.T) {
		t.Parallel()
		provider := &stubProvider{available: true, response: "ok"}
		svc := NewChatService(provider, nil)
		session := svc.GetOrCreateSession(uuid.New())

		svc.Respond(context.Background(), session, "my name is Sam")
		svc.Respond(context.Background(), session, "what did I just tell you?")

		if !strings.Contains(provider.lastPrompt, "User: my name is Sam") {
			t.Error("prompt missing the previous exchange")
		}
	})

	t.Run("unavailable provider gives canned answer", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(&stubProvider{available: false}, nil)
		session := svc.GetOrCreateSession(uuid.New())

		reply := svc.Respond(context.Background(), session, "tell me a joke")
		if reply != UnavailableMessage {
			t.Errorf("reply = %q, want the unavailable message", reply)
		}
	})

	t.Run("provider error gives canned answer", func(t *testing.T) {
		t.Parallel()
		svc := NewChatService(&stubProvider{available: true, err: errors.New("boom")}, nil)
		session := svc.GetOrCreateSession(uuid.New())

		reply := svc.Respond(context.Background(), session, "tell me a joke")
		if reply != UnavailableMessage {
			t.Errorf("reply = %q, want the unavailable message", reply)
		}
	})
}

func TestChatSessions(t *testing.T) {
	t.Parallel()

	svc := NewChatService(nil, nil)
	userID := uuid.New()

	first := svc.GetOrCreateSession(userID)
	second := svc.GetOrCreateSession(userID)
	if first != second {
		t.Error("expected the same session for repeated lookups")
	}

	svc.CloseSession(userID)
	third := svc.GetOrCreateSession(userID)
	if third == first {
		t.Error("expected a fresh session after close")
	}
}
