package schedule

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/models"
)

// ErrProfileIncomplete is returned when a schedule is requested for a user
// whose profile lacks a name or sleep schedule.
var ErrProfileIncomplete = errors.New("profile incomplete: wake and sleep times are required")

// Provider is the text-generation service boundary. Available is a cheap
// liveness probe; Generate submits a prompt with tuned parameters and
// returns free-form text.
type Provider interface {
	Available(ctx context.Context) bool
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Generator turns a profile, task list and free-text intent into a scored
// daily plan, preferring the external service and degrading to the
// rule-based layout when it is unavailable or fails.
type Generator struct {
	provider Provider
	logger   *zap.Logger
}

// NewGenerator creates a Generator. provider may be nil, in which case
// every request takes the rule-based path.
func NewGenerator(provider Provider, logger *zap.Logger) *Generator {
	return &Generator{provider: provider, logger: logger}
}

// Generate produces a complete scored plan. It never fails once the
// profile is complete: external-service errors degrade to the rule-based
// path instead of surfacing.
func (g *Generator) Generate(ctx context.Context, profile models.Profile, tasks []models.Task, intent string) (models.SchedulePlan, models.ScheduleSource, error) {
	if !profile.Complete() {
		return models.SchedulePlan{}, "", ErrProfileIncomplete
	}

	if g.provider != nil && g.provider.Available(ctx) {
		complexity := Classify(tasks)
		params := ParamsFor(complexity, intent)
		prompt := BuildPrompt(profile, tasks, intent)

		raw, err := g.provider.Generate(ctx, prompt, params)
		if err == nil {
			plan, parsed := Interpret(raw)
			if !parsed {
				g.logger.Warn("schedule_response_unparsed",
					zap.Int("response_len", len(raw)))
			}
			g.logger.Info("schedule_generated",
				zap.String("source", string(models.ScheduleSourceLLM)),
				zap.String("complexity", string(complexity)),
				zap.Int("task_count", len(tasks)),
				zap.Int("item_count", len(plan.Schedule)))
			return Score(plan, profile, tasks), models.ScheduleSourceLLM, nil
		}
		g.logger.Warn("schedule_generation_failed", zap.Error(err))
	}

	plan := Fallback(profile, tasks, intent)
	g.logger.Info("schedule_generated",
		zap.String("source", string(models.ScheduleSourceFallback)),
		zap.Int("task_count", len(tasks)),
		zap.Int("item_count", len(plan.Schedule)))
	return Score(plan, profile, tasks), models.ScheduleSourceFallback, nil
}
