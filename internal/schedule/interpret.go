package schedule

import (
	"encoding/json"
	"strings"

	"github.com/planwell/dayplan/internal/models"
)

// Interpret extracts a schedule plan from raw generated text. It looks for
// the outermost brace pair and parses the enclosed JSON; anything the model
// wrapped around it is ignored. On failure it degrades to a one-item stub
// carrying a snippet of the raw text, never an error.
func Interpret(raw string) (models.SchedulePlan, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return stubPlan(raw), false
	}

	var plan models.SchedulePlan
	if err := json.Unmarshal([]byte(raw[start:end+1]), &plan); err != nil {
		return stubPlan(raw), false
	}
	return plan, true
}

func stubPlan(raw string) models.SchedulePlan {
	snippet := strings.TrimSpace(raw)
	if len(snippet) > 200 {
		snippet = snippet[:200]
	}
	if snippet == "" {
		snippet = "Schedule generation in progress"
	}
	return models.SchedulePlan{
		Schedule: []models.ScheduleItem{
			{
				Time:   "Generated by AI",
				Task:   snippet,
				Reason: "Please refer to the full AI response",
				Type:   "ai-generated",
			},
		},
		DailySummary: "AI-generated schedule (processing response)",
		Tips:         []string{"Review the generated schedule", "Adjust as needed", "Stay flexible"},
	}
}
