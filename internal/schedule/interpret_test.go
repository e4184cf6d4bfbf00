package schedule

import (
	"strings"
	"testing"
)

func TestInterpret(t *testing.T) {
	t.Parallel()

	t.Run("extracts json between braces", func(t *testing.T) {
		t.Parallel()
		raw := `noise {"schedule": [], "daily_summary": "x", "tips": []} trailer`

		plan, parsed := Interpret(raw)
		if !parsed {
			t.Fatal("expected the response to parse")
		}
		if len(plan.Schedule) != 0 {
			t.Errorf("expected empty schedule, got %d items", len(plan.Schedule))
		}
		if plan.DailySummary != "x" {
			t.Errorf("DailySummary = %q, want %q", plan.DailySummary, "x")
		}
	})

	t.Run("full response", func(t *testing.T) {
		t.Parallel()
		raw := "Here is your schedule:\n" + `{
			"schedule": [
				{"time": "7:00 AM - 7:30 AM", "task": "Morning routine", "reason": "start", "type": "health", "priority": "medium", "flexibility": "fixed"}
			],
			"daily_summary": "A light day",
			"tips": ["Stay hydrated"]
		}` + "\nHope that helps!"

		plan, parsed := Interpret(raw)
		if !parsed {
			t.Fatal("expected the response to parse")
		}
		if len(plan.Schedule) != 1 {
			t.Fatalf("expected 1 item, got %d", len(plan.Schedule))
		}
		if plan.Schedule[0].Task != "Morning routine" {
			t.Errorf("Task = %q", plan.Schedule[0].Task)
		}
		if plan.Schedule[0].Flexibility != "fixed" {
			t.Errorf("Flexibility = %q", plan.Schedule[0].Flexibility)
		}
	})

	t.Run("no braces degrades to stub", func(t *testing.T) {
		t.Parallel()
		raw := strings.Repeat("the model rambled on and on ", 20)

		plan, parsed := Interpret(raw)
		if parsed {
			t.Fatal("expected degraded stub")
		}
		if len(plan.Schedule) != 1 {
			t.Fatalf("stub should have exactly 1 item, got %d", len(plan.Schedule))
		}
		item := plan.Schedule[0]
		if len(item.Task) > 200 {
			t.Errorf("stub label is %d chars, want <= 200", len(item.Task))
		}
		if item.Type != "ai-generated" {
			t.Errorf("stub type = %q, want ai-generated", item.Type)
		}
		if plan.DailySummary != "AI-generated schedule (processing response)" {
			t.Errorf("stub summary = %q", plan.DailySummary)
		}
	})

	t.Run("malformed json degrades to stub", func(t *testing.T) {
		t.Parallel()
		plan, parsed := Interpret(`{"schedule": [unterminated`)
		if parsed {
			t.Fatal("expected degraded stub")
		}
		if len(plan.Schedule) != 1 || plan.Schedule[0].Type != "ai-generated" {
			t.Errorf("unexpected stub shape: %+v", plan.Schedule)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		plan, parsed := Interpret("")
		if parsed {
			t.Fatal("expected degraded stub")
		}
		if plan.Schedule[0].Task == "" {
			t.Error("stub label should not be empty")
		}
	})
}
