package schedule

import (
	"reflect"
	"strings"
	"testing"

	"github.com/planwell/dayplan/internal/models"
)

func TestScoreTaskCoverage(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		{Description: "Write report", Priority: models.TaskPriorityMedium, Type: "work"},
		{Description: "Prepare slides", Priority: models.TaskPriorityMedium, Type: "work"},
	}

	tests := []struct {
		name  string
		items []models.ScheduleItem
		tasks []models.Task
		want  int
	}{
		{
			name: "all tasks covered",
			items: []models.ScheduleItem{
				{Time: "9:00 AM - 11:00 AM", Task: "Deep work - Write report", Type: "work"},
				{Time: "11:00 AM - 12:00 PM", Task: "Prepare slides for Friday", Type: "work"},
			},
			tasks: tasks,
			want:  100,
		},
		{
			name: "no tasks covered",
			items: []models.ScheduleItem{
				{Time: "9:00 AM - 11:00 AM", Task: "Something else entirely", Type: "work"},
			},
			tasks: tasks,
			want:  0,
		},
		{
			name:  "empty task list scores full",
			items: []models.ScheduleItem{{Time: "9:00 AM - 10:00 AM", Task: "Anything", Type: "work"}},
			tasks: nil,
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scored := Score(models.SchedulePlan{Schedule: tt.items}, models.Profile{}, tt.tasks)
			if scored.ProductivityScore.TaskCoverage != tt.want {
				t.Errorf("TaskCoverage = %d, want %d", scored.ProductivityScore.TaskCoverage, tt.want)
			}
		})
	}
}

func TestScoreWorkLifeBalance(t *testing.T) {
	t.Parallel()

	t.Run("ideal ratio with breaks", func(t *testing.T) {
		t.Parallel()
		// 360 min work, 240 min personal of which 60 is break: ratio 0.6.
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 12:00 PM", Task: "Deep work", Type: "work"},
			{Time: "1:00 PM - 4:00 PM", Task: "Study session", Type: "study"},
			{Time: "12:00 PM - 1:00 PM", Task: "Lunch", Type: "personal"},
			{Time: "4:00 PM - 5:00 PM", Task: "Break", Type: "break"},
			{Time: "5:00 PM - 7:00 PM", Task: "Family time", Type: "family"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if scored.ProductivityScore.WorkLifeBalance != 100 {
			t.Errorf("WorkLifeBalance = %d, want 100", scored.ProductivityScore.WorkLifeBalance)
		}
	})

	t.Run("all work scores low", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 12:00 PM", Task: "Deep work", Type: "work"},
			{Time: "12:00 PM - 3:00 PM", Task: "More work", Type: "work"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if got := scored.ProductivityScore.WorkLifeBalance; got >= 60 {
			t.Errorf("WorkLifeBalance = %d, want below 60 for an all-work day", got)
		}
	})

	t.Run("nothing classified scores neutral", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 10:00 AM", Task: "Mystery", Type: "ai-generated"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if scored.ProductivityScore.WorkLifeBalance != 50 {
			t.Errorf("WorkLifeBalance = %d, want 50", scored.ProductivityScore.WorkLifeBalance)
		}
	})
}

func TestScoreEnergyAlignment(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		{Description: "Write report", Priority: models.TaskPriorityHigh, Type: "work"},
	}

	tests := []struct {
		name  string
		peak  models.PeakEnergy
		items []models.ScheduleItem
		want  int
	}{
		{
			name: "morning peak hit",
			peak: models.PeakEnergyMorning,
			items: []models.ScheduleItem{
				{Time: "9:00 AM - 11:00 AM", Task: "Deep work - Write report", Type: "work"},
			},
			want: 100,
		},
		{
			name: "morning peak missed",
			peak: models.PeakEnergyMorning,
			items: []models.ScheduleItem{
				{Time: "3:00 PM - 5:00 PM", Task: "Deep work - Write report", Type: "work"},
			},
			want: 0,
		},
		{
			name: "afternoon peak hit",
			peak: models.PeakEnergyAfternoon,
			items: []models.ScheduleItem{
				{Time: "2:00 PM - 4:00 PM", Task: "Deep work - Write report", Type: "work"},
			},
			want: 100,
		},
		{
			name: "evening peak hit",
			peak: models.PeakEnergyEvening,
			items: []models.ScheduleItem{
				{Time: "6:00 PM - 8:00 PM", Task: "Deep work - Write report", Type: "work"},
			},
			want: 100,
		},
		{
			name: "no high-priority matches",
			peak: models.PeakEnergyMorning,
			items: []models.ScheduleItem{
				{Time: "9:00 AM - 10:00 AM", Task: "Morning routine", Type: "health"},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			scored := Score(models.SchedulePlan{Schedule: tt.items}, models.Profile{PeakEnergy: tt.peak}, tasks)
			if scored.ProductivityScore.EnergyAlignment != tt.want {
				t.Errorf("EnergyAlignment = %d, want %d", scored.ProductivityScore.EnergyAlignment, tt.want)
			}
		})
	}
}

func TestScoreRealism(t *testing.T) {
	t.Parallel()

	t.Run("balanced day stays high", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 11:00 AM", Task: "Deep work", Type: "work"},
			{Time: "11:00 AM - 11:30 AM", Task: "Break", Type: "break"},
			{Time: "12:00 PM - 1:00 PM", Task: "Lunch", Type: "personal"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if scored.ProductivityScore.Realism != 100 {
			t.Errorf("Realism = %d, want 100", scored.ProductivityScore.Realism)
		}
	})

	t.Run("no breaks penalized", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 11:00 AM", Task: "Deep work", Type: "work"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if scored.ProductivityScore.Realism != 80 {
			t.Errorf("Realism = %d, want 80", scored.ProductivityScore.Realism)
		}
	})

	t.Run("marathon personal block penalized", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 1:00 PM", Task: "Gaming", Type: "personal"},
			{Time: "1:00 PM - 2:00 PM", Task: "Break", Type: "break"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		// 240 min block that is not sleep/college/work costs 5.
		if scored.ProductivityScore.Realism != 95 {
			t.Errorf("Realism = %d, want 95", scored.ProductivityScore.Realism)
		}
	})

	t.Run("overpacked day penalized", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "6:00 AM - 12:00 PM", Task: "Work", Type: "work"},
			{Time: "12:00 PM - 6:00 PM", Task: "Work", Type: "work"},
			{Time: "6:00 PM - 11:59 PM", Task: "Work", Type: "work"},
			{Time: "9:00 AM - 10:00 AM", Task: "Break", Type: "break"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		// 18.98 hours > 14 * 1.2 costs 30.
		if scored.ProductivityScore.Realism != 70 {
			t.Errorf("Realism = %d, want 70", scored.ProductivityScore.Realism)
		}
	})
}

func TestScoreTimeManagement(t *testing.T) {
	t.Parallel()

	t.Run("batching and buffers rewarded", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 10:00 AM", Task: "Emails", Type: "work"},
			{Time: "10:00 AM - 11:00 AM", Task: "Code review", Type: "work"},
			{Time: "11:00 AM - 12:00 PM", Task: "Planning", Type: "work"},
			{Time: "12:00 PM - 12:30 PM", Task: "Buffer time", Type: "personal"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if scored.ProductivityScore.TimeManagement != 100 {
			t.Errorf("TimeManagement = %d, want 100", scored.ProductivityScore.TimeManagement)
		}
	})

	t.Run("scattered types stay at base", func(t *testing.T) {
		t.Parallel()
		items := []models.ScheduleItem{
			{Time: "9:00 AM - 10:00 AM", Task: "Emails", Type: "work"},
			{Time: "10:00 AM - 11:00 AM", Task: "Gym", Type: "health"},
		}
		scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{}, nil)
		if scored.ProductivityScore.TimeManagement != 70 {
			t.Errorf("TimeManagement = %d, want 70", scored.ProductivityScore.TimeManagement)
		}
	})
}

func TestScoreSuggestionsAndOverall(t *testing.T) {
	t.Parallel()

	tasks := []models.Task{
		{Description: "Write report", Priority: models.TaskPriorityHigh, Type: "work"},
		{Description: "Prepare slides", Priority: models.TaskPriorityMedium, Type: "work"},
	}
	items := []models.ScheduleItem{
		{Time: "3:00 PM - 6:00 PM", Task: "Deep work - Write report", Type: "work"},
	}

	scored := Score(models.SchedulePlan{Schedule: items}, models.Profile{PeakEnergy: models.PeakEnergyMorning}, tasks)

	ps := scored.ProductivityScore
	wantOverall := (ps.EnergyAlignment + ps.TaskCoverage + ps.WorkLifeBalance + ps.Realism + ps.TimeManagement) / 5
	if scored.OverallQuality != wantOverall {
		t.Errorf("OverallQuality = %d, want %d", scored.OverallQuality, wantOverall)
	}

	joined := strings.Join(scored.ImprovementSuggestions, "|")
	if !strings.Contains(joined, "peak energy") {
		t.Errorf("expected an energy-alignment suggestion, got %q", joined)
	}
	if !strings.Contains(joined, "Missing 1 tasks") {
		t.Errorf("expected a coverage suggestion, got %q", joined)
	}
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	plan := models.SchedulePlan{
		Schedule: []models.ScheduleItem{
			{Time: "9:00 AM - 10:00 AM", Task: "Deep work", Type: "work"},
		},
		DailySummary: "a day",
		Tips:         []string{"tip"},
	}
	before := plan

	first := Score(plan, models.Profile{}, nil)
	second := Score(plan, models.Profile{}, nil)

	if !reflect.DeepEqual(plan, before) {
		t.Error("Score mutated its input")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Score is not idempotent for identical inputs")
	}
	if plan.ProductivityScore != nil {
		t.Error("input plan gained scores")
	}
}
