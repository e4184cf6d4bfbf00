package schedule

import (
	"strconv"
	"strings"

	"github.com/planwell/dayplan/internal/models"
)

// Complexity is the coarse tier used to pick generation parameters.
type Complexity string

const (
	ComplexitySimple   Complexity = "simple"
	ComplexityModerate Complexity = "moderate"
	ComplexityComplex  Complexity = "complex"
)

// parseDurationHours converts a free-text duration like "1h" or "30m" to
// hours. Strings without a recognizable unit contribute zero.
func parseDurationHours(s string) float64 {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(s, "h"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "h", "")), 64)
		if err != nil {
			return 0
		}
		return v
	case strings.Contains(s, "m"):
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, "m", "")), 64)
		if err != nil {
			return 0
		}
		return v / 60
	default:
		return 0
	}
}

// Classify maps a task list to a complexity tier from task count,
// high-priority count and total estimated hours.
func Classify(tasks []models.Task) Complexity {
	if len(tasks) == 0 {
		return ComplexitySimple
	}

	highPriority := 0
	totalHours := 0.0
	for _, t := range tasks {
		if t.Priority == models.TaskPriorityHigh {
			highPriority++
		}
		d := t.Duration
		if d == "" {
			d = "1h"
		}
		totalHours += parseDurationHours(d)
	}

	switch {
	case len(tasks) > 8 || highPriority > 4 || totalHours > 10:
		return ComplexityComplex
	case len(tasks) > 4 || highPriority > 2 || totalHours > 6:
		return ComplexityModerate
	default:
		return ComplexitySimple
	}
}
