package schedule

import (
	"fmt"
	"strings"

	"github.com/planwell/dayplan/internal/models"
)

// Matching between task descriptions and item labels is plain substring
// containment. It can both under- and over-count, but it is kept as-is so
// scores stay comparable across generated and rule-based schedules.

var workTypes = map[string]bool{
	"work":         true,
	"study":        true,
	"college/work": true,
}

var personalTypes = map[string]bool{
	"break":    true,
	"personal": true,
	"family":   true,
	"health":   true,
}

func inPeakWindow(peak models.PeakEnergy, timeRange string) bool {
	switch peak {
	case models.PeakEnergyMorning:
		startPart := strings.SplitN(timeRange, "-", 2)[0]
		return strings.Contains(timeRange, "AM") && !strings.Contains(startPart, "12:")
	case models.PeakEnergyAfternoon:
		if !strings.Contains(timeRange, "PM") {
			return false
		}
		for _, h := range []string{"12:", "1:", "2:", "3:", "4:"} {
			if strings.Contains(timeRange, h) {
				return true
			}
		}
	case models.PeakEnergyEvening:
		if !strings.Contains(timeRange, "PM") {
			return false
		}
		for _, h := range []string{"5:", "6:", "7:", "8:"} {
			if strings.Contains(timeRange, h) {
				return true
			}
		}
	}
	return false
}

// Score computes the five quality dimensions for a plan against the profile
// and task list it was generated from, and returns an augmented copy with
// per-dimension scores, the overall mean and improvement suggestions. The
// input plan is not modified.
func Score(plan models.SchedulePlan, profile models.Profile, tasks []models.Task) models.SchedulePlan {
	items := plan.Schedule
	peak := profile.PeakEnergy
	if peak == "" {
		peak = models.PeakEnergyMorning
	}

	var scores models.ProductivityScore

	// Energy alignment: high-priority task items landing in the peak window.
	highPriorityCount := 0
	highPriorityInPeak := 0
	for _, item := range items {
		label := strings.ToLower(item.Task)
		isHigh := false
		for _, t := range tasks {
			if t.Priority == models.TaskPriorityHigh &&
				strings.Contains(label, strings.ToLower(t.Description)) {
				isHigh = true
				break
			}
		}
		if !isHigh {
			continue
		}
		highPriorityCount++
		if inPeakWindow(peak, item.Time) {
			highPriorityInPeak++
		}
	}
	if highPriorityCount > 0 {
		scores.EnergyAlignment = highPriorityInPeak * 100 / highPriorityCount
	} else {
		scores.EnergyAlignment = 100
	}

	// Task coverage: fraction of tasks mentioned by some item.
	scheduled := 0
	for _, t := range tasks {
		desc := strings.ToLower(t.Description)
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Task), desc) {
				scheduled++
				break
			}
		}
	}
	if len(tasks) > 0 {
		scores.TaskCoverage = scheduled * 100 / len(tasks)
	} else {
		scores.TaskCoverage = 100
	}

	// Work/life balance from the work-time ratio of classified items.
	workMinutes := 0
	personalMinutes := 0
	breakMinutes := 0
	for _, item := range items {
		typ := strings.ToLower(item.Type)
		d := RangeMinutes(item.Time)
		switch {
		case workTypes[typ]:
			workMinutes += d
		case personalTypes[typ]:
			personalMinutes += d
			if typ == "break" {
				breakMinutes += d
			}
		}
	}
	total := workMinutes + personalMinutes
	if total > 0 {
		ratio := float64(workMinutes) / float64(total)
		var balance float64
		switch {
		case ratio >= 0.5 && ratio <= 0.7:
			balance = 100
		case ratio < 0.5:
			balance = 70 + ratio*60
		default:
			balance = 100 - (ratio-0.7)*200
			if balance < 0 {
				balance = 0
			}
		}
		if breakMinutes >= 60 {
			balance += 10
			if balance > 100 {
				balance = 100
			}
		}
		scores.WorkLifeBalance = int(balance)
	} else {
		scores.WorkLifeBalance = 50
	}

	// Realism: deductions from a 14-hour reference day.
	realism := 100
	totalScheduled := 0
	for _, item := range items {
		totalScheduled += RangeMinutes(item.Time)
	}
	availableMinutes := 14 * 60
	if float64(totalScheduled) > float64(availableMinutes)*1.2 {
		realism -= 30
	} else if totalScheduled > availableMinutes {
		realism -= 15
	}
	for _, item := range items {
		typ := strings.ToLower(item.Type)
		if RangeMinutes(item.Time) > 180 && typ != "sleep" && typ != "college" && typ != "work" {
			realism -= 5
		}
	}
	if breakMinutes < 30 {
		realism -= 20
	}
	if realism < 0 {
		realism = 0
	}
	scores.Realism = realism

	// Time management: reward batching and explicit buffer blocks.
	timeMgmt := 70
	distinctTypes := map[string]bool{}
	for _, item := range items {
		distinctTypes[item.Type] = true
	}
	if float64(len(distinctTypes)) < float64(len(items))*0.7 {
		timeMgmt += 15
	}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Task), "buffer") {
			timeMgmt += 15
			break
		}
	}
	if timeMgmt > 100 {
		timeMgmt = 100
	}
	scores.TimeManagement = timeMgmt

	overall := (scores.EnergyAlignment + scores.TaskCoverage + scores.WorkLifeBalance +
		scores.Realism + scores.TimeManagement) / 5

	var suggestions []string
	if scores.EnergyAlignment < 70 {
		suggestions = append(suggestions, "Consider scheduling more high-priority tasks during peak energy hours")
	}
	if scores.TaskCoverage < 100 {
		suggestions = append(suggestions, fmt.Sprintf("Missing %d tasks from the schedule", len(tasks)-scheduled))
	}
	if scores.WorkLifeBalance < 60 {
		suggestions = append(suggestions, "Schedule may be unbalanced - add more breaks or personal time")
	}
	if scores.Realism < 70 {
		suggestions = append(suggestions, "Schedule might be too packed - consider reducing tasks or extending time")
	}

	out := plan
	out.ProductivityScore = &scores
	out.OverallQuality = overall
	out.ImprovementSuggestions = suggestions
	return out
}
