package schedule

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/planwell/dayplan/internal/models"
)

// timeRangeRE matches commitment ranges like "9:00 am to 5:30 pm" inside
// free-text intent.
var timeRangeRE = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:am|pm))\s*(?:to|-)\s*(\d{1,2}:\d{2}\s*(?:am|pm))`)

// intentCues are the weak signals extracted from the free-text intent that
// shape the fallback layout.
type intentCues struct {
	wantsCollege    bool
	morningFocus    bool
	commitmentStart *time.Time
	commitmentEnd   *time.Time
}

func normalizeMeridiem(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "AM", " AM")
	s = strings.ReplaceAll(s, "PM", " PM")
	return strings.TrimSpace(strings.ReplaceAll(s, "  ", " "))
}

func detectCues(intent string, role models.Role) intentCues {
	lower := strings.ToLower(intent)
	cues := intentCues{
		wantsCollege: strings.Contains(lower, "college") ||
			strings.Contains(lower, "class") ||
			strings.Contains(lower, "lecture") ||
			strings.Contains(string(role), "student"),
		morningFocus: strings.Contains(lower, "morning") &&
			(strings.Contains(lower, "focus") || strings.Contains(lower, "deep")),
	}

	if m := timeRangeRE.FindStringSubmatch(intent); m != nil {
		startStr := normalizeMeridiem(m[1])
		endStr := normalizeMeridiem(m[2])
		start, errS := parseClock(startStr)
		end, errE := parseClock(endStr)
		if errS == nil && errE == nil {
			cues.commitmentStart = &start
			cues.commitmentEnd = &end
		}
	}
	return cues
}

func taskLabel(tasks []models.Task, i int) (desc, typ string) {
	if i < len(tasks) {
		return tasks[i].Description, tasks[i].Type
	}
	return "Focus on key objectives", "work"
}

// Fallback lays out a full day of time blocks from the profile and task
// list alone, with no external service. It always returns a complete plan,
// even for an empty task list and a minimal profile.
func Fallback(profile models.Profile, tasks []models.Task, intent string) models.SchedulePlan {
	wakeTime := profile.WakeTime()
	bedtime := profile.BedtimeOrDefault()
	cues := detectCues(intent, profile.Role)

	var items []models.ScheduleItem

	wake := ParseClock(wakeTime)
	cursor := wake

	// Stage 1: morning routine.
	morningEnd := cursor.Add(30 * time.Minute)
	items = append(items, models.ScheduleItem{
		Time:   FormatRange(cursor, morningEnd),
		Task:   "Morning routine & light stretching",
		Reason: "Gentle start",
		Type:   "health",
	})
	cursor = morningEnd

	// Stage 2: high-energy deep work, truncated or dropped around a
	// detected fixed commitment.
	offset := 90 * time.Minute
	if cues.morningFocus {
		offset = 60 * time.Minute
	}
	heStart := wake.Add(offset)
	if cursor.After(heStart) {
		heStart = cursor
	}
	heEnd := heStart.Add(120 * time.Minute)

	switch {
	case cues.commitmentStart != nil && heStart.Before(*cues.commitmentStart):
		end := heEnd
		if end.After(*cues.commitmentStart) {
			end = *cues.commitmentStart
		}
		if end.Sub(heStart) >= 30*time.Minute {
			desc, typ := taskLabel(tasks, 0)
			items = append(items, models.ScheduleItem{
				Time:   FormatRange(heStart, end),
				Task:   "Deep work - " + desc,
				Reason: "High-energy block aligned to your request",
				Type:   typ,
			})
			cursor = end
		}
	case cues.commitmentStart == nil:
		desc, typ := taskLabel(tasks, 0)
		items = append(items, models.ScheduleItem{
			Time:   FormatRange(heStart, heEnd),
			Task:   "Deep work - " + desc,
			Reason: "High-energy block aligned to your request",
			Type:   typ,
		})
		cursor = heEnd
	}

	// Stage 3: short break, only if it fits before the commitment.
	if cues.commitmentStart == nil || !cursor.Add(30*time.Minute).After(*cues.commitmentStart) {
		breakStart := cursor.Add(15 * time.Minute)
		breakEnd := breakStart.Add(15 * time.Minute)
		items = append(items, models.ScheduleItem{
			Time:   FormatRange(breakStart, breakEnd),
			Task:   "Break",
			Reason: "Short reset",
			Type:   "break",
		})
		cursor = breakEnd
	}

	// Stage 4: commitment block if detected, else a second project block.
	if cues.commitmentStart != nil {
		if cursor.Before(*cues.commitmentStart) {
			cursor = *cues.commitmentStart
		}
		items = append(items, models.ScheduleItem{
			Time:   FormatRange(*cues.commitmentStart, *cues.commitmentEnd),
			Task:   "College classes",
			Reason: "Requested college hours",
			Type:   "college",
		})
		cursor = *cues.commitmentEnd
	} else {
		workStart := cursor.Add(15 * time.Minute)
		workEnd := workStart.Add(90 * time.Minute)
		var label, typ string
		switch {
		case len(tasks) > 1:
			label = "Project work - " + tasks[1].Description
			typ = tasks[1].Type
		case len(tasks) == 1:
			label = "Review and refine work"
			typ = "work"
		default:
			label = "Project work - Advance your goals"
			typ = "work"
		}
		items = append(items, models.ScheduleItem{
			Time:   FormatRange(workStart, workEnd),
			Task:   label,
			Reason: "Continued focus",
			Type:   typ,
		})
		cursor = workEnd
	}

	// Stage 5: lunch.
	lunchStart := cursor.Add(60 * time.Minute)
	lunchEnd := lunchStart.Add(60 * time.Minute)
	items = append(items, models.ScheduleItem{
		Time:   FormatRange(lunchStart, lunchEnd),
		Task:   "Lunch break",
		Reason: "Nourishment",
		Type:   "personal",
	})
	cursor = lunchEnd

	// Stage 6: afternoon block.
	afternoonStart := cursor.Add(60 * time.Minute)
	afternoonEnd := afternoonStart.Add(90 * time.Minute)
	afternoonLabel := "Task review & planning"
	if cues.wantsCollege {
		afternoonLabel = "College/Work commitments"
	}
	items = append(items, models.ScheduleItem{
		Time:   FormatRange(afternoonStart, afternoonEnd),
		Task:   afternoonLabel,
		Reason: "Aligned with your request",
		Type:   "college/work",
	})

	// Stage 7: family time, stored range used verbatim.
	familyTime := profile.FamilyTime
	if familyTime == "" {
		familyTime = "6:00 PM - 7:00 PM"
	}
	items = append(items, models.ScheduleItem{
		Time:   familyTime,
		Task:   "Family time",
		Reason: "Preferences",
		Type:   "family",
	})

	// Stage 8: workout, evening by default.
	workoutPref := strings.ToLower(profile.WorkoutPreference)
	if workoutPref == "" {
		workoutPref = "evening"
	}
	workoutTime := "7:00 PM - 8:00 PM"
	if strings.Contains(workoutPref, "morning") {
		workoutTime = fmt.Sprintf("%s - %s", AddMinutes(wakeTime, 30), AddMinutes(wakeTime, 90))
	}
	items = append(items, models.ScheduleItem{
		Time:   workoutTime,
		Task:   "Workout session",
		Reason: titleCase(workoutPref) + " workout",
		Type:   "health",
	})

	// Stage 9: evening review before bed.
	reviewStart := SubtractMinutes(bedtime, 60)
	items = append(items, models.ScheduleItem{
		Time:   fmt.Sprintf("%s - %s", reviewStart, bedtime),
		Task:   "Review and plan for tomorrow",
		Reason: "Reflect and prepare",
		Type:   "personal",
	})

	return models.SchedulePlan{
		Schedule:     items,
		DailySummary: fmt.Sprintf("Optimized using profile and %d tasks. Prompt: %s", len(tasks), intent),
		Tips: []string{
			"Use high-energy blocks for deep work",
			"Take short breaks every hour",
			"Hydrate and move regularly",
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
