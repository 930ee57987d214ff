package services

import (
	"fmt"
	"strings"

	"github.com/charan23k2004/Reminder-Agent/models"
)

// Priority labels assigned by the rule agent.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// SuggestCategory guesses a category from the reminder text using the same
// keyword rules the original agent shipped with.
func SuggestCategory(title, body string) string {
	txt := strings.ToLower(title + " " + body)
	switch {
	case containsAny(txt, "meeting", "call"):
		return "Work"
	case containsAny(txt, "medicine", "pill", "doctor"):
		return "Health"
	case containsAny(txt, "birthday", "party"):
		return "Personal"
	case containsAny(txt, "exam", "assignment", "study"):
		return "Education"
	}
	return "General"
}

// ClassifyPriority ranks a reminder by urgency keywords.
func ClassifyPriority(title, body string) string {
	txt := strings.ToLower(title + " " + body)
	if containsAny(txt, "urgent", "asap", "deadline", "exam", "doctor") {
		return PriorityHigh
	}
	if containsAny(txt, "meeting", "project", "call") {
		return PriorityMedium
	}
	return PriorityLow
}

// SuggestSnoozeMinutes picks a snooze length appropriate for the reminder.
func SuggestSnoozeMinutes(title string) int {
	txt := strings.ToLower(title)
	switch {
	case strings.Contains(txt, "meeting"):
		return 10
	case strings.Contains(txt, "medicine"):
		return 60
	case strings.Contains(txt, "birthday"):
		return 1440
	}
	return 5
}

// SummarizeReminders builds a short per-category count summary.
func SummarizeReminders(reminders []models.Reminder) string {
	counts := map[string]int{}
	order := []string{}
	for _, r := range reminders {
		cat := r.Category
		if cat == "" {
			cat = "General"
		}
		if _, seen := counts[cat]; !seen {
			order = append(order, cat)
		}
		counts[cat]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d reminders.\n", len(reminders))
	for _, cat := range order {
		fmt.Fprintf(&b, "- %d in %s\n", counts[cat], cat)
	}
	return b.String()
}
