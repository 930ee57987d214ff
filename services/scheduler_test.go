package services

import (
	"testing"
	"time"

	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rem  models.Reminder
		want int64
		ok   bool
	}{
		{
			name: "One-shot reminder has no next occurrence",
			rem:  models.Reminder{When: now.Unix()},
			ok:   false,
		},
		{
			name: "Repeat interval advances by the interval",
			rem:  models.Reminder{When: now.Unix(), RepeatInterval: int64Ptr(600)},
			want: now.Unix() + 600,
			ok:   true,
		},
		{
			name: "Repeat interval wins over named recurrence",
			rem:  models.Reminder{When: now.Unix(), RepeatInterval: int64Ptr(600), Recurrence: models.RecurrenceDaily},
			want: now.Unix() + 600,
			ok:   true,
		},
		{
			name: "Zero repeat interval falls back to recurrence",
			rem:  models.Reminder{When: now.Unix(), RepeatInterval: int64Ptr(0), Recurrence: models.RecurrenceDaily},
			want: now.Unix() + 24*60*60,
			ok:   true,
		},
		{
			name: "Daily recurrence advances one day",
			rem:  models.Reminder{When: now.Unix(), Recurrence: models.RecurrenceDaily},
			want: now.Unix() + 24*60*60,
			ok:   true,
		},
		{
			name: "Weekly recurrence advances one week",
			rem:  models.Reminder{When: now.Unix(), Recurrence: models.RecurrenceWeekly},
			want: now.Unix() + 7*24*60*60,
			ok:   true,
		},
		{
			name: "Monthly recurrence advances one calendar month",
			rem:  models.Reminder{When: now.Unix(), Recurrence: models.RecurrenceMonthly},
			want: time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC).Unix(),
			ok:   true,
		},
		{
			name: "Stale fire time skips the backlog",
			rem: models.Reminder{
				When:       now.Add(-72 * time.Hour).Unix(),
				Recurrence: models.RecurrenceDaily,
			},
			want: now.Add(24 * time.Hour).Unix(),
			ok:   true,
		},
		{
			name: "Unknown recurrence string has no next occurrence",
			rem:  models.Reminder{When: now.Unix(), Recurrence: "hourly"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextOccurrence(&tt.rem, now)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
				assert.Greater(t, got, now.Unix(), "next occurrence must be in the future")
			}
		})
	}
}
