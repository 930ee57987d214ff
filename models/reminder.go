package models

import (
	"github.com/google/uuid"
)

// Reminder lifecycle states
const (
	StatusScheduled = "scheduled"
	StatusFired     = "fired"
	StatusCancelled = "cancelled"
)

// Recurrence values accepted on create
const (
	RecurrenceDaily   = "daily"
	RecurrenceWeekly  = "weekly"
	RecurrenceMonthly = "monthly"
)

type Reminder struct {
	ID             string    `db:"id" json:"id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Title          string    `db:"title" json:"title"`
	Body           string    `db:"body" json:"body"`
	When           int64     `db:"when_ts" json:"when"`
	CreatedAt      int64     `db:"created_at" json:"created_at"`
	Status         string    `db:"status" json:"status"`
	SnoozeUntil    *int64    `db:"snooze_until" json:"snooze_until,omitempty"`
	Recurrence     string    `db:"recurrence" json:"recurrence,omitempty"`
	RepeatInterval *int64    `db:"repeat_interval" json:"repeat_interval,omitempty"`
	Category       string    `db:"category" json:"category,omitempty"`
	Tags           string    `db:"tags" json:"tags,omitempty"`
}

// Notification is the shape returned by the poll endpoint and published
// on the reminder_notifications channel.
type Notification struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	When   int64  `json:"when"`
}

// Event wraps a notification for pub/sub subscribers.
type Event struct {
	Type string `json:"type"`
	Notification
}
