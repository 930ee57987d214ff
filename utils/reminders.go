package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrReminderNotFound = errors.New("reminder not found")

func SaveReminder(rem models.Reminder, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `INSERT INTO reminders
		(id, user_id, title, body, when_ts, created_at, status, snooze_until, recurrence, repeat_interval, category, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`
	_, err := db.Exec(ctx, stmt,
		rem.ID, rem.UserID, rem.Title, rem.Body, rem.When, rem.CreatedAt,
		rem.Status, rem.SnoozeUntil, rem.Recurrence, rem.RepeatInterval, rem.Category, rem.Tags)
	if err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}
	return nil
}

func GetReminder(id string, db *pgxpool.Pool) (*models.Reminder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `SELECT id, user_id, title, body, when_ts, created_at, status, snooze_until, recurrence, repeat_interval, category, tags
		FROM reminders WHERE id = $1;`
	row := db.QueryRow(ctx, stmt, id)

	var rem models.Reminder
	err := row.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.Body, &rem.When, &rem.CreatedAt,
		&rem.Status, &rem.SnoozeUntil, &rem.Recurrence, &rem.RepeatInterval, &rem.Category, &rem.Tags)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("error loading reminder: %w", err)
	}

	return &rem, nil
}

func GetReminders(userID uuid.UUID, db *pgxpool.Pool) ([]models.Reminder, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `SELECT id, user_id, title, body, when_ts, created_at, status, snooze_until, recurrence, repeat_interval, category, tags
		FROM reminders WHERE user_id = $1 ORDER BY when_ts;`
	rows, err := db.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying reminders: %w", err)
	}
	defer rows.Close()

	reminders := []models.Reminder{}
	for rows.Next() {
		var rem models.Reminder
		err := rows.Scan(&rem.ID, &rem.UserID, &rem.Title, &rem.Body, &rem.When, &rem.CreatedAt,
			&rem.Status, &rem.SnoozeUntil, &rem.Recurrence, &rem.RepeatInterval, &rem.Category, &rem.Tags)
		if err != nil {
			return nil, fmt.Errorf("error scanning reminder row: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error processing reminders: %w", err)
	}

	return reminders, nil
}

func UpdateReminderStatus(id string, status string, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, "UPDATE reminders SET status = $1 WHERE id = $2;", status, id)
	if err != nil {
		return fmt.Errorf("failed to update reminder status: %w", err)
	}
	return nil
}

// RescheduleReminder moves a reminder to a new fire time and puts it back
// into the scheduled state. Used for both recurrence advances and snoozing.
func RescheduleReminder(id string, whenTS int64, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE reminders SET when_ts = $1, status = $2 WHERE id = $3;"
	_, err := db.Exec(ctx, stmt, whenTS, models.StatusScheduled, id)
	if err != nil {
		return fmt.Errorf("failed to reschedule reminder: %w", err)
	}
	return nil
}

func SnoozeReminder(id string, untilTS int64, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "UPDATE reminders SET snooze_until = $1, when_ts = $1, status = $2 WHERE id = $3;"
	_, err := db.Exec(ctx, stmt, untilTS, models.StatusScheduled, id)
	if err != nil {
		return fmt.Errorf("failed to snooze reminder: %w", err)
	}
	return nil
}

func DeleteReminder(id string, db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := db.Exec(ctx, "DELETE FROM reminders WHERE id = $1;", id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

// FiredReminders returns the caller's fired reminders, optionally limited to
// those that fired after the given timestamp. Backs the poll endpoint.
func FiredReminders(userID uuid.UUID, since int64, db *pgxpool.Pool) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := `SELECT id, title, body, when_ts FROM reminders
		WHERE status = $1 AND user_id = $2 AND when_ts > $3 ORDER BY when_ts;`
	rows, err := db.Query(ctx, stmt, models.StatusFired, userID, since)
	if err != nil {
		return nil, fmt.Errorf("error querying fired reminders: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.When); err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error processing notifications: %w", err)
	}

	return notifications, nil
}

// ScheduledReminderIDs lists every reminder still in the scheduled state,
// with its fire time. Used to rebuild the Redis schedule on startup.
func ScheduledReminderIDs(db *pgxpool.Pool) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := db.Query(ctx, "SELECT id, when_ts FROM reminders WHERE status = $1;", models.StatusScheduled)
	if err != nil {
		return nil, fmt.Errorf("error querying scheduled reminders: %w", err)
	}
	defer rows.Close()

	ids := map[string]int64{}
	for rows.Next() {
		var (
			id     string
			whenTS int64
		)
		if err := rows.Scan(&id, &whenTS); err != nil {
			return nil, fmt.Errorf("error scanning scheduled reminder: %w", err)
		}
		ids[id] = whenTS
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error processing scheduled reminders: %w", err)
	}

	return ids, nil
}
