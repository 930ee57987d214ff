package services

import (
	"context"
	"time"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const pollInterval = time.Second

// Scheduler drains the Redis schedule set and fires due reminders.
type Scheduler struct {
	db       *pgxpool.Pool
	redis    *redis.Client
	notifier *Notifier
}

func NewScheduler(db *pgxpool.Pool, redisClient *redis.Client, notifier *Notifier) *Scheduler {
	return &Scheduler{db: db, redis: redisClient, notifier: notifier}
}

// Restore rebuilds the schedule set from every reminder still marked
// scheduled, so pending jobs survive a restart.
func (s *Scheduler) Restore() error {
	ids, err := utils.ScheduledReminderIDs(s.db)
	if err != nil {
		return err
	}
	for id, whenTS := range ids {
		if err := utils.ScheduleReminder(s.redis, id, whenTS); err != nil {
			return err
		}
	}
	logging.Logger.Infof("Restored %d scheduled reminders", len(ids))
	return nil
}

// Run polls for due reminders until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	logging.Logger.Info("Reminder dispatcher started")
	for {
		select {
		case <-ctx.Done():
			logging.Logger.Info("Reminder dispatcher stopped")
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

func (s *Scheduler) tick(now time.Time) {
	ids, err := utils.DueReminderIDs(s.redis, now)
	if err != nil {
		logging.Logger.Errorf("Error polling due reminders: %v", err)
	}
	for _, id := range ids {
		s.fire(id, now)
	}
}

func (s *Scheduler) fire(id string, now time.Time) {
	rem, err := utils.GetReminder(id, s.db)
	if err != nil {
		logging.Logger.Errorf("Due reminder %s could not be loaded: %v", id, err)
		return
	}
	// Cancelled or deleted between scheduling and firing; drop it.
	if rem.Status != models.StatusScheduled {
		logging.Logger.Debugf("Skipping reminder %s in state %s", id, rem.Status)
		return
	}

	if err := utils.UpdateReminderStatus(id, models.StatusFired, s.db); err != nil {
		logging.Logger.Errorf("Failed to mark reminder %s fired: %v", id, err)
		return
	}
	logging.Logger.Infof("Reminder %s fired (scheduled for %d)", id, rem.When)

	s.notifier.Notify(rem)

	if next, ok := NextOccurrence(rem, now); ok {
		if err := utils.RescheduleReminder(id, next, s.db); err != nil {
			logging.Logger.Errorf("Failed to advance recurring reminder %s: %v", id, err)
			return
		}
		if err := utils.ScheduleReminder(s.redis, id, next); err != nil {
			logging.Logger.Errorf("Failed to re-add recurring reminder %s to schedule: %v", id, err)
			return
		}
		logging.Logger.Infof("Recurring reminder %s rescheduled for %d", id, next)
	}
}

// NextOccurrence computes the next fire time of a recurring reminder. An
// explicit repeat interval wins over the named recurrence. The next time is
// always in the future relative to now, advancing in whole periods from the
// last fire time so a backlog doesn't fire all at once.
func NextOccurrence(rem *models.Reminder, now time.Time) (int64, bool) {
	var step func(int64) int64

	switch {
	case rem.RepeatInterval != nil && *rem.RepeatInterval > 0:
		interval := *rem.RepeatInterval
		step = func(ts int64) int64 { return ts + interval }
	case rem.Recurrence == models.RecurrenceDaily:
		step = func(ts int64) int64 { return ts + 24*60*60 }
	case rem.Recurrence == models.RecurrenceWeekly:
		step = func(ts int64) int64 { return ts + 7*24*60*60 }
	case rem.Recurrence == models.RecurrenceMonthly:
		step = func(ts int64) int64 {
			return time.Unix(ts, 0).UTC().AddDate(0, 1, 0).Unix()
		}
	default:
		return 0, false
	}

	next := step(rem.When)
	for next <= now.Unix() {
		next = step(next)
	}
	return next, true
}
