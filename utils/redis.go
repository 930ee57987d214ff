package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/redis/go-redis/v9"
)

const (
	// ScheduleKey is the sorted set holding reminder ids scored by fire time.
	ScheduleKey = "reminder:schedule"
	// NotificationsChannel carries reminder.fired events for subscribers.
	NotificationsChannel = "reminder_notifications"
)

// OpenRedisPool initializes a Redis connection pool
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	// Configure connection pooling
	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis db 0: %v", err)
	}

	return client
}

// ScheduleReminder adds (or moves) a reminder in the schedule set.
func ScheduleReminder(client *redis.Client, id string, whenTS int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.ZAdd(ctx, ScheduleKey, redis.Z{Score: float64(whenTS), Member: id}).Err()
}

// UnscheduleReminder drops a reminder from the schedule set. Removing an id
// that is not scheduled is not an error.
func UnscheduleReminder(client *redis.Client, id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return client.ZRem(ctx, ScheduleKey, id).Err()
}

// DueReminderIDs returns the ids whose fire time is at or before now,
// removing each from the set. A removal count of 1 claims the id, so a
// second dispatcher polling concurrently cannot fire the same reminder.
func DueReminderIDs(client *redis.Client, now time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ids, err := client.ZRangeByScore(ctx, ScheduleKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now.Unix()),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("error reading due reminders: %w", err)
	}

	claimed := make([]string, 0, len(ids))
	for _, id := range ids {
		removed, err := client.ZRem(ctx, ScheduleKey, id).Result()
		if err != nil {
			return claimed, fmt.Errorf("error claiming reminder %s: %w", id, err)
		}
		if removed == 1 {
			claimed = append(claimed, id)
		}
	}

	return claimed, nil
}

// PublishEvent pushes a reminder event onto the notifications channel.
func PublishEvent(client *redis.Client, event models.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error encoding event: %w", err)
	}

	return client.Publish(ctx, NotificationsChannel, payload).Err()
}
