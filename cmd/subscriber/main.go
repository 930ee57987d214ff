package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/joho/godotenv"
)

// Standalone worker that tails the reminder_notifications channel. Useful as
// the integration point for push services or analytics without touching the
// backend itself.
func main() {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			logging.Logger.Println("No .env file found, continuing..")
		}
	}

	logging.InitLogger("subscriber")

	redisClient := utils.OpenRedisPool(os.Getenv("REDIS_URL"))
	defer redisClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pubsub := redisClient.Subscribe(ctx, utils.NotificationsChannel)
	defer pubsub.Close()

	logging.Logger.Infof("Subscribed to %s, waiting...", utils.NotificationsChannel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			logging.Logger.Info("Subscriber stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var event models.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				logging.Logger.Warnf("Dropping malformed event: %v", err)
				continue
			}
			logging.Logger.Infof("EVENT: type=%s id=%s user=%s title=%q when=%d",
				event.Type, event.ID, event.UserID, event.Title, event.When)
		}
	}
}
