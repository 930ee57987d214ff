package services

import (
	"fmt"
	"net/smtp"
	"os"
	"time"

	"github.com/charan23k2004/Reminder-Agent/logging"
	"github.com/charan23k2004/Reminder-Agent/models"
	"github.com/charan23k2004/Reminder-Agent/utils"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sony/gobreaker"
)

// Mailer sends a reminder email to a single recipient.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host     string
	port     string
	user     string
	password string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type sendgridMailer struct {
	apiKey string
	from   string
}

func (m *sendgridMailer) Send(to, subject, body string) error {
	from := mail.NewEmail("Reminder Agent", m.from)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, body)

	client := sendgrid.NewSendClient(m.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// NewMailerFromEnv picks the configured email provider: SendGrid when an API
// key is present, plain SMTP when a host is set, nil when neither is
// configured (reminders still fire, the email is skipped).
func NewMailerFromEnv() Mailer {
	if apiKey := os.Getenv("SENDGRID_API_KEY"); apiKey != "" {
		from := os.Getenv("SENDGRID_FROM")
		if from == "" {
			from = os.Getenv("SMTP_USER")
		}
		return &sendgridMailer{apiKey: apiKey, from: from}
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		port := os.Getenv("SMTP_PORT")
		if port == "" {
			port = "587"
		}
		return &smtpMailer{
			host:     host,
			port:     port,
			user:     os.Getenv("SMTP_USER"),
			password: os.Getenv("SMTP_PASSWORD"),
		}
	}
	return nil
}

// Notifier delivers fired reminders: it emails the owner and publishes an
// event on the notifications channel for external subscribers.
type Notifier struct {
	db      *pgxpool.Pool
	redis   *redis.Client
	mailer  Mailer
	breaker *gobreaker.CircuitBreaker
}

func NewNotifier(db *pgxpool.Pool, redisClient *redis.Client, mailer Mailer) *Notifier {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mailer-cb",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})

	return &Notifier{db: db, redis: redisClient, mailer: mailer, breaker: breaker}
}

// Notify handles a reminder that just fired. Email failures are logged, not
// returned: a broken mail provider must not stall the dispatch loop, and the
// reminder is already marked fired by then.
func (n *Notifier) Notify(rem *models.Reminder) {
	user, err := utils.GetUserByID(rem.UserID, n.db)
	if err != nil {
		logging.Logger.Errorf("Reminder %s fired but owner lookup failed: %v", rem.ID, err)
	} else {
		n.email(user.Email, rem)
	}

	event := models.Event{
		Type: "reminder.fired",
		Notification: models.Notification{
			ID:     rem.ID,
			UserID: rem.UserID.String(),
			Title:  rem.Title,
			Body:   rem.Body,
			When:   rem.When,
		},
	}
	if err := utils.PublishEvent(n.redis, event); err != nil {
		logging.Logger.Errorf("Failed to publish reminder.fired event for %s: %v", rem.ID, err)
	}
}

func (n *Notifier) email(to string, rem *models.Reminder) {
	if n.mailer == nil {
		logging.Logger.Warn("No mail provider configured; skipping email.")
		return
	}

	subject := fmt.Sprintf("Reminder: %s", rem.Title)
	body := fmt.Sprintf("%s\n\nScheduled for: %s", rem.Body, time.Unix(rem.When, 0).UTC().Format(time.RFC3339))
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		body += fmt.Sprintf("\n\nManage your reminders: %s", baseURL)
	}

	_, err := n.breaker.Execute(func() (interface{}, error) {
		return nil, n.mailer.Send(to, subject, body)
	})
	if err != nil {
		logging.Logger.Errorf("Failed to email reminder %s to %s: %v", rem.ID, to, err)
		return
	}
	logging.Logger.Infof("Emailed reminder %s to %s", rem.ID, to)
}
