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

var ErrUserNotFound = errors.New("user not found")

func OpenDB(dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("error parsing DSN: %w", err)
	}

	config.MaxConns = 50
	config.MaxConnIdleTime = 20 * time.Second
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Test the connection
	if err = pool.Ping(context.Background()); err != nil {
		return nil, err
	}

	return pool, nil
}

// InitSchema creates the users and reminders tables when they don't exist yet,
// so a fresh database works without a separate migration step.
func InitSchema(db *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at BIGINT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			when_ts BIGINT NOT NULL,
			created_at BIGINT NOT NULL,
			status TEXT NOT NULL,
			snooze_until BIGINT,
			recurrence TEXT NOT NULL DEFAULT '',
			repeat_interval BIGINT,
			category TEXT NOT NULL DEFAULT '',
			tags TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reminders_status ON reminders (status, when_ts)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema init failed: %w", err)
		}
	}
	return nil
}

func EmailInUse(email string, db *pgxpool.Pool) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)"

	var exists bool
	err := db.QueryRow(ctx, stmt, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("database error checking email: %w", err)
	}

	return exists, nil
}

func AddUser(email string, password string, db *pgxpool.Pool) (uuid.UUID, error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error hashing password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id := uuid.New()
	stmt := "INSERT INTO users (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4);"
	_, err = db.Exec(ctx, stmt, id, email, passwordHash, time.Now().Unix())
	if err != nil {
		return uuid.Nil, fmt.Errorf("error adding user: %w", err)
	}

	return id, nil
}

func GetUserByEmail(email string, db *pgxpool.Pool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, email, password_hash, created_at FROM users WHERE email = $1;"
	row := db.QueryRow(ctx, stmt, email)

	var (
		u    models.User
		hash string
	)
	if err := row.Scan(&u.ID, &u.Email, &hash, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}
	u.PasswordHash = []byte(hash)

	return &u, nil
}

func GetUserByID(id uuid.UUID, db *pgxpool.Pool) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "SELECT id, email, created_at FROM users WHERE id = $1;"
	row := db.QueryRow(ctx, stmt, id)

	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	return &u, nil
}
