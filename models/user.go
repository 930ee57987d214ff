package models

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	CreatedAt    int64     `db:"created_at" json:"created_at"`
}
