package entities

import (
	"time"

	"github.com/google/uuid"
)

// User is an account of the service. Web users sign in with email and
// password, chat users are identified by their Telegram ID.
type User struct {
	ID           uuid.UUID
	Email        *string // nullable for chat-only accounts
	Username     string
	PasswordHash *string // nullable for chat-only accounts
	TelegramID   *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a web account.
func NewUser(email, username, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        &email,
		Username:     username,
		PasswordHash: &passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTelegramUser creates an account for a Telegram chat user.
func NewTelegramUser(telegramID int64, username string) *User {
	now := time.Now()
	return &User{
		ID:         uuid.New(),
		Username:   username,
		TelegramID: &telegramID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Session is an authenticated browser session.
type Session struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession issues a session for the user valid for ttl.
func NewSession(userID uuid.UUID, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session is no longer valid at t.
func (s *Session) Expired(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// PasswordReset is a single-use token allowing a password change.
type PasswordReset struct {
	Token     string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// NewPasswordReset issues a reset token for the user valid for ttl.
func NewPasswordReset(userID uuid.UUID, ttl time.Duration) *PasswordReset {
	now := time.Now()
	return &PasswordReset{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// Usable reports whether the token can still be redeemed at t.
func (r *PasswordReset) Usable(t time.Time) bool {
	return r.UsedAt == nil && t.Before(r.ExpiresAt)
}
