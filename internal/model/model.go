package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Message roles. The schema enforces the same set with a CHECK constraint.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// User is an account holder. The password column stores a bcrypt hash and is
// never serialized to clients.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetPassword hashes the plain-text password and stores the hash on the user.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares a plain-text password against the stored hash.
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// Chat stores metadata about a conversation. Name is derived from the first
// user message at creation time. UpdatedAt is bumped on every message append.
type Chat struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn within a chat. Ordering by CreatedAt defines the
// canonical conversation order.
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FullChat includes the chat metadata and its messages in chronological order.
type FullChat struct {
	Chat
	Messages []Message `json:"messages"`
}

// Query is a single-shot question/answer record outside any chat thread.
type Query struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	QueryText    string    `json:"query_text"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}

// Stream event kinds emitted during a streaming chat turn.
const (
	EventToken    = "token"
	EventComplete = "complete"
	EventError    = "error"
)

// StreamEvent is one framed record of a streaming response, serialized as a
// single NDJSON line. Token and error events carry a correlation id derived
// from the user message id; the complete event carries the persisted
// assistant message id.
type StreamEvent struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
	ID      string `json:"id"`
}
