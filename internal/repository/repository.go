package repository

import (
	"context"

	"elelem/backend/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations and to
// mock persistence in service tests.
type Repository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID string) (*model.User, error)

	// CreateChatWithSeed inserts a chat and its first user message in one
	// transaction, so a failure leaves no chat without its seed message.
	CreateChatWithSeed(ctx context.Context, chat *model.Chat, seed *model.Message) error
	// GetChat filters by chat id AND owner id; a miss on either is ErrNotFound.
	GetChat(ctx context.Context, chatID, userID string) (*model.Chat, error)
	ListChats(ctx context.Context, userID string) ([]*model.Chat, error)
	DeleteChat(ctx context.Context, chatID, userID string) error

	// AddMessage inserts the message and bumps the parent chat's updated_at
	// in the same transaction.
	AddMessage(ctx context.Context, message *model.Message) error
	GetMessages(ctx context.Context, chatID string) ([]model.Message, error)

	CreateQuery(ctx context.Context, query *model.Query) error
	ListQueries(ctx context.Context, userID string) ([]*model.Query, error)
	GetQuery(ctx context.Context, queryID string) (*model.Query, error)
}
