package interfaces

import (
	"context"

	"elelem/backend/internal/model"
)

// This file defines the interfaces for our core services. The API layer
// depends on these instead of concrete implementations, which decouples the
// layers and allows handlers to be tested against mocks.

// ChatService defines the contract for conversation business logic.
type ChatService interface {
	CreateChat(ctx context.Context, userID, initialQuery string) (*model.FullChat, error)
	SendMessage(ctx context.Context, userID, chatID, role, content string) (*model.Message, error)
	BeginTurn(ctx context.Context, userID, chatID, role, content string) (*model.Message, error)
	StreamReply(ctx context.Context, chatID string, userMsg *model.Message, events chan<- model.StreamEvent)
	ListChats(ctx context.Context, userID string) ([]*model.FullChat, error)
	GetChat(ctx context.Context, userID, chatID string) (*model.FullChat, error)
	DeleteChat(ctx context.Context, userID, chatID string) error
}

// QueryService defines the contract for the single-shot query flow.
type QueryService interface {
	CreateQuery(ctx context.Context, userID, queryText string) (*model.Query, error)
	History(ctx context.Context, userID string) ([]*model.Query, error)
	GetQuery(ctx context.Context, userID, queryID string) (*model.Query, error)
}

// UserService defines the contract for accounts and authentication.
type UserService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*model.User, error)
	GetUser(ctx context.Context, requesterID, userID string) (*model.User, error)
}
