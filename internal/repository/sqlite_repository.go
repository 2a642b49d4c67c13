package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"elelem/backend/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateUser(ctx context.Context, user *model.User) error {
	query := "INSERT INTO users (id, email, password, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Password, user.IsActive, user.CreatedAt, user.UpdatedAt)
	return err
}

func (r *sqliteRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := "SELECT id, email, password, is_active, created_at, updated_at FROM users WHERE email = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *sqliteRepository) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := "SELECT id, email, password, is_active, created_at, updated_at FROM users WHERE id = ?"
	return r.scanUser(r.db.QueryRowContext(ctx, query, userID))
}

func (r *sqliteRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(&user.ID, &user.Email, &user.Password, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateChatWithSeed inserts the chat and its first user message atomically.
func (r *sqliteRepository) CreateChatWithSeed(ctx context.Context, chat *model.Chat, seed *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertChat := "INSERT INTO chats (id, user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertChat, chat.ID, chat.UserID, chat.Name, chat.CreatedAt, chat.UpdatedAt); err != nil {
		return fmt.Errorf("could not insert chat: %w", err)
	}

	insertMsg := "INSERT INTO messages (id, chat_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertMsg, seed.ID, seed.ChatID, seed.Role, seed.Content, seed.CreatedAt); err != nil {
		return fmt.Errorf("could not insert seed message: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetChat(ctx context.Context, chatID, userID string) (*model.Chat, error) {
	query := "SELECT id, user_id, name, created_at, updated_at FROM chats WHERE id = ? AND user_id = ?"
	row := r.db.QueryRowContext(ctx, query, chatID, userID)
	var chat model.Chat
	err := row.Scan(&chat.ID, &chat.UserID, &chat.Name, &chat.CreatedAt, &chat.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

func (r *sqliteRepository) ListChats(ctx context.Context, userID string) ([]*model.Chat, error) {
	query := "SELECT id, user_id, name, created_at, updated_at FROM chats WHERE user_id = ? ORDER BY updated_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*model.Chat
	for rows.Next() {
		var chat model.Chat
		if err := rows.Scan(&chat.ID, &chat.UserID, &chat.Name, &chat.CreatedAt, &chat.UpdatedAt); err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}
	return chats, rows.Err()
}

// DeleteChat removes the chat if it belongs to the user; messages go with it
// via the foreign key cascade.
func (r *sqliteRepository) DeleteChat(ctx context.Context, chatID, userID string) error {
	query := "DELETE FROM chats WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, query, chatID, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMessage inserts the message and bumps the chat's updated_at in one
// transaction, keeping the "most recently active first" ordering correct.
func (r *sqliteRepository) AddMessage(ctx context.Context, message *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertMsg := "INSERT INTO messages (id, chat_id, role, content, created_at) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, insertMsg, message.ID, message.ChatID, message.Role, message.Content, message.CreatedAt); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}

	bumpChat := "UPDATE chats SET updated_at = ? WHERE id = ?"
	if _, err := tx.ExecContext(ctx, bumpChat, time.Now().UTC(), message.ChatID); err != nil {
		return fmt.Errorf("could not update chat timestamp: %w", err)
	}

	return tx.Commit()
}

func (r *sqliteRepository) GetMessages(ctx context.Context, chatID string) ([]model.Message, error) {
	query := "SELECT id, chat_id, role, content, created_at FROM messages WHERE chat_id = ? ORDER BY created_at ASC"
	rows, err := r.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var msg model.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.Role, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (r *sqliteRepository) CreateQuery(ctx context.Context, query *model.Query) error {
	stmt := "INSERT INTO queries (id, user_id, query_text, response_text, created_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, stmt, query.ID, query.UserID, query.QueryText, query.ResponseText, query.CreatedAt)
	return err
}

func (r *sqliteRepository) ListQueries(ctx context.Context, userID string) ([]*model.Query, error) {
	stmt := "SELECT id, user_id, query_text, response_text, created_at FROM queries WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, stmt, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []*model.Query
	for rows.Next() {
		var q model.Query
		if err := rows.Scan(&q.ID, &q.UserID, &q.QueryText, &q.ResponseText, &q.CreatedAt); err != nil {
			return nil, err
		}
		queries = append(queries, &q)
	}
	return queries, rows.Err()
}

// GetQuery loads by id alone; the service decides between 404 and 403 based
// on the owner, which is why ownership is not filtered here.
func (r *sqliteRepository) GetQuery(ctx context.Context, queryID string) (*model.Query, error) {
	stmt := "SELECT id, user_id, query_text, response_text, created_at FROM queries WHERE id = ?"
	row := r.db.QueryRowContext(ctx, stmt, queryID)
	var q model.Query
	err := row.Scan(&q.ID, &q.UserID, &q.QueryText, &q.ResponseText, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}
