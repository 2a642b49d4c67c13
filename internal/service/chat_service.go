package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/llm"
	"elelem/backend/internal/model"
	"elelem/backend/internal/repository"
)

// contextWindowSize is the number of most recent turns (including the turn
// being answered) handed to the generator for continuity.
const contextWindowSize = 5

// untitledChat is the fallback name when title generation produces nothing
// usable.
const untitledChat = "Untitled Chat"

// maxTitleWords caps derived chat names; longer titles are truncated with an
// ellipsis marker.
const maxTitleWords = 7

// streamErrorMessage is the fixed user-facing content of a framed error
// event. Details stay in the server log.
const streamErrorMessage = "An error occurred while generating the response. Please try again."

// ChatService orchestrates conversation turn-taking: it creates chats,
// appends messages, builds context windows, drives the generator and persists
// the results.
type ChatService struct {
	repo        repository.Repository
	llm         llm.Provider
	instruction string
}

// NewChatService wires the service. instruction is the conversational system
// prompt; an empty value falls back to the built-in default.
func NewChatService(repo repository.Repository, provider llm.Provider, instruction string) *ChatService {
	if instruction == "" {
		instruction = llm.DefaultSystemInstruction
	}
	return &ChatService{repo: repo, llm: provider, instruction: instruction}
}

// CreateChat derives a title from the initial query, then persists the chat
// together with its seed user message in a single transaction.
func (s *ChatService) CreateChat(ctx context.Context, userID, initialQuery string) (*model.FullChat, error) {
	if strings.TrimSpace(initialQuery) == "" {
		return nil, fmt.Errorf("%w: initial query cannot be empty", app_errors.ErrValidation)
	}

	titleResp, err := s.llm.Generate(ctx, &llm.GenerateRequest{
		Instruction: llm.TitleInstruction,
		Query:       initialQuery,
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate chat title: %w", err)
	}

	now := time.Now().UTC()
	chat := &model.Chat{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      deriveTitle(titleResp.Text),
		CreatedAt: now,
		UpdatedAt: now,
	}
	seed := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chat.ID,
		Role:      model.RoleUser,
		Content:   initialQuery,
		CreatedAt: now,
	}
	if err := s.repo.CreateChatWithSeed(ctx, chat, seed); err != nil {
		return nil, fmt.Errorf("could not create chat: %w", err)
	}

	slog.Info("Created chat", "chat_id", chat.ID, "user_id", userID)
	return &model.FullChat{Chat: *chat, Messages: []model.Message{*seed}}, nil
}

// deriveTitle post-processes raw generator output into a chat name: first
// line only, trimmed, capped at maxTitleWords words, with a fixed fallback.
func deriveTitle(raw string) string {
	title := strings.TrimSpace(strings.SplitN(strings.TrimSpace(raw), "\n", 2)[0])
	if title == "" {
		return untitledChat
	}
	words := strings.Fields(title)
	if len(words) > maxTitleWords {
		title = strings.Join(words[:maxTitleWords], " ") + "..."
	}
	return title
}

// BeginTurn runs the shared preconditions of both append variants: ownership
// check, role gate, and durable persistence of the user message. The chat
// lookup filters by owner as well as id, so "not yours" and "does not exist"
// are indistinguishable to the caller.
func (s *ChatService) BeginTurn(ctx context.Context, userID, chatID, role, content string) (*model.Message, error) {
	if _, err := s.repo.GetChat(ctx, chatID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat not found", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not load chat: %w", err)
	}
	if role != model.RoleUser {
		return nil, fmt.Errorf("%w: only user messages are accepted", app_errors.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", app_errors.ErrValidation)
	}

	userMsg := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      model.RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("could not save user message: %w", err)
	}
	return userMsg, nil
}

// SendMessage is the non-streaming append variant: persist the user message,
// generate the full reply without a context window, persist and return the
// assistant message.
func (s *ChatService) SendMessage(ctx context.Context, userID, chatID, role, content string) (*model.Message, error) {
	userMsg, err := s.BeginTurn(ctx, userID, chatID, role, content)
	if err != nil {
		return nil, err
	}

	resp, err := s.llm.Generate(ctx, &llm.GenerateRequest{
		Instruction: s.instruction,
		Query:       userMsg.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate response: %w", err)
	}

	assistant := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      model.RoleAssistant,
		Content:   resp.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, assistant); err != nil {
		return nil, fmt.Errorf("could not save assistant message: %w", err)
	}
	return assistant, nil
}

// StreamReply drives the streaming half of a turn whose preconditions
// BeginTurn already settled. It emits framed events on events and always
// closes the channel. The assistant message is persisted exactly once, after
// the fragment stream ends cleanly; any fault instead yields a single error
// event and persists nothing. If ctx is canceled (client gone), consumption
// stops silently and nothing is persisted.
func (s *ChatService) StreamReply(ctx context.Context, chatID string, userMsg *model.Message, events chan<- model.StreamEvent) {
	defer close(events)

	errorEvent := model.StreamEvent{
		Type:    model.EventError,
		Content: streamErrorMessage,
		ID:      "error-" + userMsg.ID,
	}

	history, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		slog.Error("Could not load chat history for streaming", "chat_id", chatID, "error", err)
		events <- errorEvent
		return
	}

	chunks := make(chan llm.StreamChunk)
	go func() {
		_ = s.llm.GenerateStream(ctx, &llm.GenerateRequest{
			Instruction: s.instruction,
			Context:     contextWindow(history),
			Query:       userMsg.Content,
		}, chunks)
	}()

	var buf strings.Builder
	for chunk := range chunks {
		if chunk.Err != "" {
			slog.Error("Generator stream failed", "chat_id", chatID, "error", chunk.Err)
			if ctx.Err() == nil {
				events <- errorEvent
			}
			return
		}
		buf.WriteString(chunk.Content)
		select {
		case events <- model.StreamEvent{Type: model.EventToken, Content: chunk.Content, ID: "streaming-" + userMsg.ID}:
		case <-ctx.Done():
			return
		}
	}
	if ctx.Err() != nil {
		// Client disconnected mid-stream; treat like the error path but
		// without an event, since the peer is gone.
		return
	}

	assistant := &model.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		Role:      model.RoleAssistant,
		Content:   buf.String(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.AddMessage(ctx, assistant); err != nil {
		slog.Error("Could not save assistant message", "chat_id", chatID, "error", err)
		events <- errorEvent
		return
	}

	events <- model.StreamEvent{Type: model.EventComplete, ID: assistant.ID}
}

// contextWindow keeps the most recent turns in chronological order.
func contextWindow(history []model.Message) []llm.Turn {
	if len(history) > contextWindowSize {
		history = history[len(history)-contextWindowSize:]
	}
	window := make([]llm.Turn, 0, len(history))
	for _, msg := range history {
		window = append(window, llm.Turn{Role: msg.Role, Content: msg.Content})
	}
	return window
}

// ListChats returns the user's chats, most recently active first, each with
// its messages in chronological order.
func (s *ChatService) ListChats(ctx context.Context, userID string) ([]*model.FullChat, error) {
	chats, err := s.repo.ListChats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list chats: %w", err)
	}

	full := make([]*model.FullChat, 0, len(chats))
	for _, chat := range chats {
		messages, err := s.repo.GetMessages(ctx, chat.ID)
		if err != nil {
			return nil, fmt.Errorf("could not load messages for chat %s: %w", chat.ID, err)
		}
		full = append(full, &model.FullChat{Chat: *chat, Messages: messages})
	}
	return full, nil
}

// GetChat returns one owned chat with its messages, or ErrNotFound.
func (s *ChatService) GetChat(ctx context.Context, userID, chatID string) (*model.FullChat, error) {
	chat, err := s.repo.GetChat(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat not found", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not load chat: %w", err)
	}
	messages, err := s.repo.GetMessages(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("could not load messages: %w", err)
	}
	return &model.FullChat{Chat: *chat, Messages: messages}, nil
}

// DeleteChat removes an owned chat and, via cascade, all its messages.
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	if err := s.repo.DeleteChat(ctx, chatID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: chat not found", app_errors.ErrNotFound)
		}
		return fmt.Errorf("could not delete chat: %w", err)
	}
	slog.Info("Deleted chat", "chat_id", chatID, "user_id", userID)
	return nil
}
