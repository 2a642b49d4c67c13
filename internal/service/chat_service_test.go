package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/llm"
	mock_llm "elelem/backend/internal/llm/mocks"
	"elelem/backend/internal/model"
	"elelem/backend/internal/repository"
	mock_repo "elelem/backend/internal/repository/mocks"
	"elelem/backend/internal/service"
)

type chatMocks struct {
	repo *mock_repo.MockRepository
	llm  *mock_llm.MockProvider
}

func setupChatService(t *testing.T) (*service.ChatService, chatMocks) {
	mocks := chatMocks{
		repo: mock_repo.NewMockRepository(t),
		llm:  mock_llm.NewMockProvider(t),
	}
	return service.NewChatService(mocks.repo, mocks.llm, "test instruction"), mocks
}

func TestChatService_CreateChat_TitleDerivation(t *testing.T) {
	ctx := context.Background()

	// Each case feeds a raw generator response through chat creation and
	// checks the persisted chat name.
	cases := []struct {
		name     string
		rawTitle string
		want     string
	}{
		{"uses only the first line", "Black Holes Explained\nHere is some trailing chatter.", "Black Holes Explained"},
		{"trims surrounding whitespace", "   Plan a Trip to Japan   \n", "Plan a Trip to Japan"},
		{"caps nine words at seven with an ellipsis", "one two three four five six seven eight nine", "one two three four five six seven..."},
		{"falls back for whitespace-only output", "   \n\n  ", "Untitled Chat"},
		{"falls back for empty output", "", "Untitled Chat"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chatService, mocks := setupChatService(t)

			mocks.llm.On("Generate", ctx, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
				// Title mode carries the title instruction and no context.
				return req.Instruction == llm.TitleInstruction && len(req.Context) == 0
			})).Return(&llm.GenerateResponse{Text: tc.rawTitle}, nil).Once()

			var persisted *model.Chat
			mocks.repo.On("CreateChatWithSeed", ctx, mock.AnythingOfType("*model.Chat"), mock.AnythingOfType("*model.Message")).
				Run(func(args mock.Arguments) {
					persisted = args.Get(1).(*model.Chat)
				}).
				Return(nil).Once()

			chat, err := chatService.CreateChat(ctx, "user1", "explain black holes")
			require.NoError(t, err)
			assert.Equal(t, tc.want, persisted.Name)
			assert.Equal(t, tc.want, chat.Name)
		})
	}
}

func TestChatService_CreateChat(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the seed user message with the chat", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.llm.On("Generate", ctx, mock.Anything).Return(&llm.GenerateResponse{Text: "A Title"}, nil).Once()

		var seed *model.Message
		mocks.repo.On("CreateChatWithSeed", ctx, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				seed = args.Get(2).(*model.Message)
			}).
			Return(nil).Once()

		chat, err := chatService.CreateChat(ctx, "user1", "explain black holes")
		require.NoError(t, err)

		assert.Equal(t, model.RoleUser, seed.Role)
		assert.Equal(t, "explain black holes", seed.Content)
		assert.Equal(t, chat.ID, seed.ChatID)
		require.Len(t, chat.Messages, 1)
		assert.Equal(t, *seed, chat.Messages[0])
	})

	t.Run("rejects an empty initial query", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		_, err := chatService.CreateChat(ctx, "user1", "   ")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		mocks.llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("surfaces persistence failure", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.llm.On("Generate", ctx, mock.Anything).Return(&llm.GenerateResponse{Text: "A Title"}, nil).Once()
		mocks.repo.On("CreateChatWithSeed", ctx, mock.Anything, mock.Anything).Return(errors.New("db error")).Once()

		_, err := chatService.CreateChat(ctx, "user1", "hello")
		assert.Error(t, err)
	})
}

func TestChatService_SendMessage(t *testing.T) {
	ctx := context.Background()
	chat := &model.Chat{ID: "chat1", UserID: "user1"}

	t.Run("success", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetChat", ctx, "chat1", "user1").Return(chat, nil).Once()
		mocks.repo.On("AddMessage", ctx, mock.MatchedBy(func(m *model.Message) bool {
			return m.Role == model.RoleUser && m.Content == "hi"
		})).Return(nil).Once()
		mocks.llm.On("Generate", ctx, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
			// The non-streaming variant sends no context window.
			return req.Query == "hi" && len(req.Context) == 0
		})).Return(&llm.GenerateResponse{Text: "hello there"}, nil).Once()
		mocks.repo.On("AddMessage", ctx, mock.MatchedBy(func(m *model.Message) bool {
			return m.Role == model.RoleAssistant && m.Content == "hello there"
		})).Return(nil).Once()

		assistant, err := chatService.SendMessage(ctx, "user1", "chat1", "user", "hi")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAssistant, assistant.Role)
		assert.Equal(t, "hello there", assistant.Content)
	})

	t.Run("assistant role is rejected and nothing is persisted", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetChat", ctx, "chat1", "user1").Return(chat, nil).Once()

		_, err := chatService.SendMessage(ctx, "user1", "chat1", "assistant", "hi")
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		mocks.repo.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything)
		mocks.llm.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("unknown or foreign chat yields not found", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetChat", ctx, "chat1", "user2").Return(nil, repository.ErrNotFound).Once()

		_, err := chatService.SendMessage(ctx, "user2", "chat1", "user", "hi")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

// historyOfLength builds an alternating message history with deterministic
// contents, oldest first.
func historyOfLength(n int) []model.Message {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	history := make([]model.Message, 0, n)
	for i := 0; i < n; i++ {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		history = append(history, model.Message{
			ID:        fmt.Sprintf("msg%d", i),
			ChatID:    "chat1",
			Role:      role,
			Content:   fmt.Sprintf("content %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return history
}

func TestChatService_StreamReply(t *testing.T) {
	ctx := context.Background()
	userMsg := &model.Message{ID: "umsg1", ChatID: "chat1", Role: model.RoleUser, Content: "and then?"}

	t.Run("happy path frames tokens then a single complete event", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetMessages", ctx, "chat1").Return(historyOfLength(8), nil).Once()

		var captured *llm.GenerateRequest
		mocks.llm.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*llm.GenerateRequest)
				out := args.Get(2).(chan<- llm.StreamChunk)
				out <- llm.StreamChunk{Content: "Hel"}
				out <- llm.StreamChunk{Content: "lo "}
				out <- llm.StreamChunk{Content: "world"}
				close(out)
			}).
			Return(nil).Once()

		var assistant *model.Message
		mocks.repo.On("AddMessage", ctx, mock.AnythingOfType("*model.Message")).
			Run(func(args mock.Arguments) {
				assistant = args.Get(1).(*model.Message)
			}).
			Return(nil).Once()

		events := make(chan model.StreamEvent)
		go chatService.StreamReply(ctx, "chat1", userMsg, events)

		var received []model.StreamEvent
		for ev := range events {
			received = append(received, ev)
		}

		// Zero or more token events followed by exactly one complete event.
		require.Len(t, received, 4)
		var concat string
		for _, ev := range received[:3] {
			assert.Equal(t, model.EventToken, ev.Type)
			assert.Equal(t, "streaming-umsg1", ev.ID)
			concat += ev.Content
		}
		final := received[3]
		assert.Equal(t, model.EventComplete, final.Type)
		assert.Equal(t, assistant.ID, final.ID)

		// The persisted assistant content equals the concatenated tokens.
		assert.Equal(t, "Hello world", concat)
		assert.Equal(t, "Hello world", assistant.Content)
		assert.Equal(t, model.RoleAssistant, assistant.Role)

		// The context window is the most recent five turns, chronological.
		require.Len(t, captured.Context, 5)
		for i, turn := range captured.Context {
			assert.Equal(t, fmt.Sprintf("content %d", i+3), turn.Content)
		}
		assert.Equal(t, "and then?", captured.Query)
	})

	t.Run("short history is passed whole", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetMessages", ctx, "chat1").Return(historyOfLength(2), nil).Once()

		var captured *llm.GenerateRequest
		mocks.llm.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				captured = args.Get(1).(*llm.GenerateRequest)
				out := args.Get(2).(chan<- llm.StreamChunk)
				out <- llm.StreamChunk{Content: "ok"}
				close(out)
			}).
			Return(nil).Once()
		mocks.repo.On("AddMessage", ctx, mock.Anything).Return(nil).Once()

		events := make(chan model.StreamEvent)
		go chatService.StreamReply(ctx, "chat1", userMsg, events)
		for range events {
		}

		assert.Len(t, captured.Context, 2)
	})

	t.Run("mid-stream fault ends with one error event and persists nothing", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetMessages", ctx, "chat1").Return(historyOfLength(1), nil).Once()
		mocks.llm.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(chan<- llm.StreamChunk)
				out <- llm.StreamChunk{Content: "partial "}
				out <- llm.StreamChunk{Err: "provider exploded"}
				close(out)
			}).
			Return(nil).Once()

		events := make(chan model.StreamEvent)
		go chatService.StreamReply(ctx, "chat1", userMsg, events)

		var received []model.StreamEvent
		for ev := range events {
			received = append(received, ev)
		}

		require.Len(t, received, 2)
		assert.Equal(t, model.EventToken, received[0].Type)
		last := received[1]
		assert.Equal(t, model.EventError, last.Type)
		assert.Equal(t, "error-umsg1", last.ID)
		assert.NotEmpty(t, last.Content)

		// The assistant message must not be persisted on the fault path.
		mocks.repo.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything)
	})

	t.Run("client cancellation suppresses persistence and events", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		canceledCtx, cancel := context.WithCancel(context.Background())
		cancel()

		mocks.repo.On("GetMessages", canceledCtx, "chat1").Return(historyOfLength(1), nil).Once()
		mocks.llm.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				close(args.Get(2).(chan<- llm.StreamChunk))
			}).
			Return(nil).Once()

		events := make(chan model.StreamEvent)
		go chatService.StreamReply(canceledCtx, "chat1", userMsg, events)

		var received []model.StreamEvent
		for ev := range events {
			received = append(received, ev)
		}

		assert.Empty(t, received)
		mocks.repo.AssertNotCalled(t, "AddMessage", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure after a clean stream yields an error event", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetMessages", ctx, "chat1").Return(historyOfLength(1), nil).Once()
		mocks.llm.On("GenerateStream", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				out := args.Get(2).(chan<- llm.StreamChunk)
				out <- llm.StreamChunk{Content: "done"}
				close(out)
			}).
			Return(nil).Once()
		mocks.repo.On("AddMessage", ctx, mock.Anything).Return(errors.New("db error")).Once()

		events := make(chan model.StreamEvent)
		go chatService.StreamReply(ctx, "chat1", userMsg, events)

		var received []model.StreamEvent
		for ev := range events {
			received = append(received, ev)
		}

		require.NotEmpty(t, received)
		assert.Equal(t, model.EventError, received[len(received)-1].Type)
	})
}

func TestChatService_ListChats(t *testing.T) {
	ctx := context.Background()
	chatService, mocks := setupChatService(t)

	chats := []*model.Chat{{ID: "chat1", UserID: "user1"}, {ID: "chat2", UserID: "user1"}}
	mocks.repo.On("ListChats", ctx, "user1").Return(chats, nil).Once()
	mocks.repo.On("GetMessages", ctx, "chat1").Return(historyOfLength(2), nil).Once()
	mocks.repo.On("GetMessages", ctx, "chat2").Return([]model.Message{}, nil).Once()

	full, err := chatService.ListChats(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, full, 2)
	assert.Len(t, full[0].Messages, 2)
	assert.Empty(t, full[1].Messages)
}

func TestChatService_GetChat(t *testing.T) {
	ctx := context.Background()

	t.Run("success preserves message order", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetChat", ctx, "chat1", "user1").Return(&model.Chat{ID: "chat1", UserID: "user1"}, nil).Once()
		mocks.repo.On("GetMessages", ctx, "chat1").Return(historyOfLength(3), nil).Once()

		full, err := chatService.GetChat(ctx, "user1", "chat1")
		require.NoError(t, err)
		require.Len(t, full.Messages, 3)
		assert.Equal(t, "msg0", full.Messages[0].ID)
		assert.Equal(t, "msg2", full.Messages[2].ID)
	})

	t.Run("foreign chat is indistinguishable from absent", func(t *testing.T) {
		chatService, mocks := setupChatService(t)

		mocks.repo.On("GetChat", ctx, "chat1", "intruder").Return(nil, repository.ErrNotFound).Once()

		_, err := chatService.GetChat(ctx, "intruder", "chat1")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
	})
}

func TestChatService_DeleteChat(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		mocks.repo.On("DeleteChat", ctx, "chat1", "user1").Return(nil).Once()
		assert.NoError(t, chatService.DeleteChat(ctx, "user1", "chat1"))
	})

	t.Run("foreign chat yields not found", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		mocks.repo.On("DeleteChat", ctx, "chat1", "intruder").Return(repository.ErrNotFound).Once()
		assert.ErrorIs(t, chatService.DeleteChat(ctx, "intruder", "chat1"), app_errors.ErrNotFound)
	})
}
