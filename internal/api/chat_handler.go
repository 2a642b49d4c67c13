package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/interfaces"
	"elelem/backend/internal/model"
)

// ChatHandler serves the conversation endpoints, including the streaming
// turn pipeline.
type ChatHandler struct {
	service interfaces.ChatService
}

func NewChatHandler(svc interfaces.ChatService) *ChatHandler {
	return &ChatHandler{service: svc}
}

// CreateChatRequest is the DTO for starting a conversation.
type CreateChatRequest struct {
	InitialQuery string `json:"initial_query" validate:"required,min=1" example:"Explain black holes"`
}

// MessageRequest is the DTO for appending a turn to a chat.
type MessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,min=1"`
}

// HandleCreateChat godoc
// @Summary      Create a chat from an initial query
// @Description  Derives a title from the query and persists the chat with its first user message.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chat  body  CreateChatRequest  true  "Initial query"
// @Success      201   {object}  model.FullChat
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /v1/chats [post]
func (h *ChatHandler) HandleCreateChat(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	var req CreateChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	chat, err := h.service.CreateChat(r.Context(), user.ID, req.InitialQuery)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, chat)
}

// HandleListChats godoc
// @Summary      List the user's chats
// @Description  Most recently active first, messages embedded.
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  model.FullChat
// @Failure      401  {object}  ErrorResponse
// @Router       /v1/chats [get]
func (h *ChatHandler) HandleListChats(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	chats, err := h.service.ListChats(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chats)
}

// HandleGetChat godoc
// @Summary      Get one chat with its messages
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chatID  path  string  true  "Chat ID"
// @Success      200  {object}  model.FullChat
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [get]
func (h *ChatHandler) HandleGetChat(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	chat, err := h.service.GetChat(r.Context(), user.ID, chi.URLParam(r, "chatID"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, chat)
}

// HandleDeleteChat godoc
// @Summary      Delete a chat and all its messages
// @Tags         Chats
// @Security     BearerAuth
// @Param        chatID  path  string  true  "Chat ID"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID} [delete]
func (h *ChatHandler) HandleDeleteChat(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}

	if err := h.service.DeleteChat(r.Context(), user.ID, chi.URLParam(r, "chatID")); err != nil {
		respondWithError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSendMessage godoc
// @Summary      Append a user message and get the assistant reply
// @Description  With ?stream=true the reply is a chunked NDJSON stream of token/complete/error events; otherwise the assistant message is returned as JSON once generation finishes.
// @Tags         Chats
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        chatID   path   string          true   "Chat ID"
// @Param        stream   query  bool            false  "Stream the reply as NDJSON"
// @Param        message  body   MessageRequest  true   "Message"
// @Success      201  {object}  model.Message
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/chats/{chatID}/messages [post]
func (h *ChatHandler) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondWithError(w, app_errors.ErrUnauthenticated)
		return
	}
	chatID := chi.URLParam(r, "chatID")

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation))
		return
	}
	if err := validateRequest(req); err != nil {
		respondWithError(w, err)
		return
	}

	if r.URL.Query().Get("stream") == "true" {
		h.streamMessage(w, r, user.ID, chatID, &req)
		return
	}

	assistant, err := h.service.SendMessage(r.Context(), user.ID, chatID, req.Role, req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, assistant)
}

// streamMessage runs the streaming variant: preconditions are settled before
// the stream opens (so ownership and role failures still get proper status
// codes), then events are relayed one JSON object per line as they arrive.
func (h *ChatHandler) streamMessage(w http.ResponseWriter, r *http.Request, userID, chatID string, req *MessageRequest) {
	userMsg, err := h.service.BeginTurn(r.Context(), userID, chatID, req.Role, req.Content)
	if err != nil {
		respondWithError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	events := make(chan model.StreamEvent)
	go h.service.StreamReply(r.Context(), chatID, userMsg, events)

	enc := json.NewEncoder(w)
	flusher, canFlush := w.(http.Flusher)
	for event := range events {
		if r.Context().Err() != nil {
			// Client gone; keep draining so the service goroutine can finish.
			continue
		}
		if err := enc.Encode(event); err != nil {
			slog.Warn("Failed to write stream event, client might have disconnected", "error", err)
			continue
		}
		if canFlush {
			flusher.Flush()
		}
	}
}
