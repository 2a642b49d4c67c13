package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
)

// openAIProvider talks to any OpenAI-compatible chat completion endpoint.
// Which provider that is (OpenAI itself, DeepSeek, a Gemini compatibility
// proxy, a local server) is decided at startup via base URL and model name.
type openAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider builds the provider. With an empty API key there is no
// usable client; instead of failing startup the provider carries a nil client
// and every call degrades to a fixed "not configured" response.
func NewOpenAIProvider(apiKey, baseURL, model string) Provider {
	if apiKey == "" {
		slog.Error("LLM API key is not set; generator will run in degraded mode")
		return &openAIProvider{client: nil, model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIProvider{client: openai.NewClientWithConfig(cfg), model: model}
}

// buildMessages maps the request onto role-tagged chat messages: system
// instruction first, then the prior turns, then the query as the final user
// message.
func (p *openAIProvider) buildMessages(req *GenerateRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Context)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.Instruction,
	})
	for _, turn := range req.Context {
		role := openai.ChatMessageRoleUser
		if turn.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Query,
	})
	return messages
}

// Generate returns the full generated text. Provider failures come back as
// fallback text, never as an error: callers must be able to persist and
// return something even when the generator is down.
func (p *openAIProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if p.client == nil {
		return &GenerateResponse{Text: UnavailableMessage}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: p.buildMessages(req),
	})
	if err != nil {
		slog.Error("Chat completion failed", "error", err)
		return &GenerateResponse{Text: fmt.Sprintf("Error generating response: %v", err)}, nil
	}
	if len(resp.Choices) == 0 {
		slog.Error("Chat completion returned no choices")
		return &GenerateResponse{Text: "Error generating response: empty completion"}, nil
	}
	return &GenerateResponse{Text: resp.Choices[0].Message.Content}, nil
}

// GenerateStream emits incremental fragments on ch and always closes it.
// A mid-stream provider failure ends the sequence with a single chunk whose
// Err is set; context cancellation ends it silently.
func (p *openAIProvider) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error {
	defer close(ch)

	if p.client == nil {
		ch <- StreamChunk{Err: UnavailableMessage}
		return nil
	}

	stream, err := p.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    p.model,
		Messages: p.buildMessages(req),
	})
	if err != nil {
		slog.Error("Failed to open completion stream", "error", err)
		ch <- StreamChunk{Err: fmt.Sprintf("Error generating response: %v", err)}
		return nil
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("Stream receive failed", "error", err)
			ch <- StreamChunk{Err: fmt.Sprintf("Error generating response: %v", err)}
			return nil
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		select {
		case ch <- StreamChunk{Content: delta}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
