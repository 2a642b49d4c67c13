package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/llm"
	"elelem/backend/internal/model"
	"elelem/backend/internal/repository"
)

// QueryService handles the single-shot question/answer flow that lives
// outside any chat thread.
type QueryService struct {
	repo        repository.Repository
	llm         llm.Provider
	instruction string
}

func NewQueryService(repo repository.Repository, provider llm.Provider, instruction string) *QueryService {
	if instruction == "" {
		instruction = llm.DefaultSystemInstruction
	}
	return &QueryService{repo: repo, llm: provider, instruction: instruction}
}

// CreateQuery generates a response with no conversation context and persists
// the {query, response} pair.
func (s *QueryService) CreateQuery(ctx context.Context, userID, queryText string) (*model.Query, error) {
	resp, err := s.llm.Generate(ctx, &llm.GenerateRequest{
		Instruction: s.instruction,
		Query:       queryText,
	})
	if err != nil {
		return nil, fmt.Errorf("could not generate response: %w", err)
	}

	query := &model.Query{
		ID:           uuid.NewString(),
		UserID:       userID,
		QueryText:    queryText,
		ResponseText: resp.Text,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateQuery(ctx, query); err != nil {
		return nil, fmt.Errorf("could not save query: %w", err)
	}
	return query, nil
}

// History returns the user's queries, newest first.
func (s *QueryService) History(ctx context.Context, userID string) ([]*model.Query, error) {
	queries, err := s.repo.ListQueries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not list queries: %w", err)
	}
	return queries, nil
}

// GetQuery returns one query record. Unlike the chat endpoints, this flow
// distinguishes "absent" (ErrNotFound) from "someone else's" (ErrPermission).
func (s *QueryService) GetQuery(ctx context.Context, userID, queryID string) (*model.Query, error) {
	query, err := s.repo.GetQuery(ctx, queryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: query not found", app_errors.ErrNotFound)
		}
		return nil, fmt.Errorf("could not load query: %w", err)
	}
	if query.UserID != userID {
		return nil, fmt.Errorf("%w: not enough permissions", app_errors.ErrPermission)
	}
	return query, nil
}
