package llm

import "context"

// Turn is one prior {role, content} exchange supplied as generation context.
// The caller is responsible for limiting the window before calling.
type Turn struct {
	Role    string
	Content string
}

// GenerateRequest carries everything a provider needs for one generation:
// a system instruction, an optional window of prior turns, and the user query.
type GenerateRequest struct {
	Instruction string
	Context     []Turn
	Query       string
}

// GenerateResponse is the full text of a single-shot generation.
type GenerateResponse struct {
	Text string
}

// StreamChunk is one incremental fragment of a streaming generation. A chunk
// with a non-empty Err ends the stream; providers degrade failures into such
// a chunk instead of tearing down the stream with an unhandled fault.
type StreamChunk struct {
	Content string
	Err     string
}

// Provider is the contract for the external text generator. Implementations
// must not surface provider outages as hard errors: Generate returns
// best-effort fallback text, and GenerateStream ends the chunk sequence with
// an error-describing chunk. Both channels of failure leave the process
// healthy. GenerateStream closes ch before returning.
type Provider interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error
}
