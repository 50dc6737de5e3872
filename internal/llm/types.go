// Package llm defines the completion-service boundary and the model
// affinity/fallback resolver. The remote roster is volatile — models are
// added and retired between sessions — so nothing here hard-codes a single
// identifier; callers go through the Resolver's ranked fallback chain.
package llm

import "context"

// Capability tags what a model candidate can accept.
type Capability struct {
	Text   bool
	Vision bool
}

// ModelCandidate is one entry in the ranked fallback chain.
type ModelCandidate struct {
	Identifier string
	Capability Capability
	Rank       int
}

// Blob is an optional multimodal payload attached to a request.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Request is a completion request. A non-nil Blob makes it a vision
// request, which restricts the candidate chain to vision-capable models.
type Request struct {
	Prompt    string
	Blob      *Blob
	MaxTokens int
}

// Response is a successful completion.
type Response struct {
	Text  string
	Model string
}

// ModelInfo describes one usable model reported by the remote service.
type ModelInfo struct {
	Identifier string
	Vision     bool
}

// Service is the abstract completion service: list the current roster,
// run one generation against a named model. Implementations wrap a
// concrete provider SDK and make no retry decisions of their own.
type Service interface {
	Name() string
	ListModels(ctx context.Context) ([]ModelInfo, error)
	// FallbackModels is the fixed minimal roster used when ListModels
	// fails; it must never be empty.
	FallbackModels() []ModelInfo
	Generate(ctx context.Context, model string, req Request) (*Response, error)
}
