package llm

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrChainExhausted is the terminal failure returned when every ranked
// candidate has been tried and none produced a response.
var ErrChainExhausted = eris.New("llm: model fallback chain exhausted")

// Affinity tiers. Candidates whose identifier signals a fast tier outrank
// standard-tier candidates, which outrank everything else.
const (
	rankFast     = 0
	rankStandard = 1
	rankOther    = 2
)

// ResolverOptions tunes the fallback chain.
type ResolverOptions struct {
	// PerCandidateTimeout bounds each individual generation attempt, so one
	// unresponsive candidate cannot starve the rest of the chain.
	// Default 60s.
	PerCandidateTimeout time.Duration
	// RequestsPerMinute rate-limits calls to the remote service.
	// Zero disables limiting.
	RequestsPerMinute int
}

// Resolver ranks the remote service's live model roster and drives the
// retry-by-substitution fallback chain. The roster is resolved once per
// resolver; create one resolver per completion session, since the remote
// roster can change between sessions.
type Resolver struct {
	svc     Service
	timeout time.Duration
	limiter *rate.Limiter

	mu         sync.Mutex
	resolved   bool
	candidates []ModelCandidate
}

// NewResolver creates a resolver over svc.
func NewResolver(svc Service, opts ResolverOptions) *Resolver {
	timeout := opts.PerCandidateTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), 1)
	}

	return &Resolver{
		svc:     svc,
		timeout: timeout,
		limiter: limiter,
	}
}

// Candidates returns the ranked candidate chain, querying the remote
// roster on first use. A failed roster query falls back to the service's
// fixed minimal list; the resolver is never left with zero candidates.
func (r *Resolver) Candidates(ctx context.Context) []ModelCandidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.resolved {
		return r.candidates
	}

	models, err := r.svc.ListModels(ctx)
	if err != nil || len(models) == 0 {
		if err != nil {
			zap.L().Warn("model roster query failed, using fixed fallback list",
				zap.String("service", r.svc.Name()),
				zap.Error(err),
			)
		}
		models = r.svc.FallbackModels()
	}

	candidates := make([]ModelCandidate, len(models))
	for i, m := range models {
		candidates[i] = ModelCandidate{
			Identifier: m.Identifier,
			Capability: Capability{Text: true, Vision: m.Vision},
			Rank:       rankOf(m.Identifier),
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Rank < candidates[j].Rank
	})

	r.candidates = candidates
	r.resolved = true
	return r.candidates
}

// rankOf applies the fixed affinity policy to a model identifier.
func rankOf(id string) int {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "flash") || strings.Contains(lower, "haiku"):
		return rankFast
	case strings.Contains(lower, "pro") || strings.Contains(lower, "sonnet"):
		return rankStandard
	default:
		return rankOther
	}
}

// Complete iterates the ranked candidates in order until one yields a
// response. Intermediate failures (capability mismatch, quota, transient
// errors) are logged and absorbed; the caller only sees a terminal error
// when the entire chain is exhausted. The per-candidate timeout applies to
// each attempt individually, not cumulatively.
func (r *Resolver) Complete(ctx context.Context, req Request) (*Response, error) {
	candidates := r.Candidates(ctx)

	if req.Blob != nil {
		vision := candidates[:0:0]
		for _, c := range candidates {
			if c.Capability.Vision {
				vision = append(vision, c)
			}
		}
		candidates = vision
	}

	if len(candidates) == 0 {
		return nil, eris.Wrap(ErrChainExhausted, "llm: no candidates match the request capabilities")
	}

	for _, cand := range candidates {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return nil, eris.Wrap(err, "llm: rate limit wait")
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
		resp, err := r.svc.Generate(attemptCtx, cand.Identifier, req)
		cancel()

		if err == nil {
			return resp, nil
		}

		// A cancelled parent context is terminal; a slow or failing
		// candidate is not.
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "llm: request cancelled")
		}

		zap.L().Debug("model candidate failed, trying next",
			zap.String("model", cand.Identifier),
			zap.Error(err),
		)
	}

	return nil, eris.Wrapf(ErrChainExhausted, "llm: %d candidates tried", len(candidates))
}
