package engine

import "context"

// ModelClient abstracts text generation. Implementations can wrap a local
// CLI tool, a stub, etc. Every call re-invokes the backing generator; there
// is no retrying or caching at this level.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
