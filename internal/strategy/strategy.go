// Package strategy defines the feature synthesis strategy interface and the
// registry used to select one by name.
package strategy

import (
	"context"
	"time"

	"github.com/caseforge/caseforge/internal/testcase"
)

// Config carries the settings a strategy needs before use.
type Config struct {
	// EndpointURL is the remote enhancement endpoint. Ignored by local
	// synthesis.
	EndpointURL string

	// Provider names the LLM provider the remote service should use when
	// the batch does not carry its own hint.
	Provider string

	// Token optionally authenticates requests to the remote service.
	Token string

	// Timeout bounds a single remote attempt.
	Timeout time.Duration
}

// Strategy renders a batch of test cases into a feature file.
// Implementations must be safe for concurrent use after Configure.
type Strategy interface {
	// Name returns the registry name of the strategy.
	Name() string

	// Configure prepares the strategy. It must be called before Synthesize.
	Configure(cfg Config) error

	// Synthesize renders the batch into a feature file.
	Synthesize(ctx context.Context, batch *testcase.Batch) (*testcase.Rendered, error)
}
