// Package local provides the in-process synthesis strategy. It renders
// feature files with the pure pipeline in internal/synth and never fails.
package local

import (
	"context"

	"github.com/caseforge/caseforge/internal/strategy"
	"github.com/caseforge/caseforge/internal/synth"
	"github.com/caseforge/caseforge/internal/testcase"
)

// Name is the registry name of the local strategy.
const Name = "local"

// Local renders feature files in-process. It is stateless and safe for
// concurrent use.
type Local struct{}

// New returns a local synthesis strategy.
func New() *Local {
	return &Local{}
}

// Name returns the registry name.
func (l *Local) Name() string {
	return Name
}

// Configure is a no-op: local synthesis needs no settings.
func (l *Local) Configure(strategy.Config) error {
	return nil
}

// Synthesize renders the batch locally. The context is unused; the local
// path performs no I/O.
func (l *Local) Synthesize(_ context.Context, batch *testcase.Batch) (*testcase.Rendered, error) {
	return synth.Synthesize(batch), nil
}

// Register adds the local strategy to the registry.
func Register() {
	strategy.Register(Name, func() strategy.Strategy {
		return New()
	})
}
