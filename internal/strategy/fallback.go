package strategy

import (
	"context"

	"github.com/caseforge/caseforge/internal/testcase"
)

// Fallback chains two strategies: the primary gets exactly one attempt, and
// any failure degrades to the secondary. The primary's error never reaches
// the caller; an optional Notify hook observes it.
type Fallback struct {
	Primary   Strategy
	Secondary Strategy
	Notify    func(error)
}

// WithFallback wraps primary so that any synthesis failure degrades to
// secondary. notify may be nil.
func WithFallback(primary, secondary Strategy, notify func(error)) *Fallback {
	return &Fallback{Primary: primary, Secondary: secondary, Notify: notify}
}

// Name reports the primary strategy's name.
func (f *Fallback) Name() string {
	return f.Primary.Name()
}

// Configure configures both strategies. Configuration errors are not
// degradation: they propagate so the caller can surface them.
func (f *Fallback) Configure(cfg Config) error {
	if err := f.Primary.Configure(cfg); err != nil {
		return err
	}
	return f.Secondary.Configure(cfg)
}

// Synthesize tries the primary once, then falls back on any error.
func (f *Fallback) Synthesize(ctx context.Context, batch *testcase.Batch) (*testcase.Rendered, error) {
	rendered, err := f.Primary.Synthesize(ctx, batch)
	if err == nil {
		return rendered, nil
	}
	if f.Notify != nil {
		f.Notify(err)
	}
	return f.Secondary.Synthesize(ctx, batch)
}
