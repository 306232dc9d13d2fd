package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/caseforge/caseforge/internal/config"
	"github.com/caseforge/caseforge/internal/credentials"
	"github.com/caseforge/caseforge/internal/enhance"
	"github.com/caseforge/caseforge/internal/local"
	"github.com/caseforge/caseforge/internal/strategy"
)

// resolveStrategy returns the configured synthesis strategy, ready to use.
// An explicit name wins over the configured default; the local strategy is
// the final fallback. Enhanced synthesis is wrapped so that service failures
// degrade to local synthesis with a warning on stderr.
func resolveStrategy(name, provider string) (strategy.Strategy, error) {
	if name == "" {
		if cfg := config.Get(); cfg != nil && cfg.Defaults.Strategy != "" {
			name = cfg.Defaults.Strategy
		} else {
			name = local.Name
		}
	}

	strat, err := strategy.Get(name)
	if err != nil {
		names := strategy.List()
		sort.Strings(names)
		return nil, InvalidInputError(fmt.Sprintf("unknown strategy %q (valid: %s)", name, strings.Join(names, ", ")))
	}

	if name == enhance.Name {
		secondary, err := strategy.Get(local.Name)
		if err != nil {
			return nil, err
		}
		strat = strategy.WithFallback(strat, secondary, func(synthErr error) {
			fmt.Fprintf(os.Stderr, "warning: enhanced generation failed, falling back to local synthesis: %v\n", synthErr)
		})
	}

	if err := strat.Configure(strategyConfig(provider)); err != nil {
		return nil, WrapExitCodeError(ExitConfigError, fmt.Sprintf("failed to configure %s strategy", name), err)
	}

	return strat, nil
}

// strategyConfig assembles strategy configuration from the loaded config
// and credentials. The provider argument wins over the configured default.
func strategyConfig(provider string) strategy.Config {
	sc := strategy.Config{
		Provider: provider,
		Token:    credentials.EnhancerToken(),
	}

	if cfg := config.Get(); cfg != nil {
		sc.EndpointURL = cfg.Enhancer.URL
		if cfg.Enhancer.TimeoutSeconds > 0 {
			sc.Timeout = time.Duration(cfg.Enhancer.TimeoutSeconds) * time.Second
		}
		if sc.Provider == "" {
			sc.Provider = cfg.Defaults.Provider
		}
	}

	return sc
}
