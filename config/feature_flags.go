package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages runtime feature toggles. Flags are loaded once from
// the environment and may be overridden in tests via Set.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]bool
}

// Predefined feature flag names.
const (
	// FeatureAssistantMock bypasses the completion provider and returns a
	// deterministic canned reply. Used for offline testing of the
	// request/response contract.
	FeatureAssistantMock = "assistant.mock"

	// FeatureSeedOnMigrate inserts the initial student dataset when the
	// database migrations run against an empty table.
	FeatureSeedOnMigrate = "store.seed_on_migrate"

	// FeatureVerboseHTTP logs request and response bodies at debug level.
	FeatureVerboseHTTP = "http.verbose"
)

// defaults maps every known flag to its default state.
var defaults = map[string]bool{
	FeatureAssistantMock: false,
	FeatureSeedOnMigrate: true,
	FeatureVerboseHTTP:   false,
}

// LoadFeatureFlags loads feature flags from environment variables.
// A flag named "assistant.mock" is controlled by FEATURE_ASSISTANT_MOCK.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]bool, len(defaults))}

	for name, def := range defaults {
		ff.features[name] = def
		if val := os.Getenv(envName(name)); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				ff.features[name] = b
			}
		}
	}

	return ff
}

// Enabled reports whether the named flag is on. Unknown flags are off.
func (ff *FeatureFlags) Enabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()
	return ff.features[name]
}

// Set overrides a flag at runtime. Intended for tests.
func (ff *FeatureFlags) Set(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.features[name] = enabled
}

// envName converts "assistant.mock" into "FEATURE_ASSISTANT_MOCK".
func envName(flag string) string {
	return "FEATURE_" + strings.ToUpper(strings.ReplaceAll(flag, ".", "_"))
}
