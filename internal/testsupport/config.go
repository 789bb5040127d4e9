package testsupport

import (
	"path/filepath"
	"testing"

	"pagemark/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.LockFile = filepath.Join(base, "pagemark.lock")
	cfgVal.Paths.APIBind = "127.0.0.1:0"
	cfgVal.Workflow.QueuePollInterval = 1
	cfgVal.Workflow.ErrorRetryInterval = 1
	cfgVal.Workflow.HeartbeatInterval = 1
	cfgVal.Workflow.HeartbeatTimeout = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := cfgVal.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return builder.cfg
}

// WithProviderKey sets the provider API key on the test config.
func WithProviderKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Provider.APIKey = key
	}
}

// WithProviderBaseURL points the provider client at a test server.
func WithProviderBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Provider.BaseURL = url
	}
}

// WithNtfyTopic enables notifications against the supplied topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
		b.cfg.Notifications.Enrichment = true
		b.cfg.Notifications.Queue = true
		b.cfg.Notifications.Errors = true
	}
}
