package config

const (
	defaultDataDir                = "~/.local/share/pagemark"
	defaultLogDir                 = "~/.local/share/pagemark/logs"
	defaultLockFile               = "~/.local/share/pagemark/pagemark.lock"
	defaultAPIBind                = "127.0.0.1:7389"
	defaultProviderBaseURL        = "https://openrouter.ai/api/v1/chat/completions"
	defaultProviderModel          = "google/gemini-3-flash-preview"
	defaultProviderTimeoutSeconds = 30
	defaultQueuePollInterval      = 2
	defaultErrorRetryInterval     = 5
	defaultHeartbeatInterval      = 15
	defaultHeartbeatTimeout       = 120
	defaultNotifyRequestTimeout   = 10
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
			LockFile: defaultLockFile,
			APIBind:  defaultAPIBind,
		},
		Provider: Provider{
			BaseURL:        defaultProviderBaseURL,
			Model:          defaultProviderModel,
			TimeoutSeconds: defaultProviderTimeoutSeconds,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			HeartbeatInterval:  defaultHeartbeatInterval,
			HeartbeatTimeout:   defaultHeartbeatTimeout,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Enrichment:     true,
			Queue:          true,
			Errors:         true,
		},
		Search: Search{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
