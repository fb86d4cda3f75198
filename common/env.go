// Package common provides the error taxonomy and environment variable names
// shared by the nudge commands and internal packages.
package common

// Environment variable names for configuration.
const (
	// ConfigDirEnv overrides the default configuration directory.
	ConfigDirEnv = "NUDGE_CONFIG_DIR"

	// StorageDirEnv overrides the directory that holds reminder scripts.
	StorageDirEnv = "NUDGE_STORAGE_DIR"

	// BackendEnv selects a scheduling backend (systemd, at, launchd, schtasks).
	BackendEnv = "NUDGE_BACKEND"

	// DebugEnv is the environment variable to enable debug logging on stderr.
	DebugEnv = "NUDGE_DEBUG"

	SMTPHostEnv = "SMTP_HOST"
	SMTPPortEnv = "SMTP_PORT"
	SMTPUserEnv = "SMTP_USER"
	SMTPPassEnv = "SMTP_PASS"
	SMTPFromEnv = "SMTP_FROM"

	LLMAPIKeyEnv  = "OPENAI_API_KEY"
	LLMBaseURLEnv = "OPENAI_BASE_URL"
	LLMModelEnv   = "OPENAI_MODEL"
)
