// Package config loads nudge configuration from an optional config.yaml in
// the config directory, environment variables and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/nudgecli/nudge/common"
)

const (
	DefaultSMTPPort   = 587
	DefaultLLMBaseURL = "https://api.openai.com/v1"
	DefaultLLMModel   = "gpt-4o-mini"
	DefaultLLMTimeout = 120
	DefaultServerAddr = ":8080"
)

// SMTP holds mail transport settings.
type SMTP struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// Sender returns the envelope sender, falling back to the username.
func (s SMTP) Sender() string {
	if s.From != "" {
		return s.From
	}
	return s.Username
}

// LLM holds text-generation service settings.
type LLM struct {
	BaseURL        string `mapstructure:"base_url"`
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Scheduler holds OS scheduling settings. An empty Backend means the
// platform default.
type Scheduler struct {
	Backend    string `mapstructure:"backend"`
	// StorageDir holds reminder scripts. Empty means ~/.local-reminders.
	StorageDir string `mapstructure:"storage_dir"`
}

// Server holds settings for the HTTP surface.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Config is the caller-owned configuration passed into each operation.
type Config struct {
	Dir       string    `mapstructure:"-"`
	SMTP      SMTP      `mapstructure:"smtp"`
	LLM       LLM       `mapstructure:"llm"`
	Scheduler Scheduler `mapstructure:"scheduler"`
	Server    Server    `mapstructure:"server"`

	// SecretErr records a keyring that could not be read. Load treats such
	// a keyring as empty so headless hosts still run.
	SecretErr error `mapstructure:"-"`
}

var userConfigDir = os.UserConfigDir

// DefaultDir returns the configuration directory: NUDGE_CONFIG_DIR when set,
// otherwise <user config dir>/nudge.
func DefaultDir() (string, error) {
	if dir := os.Getenv(common.ConfigDirEnv); dir != "" {
		return filepath.Abs(dir)
	}
	cdr, err := userConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(cdr, "nudge"), nil
}

// Load reads config.yaml from dir if present, applies environment overrides
// and defaults, then fills missing secrets from store. store may be nil.
func Load(dir string, store SecretStore) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	}

	v.SetDefault("smtp.port", DefaultSMTPPort)
	v.SetDefault("llm.base_url", DefaultLLMBaseURL)
	v.SetDefault("llm.model", DefaultLLMModel)
	v.SetDefault("llm.timeout_seconds", DefaultLLMTimeout)
	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("scheduler.backend", "")
	v.SetDefault("scheduler.storage_dir", "")

	bindings := map[string]string{
		"smtp.host":             common.SMTPHostEnv,
		"smtp.port":             common.SMTPPortEnv,
		"smtp.username":         common.SMTPUserEnv,
		"smtp.password":         common.SMTPPassEnv,
		"smtp.from":             common.SMTPFromEnv,
		"llm.api_key":           common.LLMAPIKeyEnv,
		"llm.base_url":          common.LLMBaseURLEnv,
		"llm.model":             common.LLMModelEnv,
		"scheduler.backend":     common.BackendEnv,
		"scheduler.storage_dir": common.StorageDirEnv,
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Dir = dir
	cfg.Scheduler.Backend = strings.ToLower(strings.TrimSpace(cfg.Scheduler.Backend))

	if store != nil {
		cfg.SecretErr = fillSecrets(&cfg, store)
	}
	return &cfg, nil
}

func fillSecrets(cfg *Config, store SecretStore) error {
	var errs []error
	if cfg.SMTP.Password == "" {
		pass, err := store.Get(SecretSMTP)
		if err != nil && !errors.Is(err, ErrSecretNotFound) {
			errs = append(errs, fmt.Errorf("read smtp secret: %w", err))
		}
		cfg.SMTP.Password = pass
	}
	if cfg.LLM.APIKey == "" {
		key, err := store.Get(SecretLLM)
		if err != nil && !errors.Is(err, ErrSecretNotFound) {
			errs = append(errs, fmt.Errorf("read llm secret: %w", err))
		}
		cfg.LLM.APIKey = key
	}
	return errors.Join(errs...)
}

// LogPath returns the log file location inside the config directory.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, "nudge.log")
}
