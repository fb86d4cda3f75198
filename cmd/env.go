package cmd

import (
	"log"
	"os"
	"time"

	"github.com/nudgecli/nudge/common"
	"github.com/nudgecli/nudge/internal/config"
	"github.com/nudgecli/nudge/internal/email"
	"github.com/nudgecli/nudge/internal/llm"
	"github.com/nudgecli/nudge/internal/notify"
	"github.com/nudgecli/nudge/internal/osched"
	"github.com/nudgecli/nudge/internal/reminder"
	"github.com/nudgecli/nudge/pkg/logger"
)

// Seams replaced in tests.
var (
	configDir   = config.DefaultDir
	secretStore = func() config.SecretStore { return config.NewKeyring() }
	now         = time.Now

	newAdapter = func(cfg *config.Config, backend string, l logger.Logger) (osched.Adapter, error) {
		if backend == "" {
			backend = cfg.Scheduler.Backend
		}
		return osched.SelectHost(backend, osched.Options{
			StorageDir: cfg.Scheduler.StorageDir,
			Log:        l,
		})
	}
	newLLMClient = func(cfg *config.Config, l logger.Logger) (llm.Client, error) {
		if cfg.LLM.APIKey == "" {
			return nil, common.NewValidationError("llm.api_key",
				"not configured; set "+common.LLMAPIKeyEnv+" or run \"nudge config set-secret openai\"")
		}
		return llm.NewOpenAIClient(llm.Config{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			APIKey:  cfg.LLM.APIKey,
			Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		}, l)
	}
	newSender = func(cfg *config.Config, l logger.Logger) (email.Sender, error) {
		s, err := email.NewSMTPSender(cfg.SMTP, l)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	newNotifier = func(l logger.Logger) (notify.Notifier, error) {
		d, err := notify.NewHostDesktop(l)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
)

// env is what a command needs from the outside world.
type env struct {
	cfg *config.Config
	log logger.Logger
}

func loadEnv() (*env, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir, secretStore())
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: newLogger(cfg)}
	if cfg.SecretErr != nil {
		e.log.Warning("keyring unavailable: %v", cfg.SecretErr)
	}
	return e, nil
}

// newLogger logs to stderr when NUDGE_DEBUG is set and to the log file in
// the config directory otherwise.
func newLogger(cfg *config.Config) logger.Logger {
	if os.Getenv(common.DebugEnv) != "" {
		return logger.NewStandardLogger(log.New(os.Stderr, "nudge: ", log.LstdFlags))
	}
	if cfg.Dir == "" {
		return logger.NewNopLogger()
	}
	l, err := logger.NewFileLogger(cfg.LogPath(), "")
	if err != nil {
		return logger.NewNopLogger()
	}
	return l
}

func (e *env) close() {
	e.log.Close()
}

// parser returns the reminder parser, asking the language model about
// unrecognized text only when one is configured.
func (e *env) parser() reminder.LLMParser {
	p := reminder.LLMParser{
		Parser: reminder.Parser{Location: time.Local},
		Log:    e.log,
	}
	if c, err := newLLMClient(e.cfg, e.log); err == nil {
		p.Client = c
	}
	return p
}

func (e *env) generator() (*email.Generator, error) {
	c, err := newLLMClient(e.cfg, e.log)
	if err != nil {
		return nil, err
	}
	return email.NewGenerator(c, e.log), nil
}
