package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Secret names stored in the OS keyring.
const (
	SecretSMTP = "smtp"
	SecretLLM  = "openai"
)

// ErrSecretNotFound is returned when a secret is absent from the store.
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore reads and writes named secrets.
type SecretStore interface {
	Get(name string) (string, error)
	Set(name, value string) error
	Delete(name string) error
}

var (
	keyringSet    = keyring.Set
	keyringGet    = keyring.Get
	keyringDelete = keyring.Delete
)

// Keyring stores secrets in the operating system keyring under AppName.
type Keyring struct {
	AppName string
}

// NewKeyring returns a keyring-backed SecretStore for nudge.
func NewKeyring() *Keyring {
	return &Keyring{AppName: "nudge"}
}

// Get returns ErrSecretNotFound when no entry exists for name.
func (k *Keyring) Get(name string) (string, error) {
	v, err := keyringGet(k.AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("keyring get %s: %w", name, err)
	}
	return v, nil
}

func (k *Keyring) Set(name, value string) error {
	if !validSecretName(name) {
		return fmt.Errorf("unknown secret %q (want %s or %s)", name, SecretSMTP, SecretLLM)
	}
	if err := keyringSet(k.AppName, name, value); err != nil {
		return fmt.Errorf("keyring set %s: %w", name, err)
	}
	return nil
}

func (k *Keyring) Delete(name string) error {
	err := keyringDelete(k.AppName, name)
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrSecretNotFound
	}
	return err
}

func validSecretName(name string) bool {
	return name == SecretSMTP || name == SecretLLM
}
