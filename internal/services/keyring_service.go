package services

import (
	"errors"
	"runtime"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringServiceName = "diotrix"
	googleAIKeyAccount = "google-ai"
)

func GetOS() string {
	return runtime.GOOS
}

// KeyringService stores the user's Google AI key in the OS keyring so
// the secret never sits in the settings record on disk.
type KeyringService struct {
}

func NewKeyringService() *KeyringService {
	return &KeyringService{}
}

func (s *KeyringService) Startup() {}

func (s *KeyringService) StoreAIKey(apiKey string) error {
	trimmed := strings.TrimSpace(apiKey)
	if trimmed == "" {
		return errors.New("API key is empty")
	}
	return keyring.Set(keyringServiceName, googleAIKeyAccount, trimmed)
}

func (s *KeyringService) GetAIKey() (string, error) {
	key, err := keyring.Get(keyringServiceName, googleAIKeyAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}

func (s *KeyringService) DeleteAIKey() error {
	err := keyring.Delete(keyringServiceName, googleAIKeyAccount)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}

// HasAIKey reports whether a key is stored without exposing it.
func (s *KeyringService) HasAIKey() bool {
	key, err := s.GetAIKey()
	return err == nil && key != ""
}
