package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "leadscout"

// GetInferenceToken fetches the inference-sidecar API token. An empty
// account means the sidecar runs unauthenticated; that's not an error.
func GetInferenceToken(account string) (string, error) {
	if strings.TrimSpace(account) == "" {
		return "", nil
	}
	tok, err := keyring.Get(KeyringService, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func SetInferenceToken(account, token string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account, token)
}

func DeleteInferenceToken(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
