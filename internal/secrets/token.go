package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups jobsync secrets in the OS keychain
const KeyringService = "jobsync"

var ErrTokenNotFound = errors.New("webflow token not found (set WEBFLOW_API_TOKEN or store it in the keyring)")

// WebflowToken returns envToken when set, otherwise the keyring entry for account
func WebflowToken(envToken, account string) (string, error) {
	if t := strings.TrimSpace(envToken); t != "" {
		return t, nil
	}

	if strings.TrimSpace(account) != "" {
		tok, err := keyring.Get(KeyringService, account)
		if err == nil && strings.TrimSpace(tok) != "" {
			return strings.TrimSpace(tok), nil
		}
	}

	return "", ErrTokenNotFound
}

func SetWebflowToken(account, token string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, account, token)
}

func DeleteWebflowToken(account string) error {
	if strings.TrimSpace(account) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, account)
}
