package config

import (
	"fmt"

	"github.com/99designs/keyring"
)

const keyringTokenKey = "github-token"

// テストで差し替えられるようにしています
var keyringLookup = lookupKeyring

// lookupKeyring はOSのキーリングからトークンを取得します
func lookupKeyring(service, key string) (string, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: service,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
		},
		KeychainTrustApplication: true,
	})
	if err != nil {
		return "", fmt.Errorf("キーリングオープンエラー: %w", err)
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("キーリング取得エラー %q: %w", key, err)
	}

	return string(item.Data), nil
}
