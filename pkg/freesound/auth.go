package freesound

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// APIKeyEnv is the environment variable holding the API key.
const APIKeyEnv = "FREESOUND_API_KEY"

// apiKeyFile is the API key file in the user's home directory.
const apiKeyFile = ".freesound_api_key"

// LoadAPIKeyFromEnv loads the API key from the FREESOUND_API_KEY environment variable.
func LoadAPIKeyFromEnv() (string, error) {
	key := strings.TrimSpace(os.Getenv(APIKeyEnv))
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// LoadAPIKeyFromFile loads the API key from ~/.freesound_api_key.
func LoadAPIKeyFromFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(home, apiKeyFile))
	if err != nil {
		return "", ErrNoAPIKey
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// LoadAPIKey loads the API key from the environment, falling back to
// ~/.freesound_api_key.
func LoadAPIKey() (string, error) {
	key, err := LoadAPIKeyFromEnv()
	if err == nil {
		return key, nil
	}
	return LoadAPIKeyFromFile()
}

// SaveAPIKey writes the API key to ~/.freesound_api_key.
func SaveAPIKey(key string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("cannot determine home directory: %w", err)
	}

	path := filepath.Join(home, apiKeyFile)
	return os.WriteFile(path, []byte(key), 0600)
}
