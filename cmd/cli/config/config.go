package config

import (
	"os"
	"path/filepath"
)

const defaultAPIURL = "http://localhost:8080"

const tokenFileName = ".songvault_token"

// APIURL returns the base URL for the SongVault API.
// It can be overridden with the SONGVAULT_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("SONGVAULT_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// SaveToken stores the bearer token in the user's home directory for later commands.
func SaveToken(token string) error {
	return os.WriteFile(tokenPath(), []byte(token), 0600)
}

// LoadToken reads the locally stored bearer token.
func LoadToken() (string, error) {
	b, err := os.ReadFile(tokenPath())
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DeleteToken removes the locally stored bearer token.
func DeleteToken() error {
	err := os.Remove(tokenPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func tokenPath() string {
	dir, _ := os.UserHomeDir()
	return filepath.Join(dir, tokenFileName)
}
