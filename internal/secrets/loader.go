package secrets

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrPlaceholder is returned when a secret still holds a sample value from documentation.
var ErrPlaceholder = errors.New("secret is a placeholder")

var placeholders = []string{
	"your-api-key",
	"your_api_key",
	"changeme",
	"replace-me",
}

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or environment.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
}

// Load returns the resolved secret value from the provided source. When File is
// set it takes precedence over Value. The returned secret is always trimmed. An
// error is returned when neither File nor Value contain a usable secret, or when
// the secret is an obvious placeholder such as "sk-....." or "your-api-key".
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		src.Value = string(data)
		src.File = file
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" {
		if src.File != "" {
			return "", fmt.Errorf("%s file %q is empty", name, src.File)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	if IsPlaceholder(secret) {
		return "", fmt.Errorf("%s: %w", name, ErrPlaceholder)
	}

	return secret, nil
}

// IsPlaceholder reports whether s looks like an elided or sample secret.
func IsPlaceholder(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.Contains(s, "...") {
		return true
	}
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return true
	}
	for _, p := range placeholders {
		if s == p {
			return true
		}
	}
	return false
}
