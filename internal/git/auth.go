package git

import (
	"fmt"
	"net/url"
	"strings"
)

// AuthURL embeds token as user info in an https repository URL.
// Other URL forms are returned unchanged.
func AuthURL(repository, token string) (string, error) {
	if token == "" || !strings.HasPrefix(repository, "https://") {
		return repository, nil
	}
	u, err := url.Parse(repository)
	if err != nil {
		return "", fmt.Errorf("parse repository url: %w", err)
	}
	u.User = url.User(token)
	return u.String(), nil
}

// Redact replaces every non-empty secret in s with "***".
func Redact(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, "***")
		}
	}
	return s
}
