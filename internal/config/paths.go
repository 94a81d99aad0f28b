package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	credentialsDir = "credentials"
	tokensDir      = "tokens"
)

// CredentialsPath returns the per-client credential file location for a
// service: credentials/{client_id}/{service}_credentials.json. Path layout
// is owned here; consumers treat the result as an opaque read-only string
// and never build these paths themselves.
func CredentialsPath(clientID, service string) string {
	return filepath.Join(credentialsDir, clientID, fmt.Sprintf("%s_credentials.json", service))
}

// TokenPath returns the per-client OAuth token cache location for a
// service: tokens/{client_id}/{service}_token.pickle. The .pickle suffix is
// kept for compatibility with token caches written by earlier deployments.
func TokenPath(clientID, service string) string {
	return filepath.Join(tokensDir, clientID, fmt.Sprintf("%s_token.pickle", service))
}

// EnsureClientDirs creates the per-client credentials and tokens
// directories. Called when provisioning a new client.
func EnsureClientDirs(clientID string) error {
	for _, dir := range []string{
		filepath.Join(credentialsDir, clientID),
		filepath.Join(tokensDir, clientID),
	} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return nil
}
