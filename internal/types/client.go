package types

import (
	"fmt"
	"sort"
)

const (
	// DefaultClientID is used when MCP_CLIENT_ID is unset. Each deployment
	// binds exactly one client for its lifetime.
	DefaultClientID = "default"

	ClientIDEnvKey = "MCP_CLIENT_ID"

	// HostedEnvKey marks a hosted deployment (Render sets RENDER=true in
	// every service environment). When present, PRODUCTION_* env overrides
	// participate in resolution.
	HostedEnvKey = "RENDER"

	ClientIDMinLength = 2
)

// ClientDocument is the per-client configuration document: an open mapping
// from service name (e.g. "telegram", "dropbox") to that service's settings.
// Setting keys and value types are service-defined, not enforced centrally;
// each adapter documents its own required keys.
type ClientDocument map[string]map[string]any

// NormalizeDocument converts a freshly decoded YAML/JSON document into a
// ClientDocument. The top level must be a mapping of service name to a
// mapping of settings; anything else is rejected with ErrConfigFileInvalid
// (the caller wraps the offending path in).
func NormalizeDocument(raw map[string]any) (ClientDocument, error) {
	doc := make(ClientDocument, len(raw))
	for service, section := range raw {
		switch m := section.(type) {
		case map[string]any:
			doc[service] = m
		case nil:
			doc[service] = map[string]any{}
		default:
			return nil, fmt.Errorf("section %q is %T, want a mapping", service, section)
		}
	}
	return doc, nil
}

// Services returns the service names present in the document, sorted.
func (d ClientDocument) Services() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func ValidateClientID(id string) error {
	if id == "" {
		return fmt.Errorf("client_id is required")
	}
	if len(id) < ClientIDMinLength {
		return fmt.Errorf("client_id must be at least %d characters", ClientIDMinLength)
	}
	return nil
}
