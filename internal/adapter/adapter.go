package adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/server"

	"mcphub/internal/config"
)

// Adapter is one thin integration: it binds its settings from the resolver
// at construction and registers its tools on an MCP server. Constructors
// resolve every required setting up front and fail fast, so a deployment
// never comes up with partial credentials.
type Adapter interface {
	Name() string
	Register(s *server.MCPServer)
}

// Factory builds an adapter against a client-bound resolver.
type Factory func(ctx context.Context, res *config.Resolver) (Adapter, error)

var factories = map[string]Factory{
	"telegram": NewTelegram,
	"dropbox":  NewDropbox,
	"calendar": NewCalendar,
}

// Known returns the adapter names this build ships, sorted.
func Known() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named adapters. Any constructor error aborts the
// whole build; a service with missing configuration must not start.
func Build(ctx context.Context, res *config.Resolver, names []string) ([]Adapter, error) {
	adapters := make([]Adapter, 0, len(names))
	for _, name := range names {
		factory, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown service %q (known: %v)", name, Known())
		}
		a, err := factory(ctx, res)
		if err != nil {
			return nil, fmt.Errorf("init %s: %w", name, err)
		}
		adapters = append(adapters, a)
	}
	return adapters, nil
}
