package config

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"mcphub/internal/store"
	"mcphub/internal/types"
)

// Resolver deterministically answers "what is setting key of service for
// this client". Resolution order, highest precedence first:
//
//  1. env {CLIENT_ID}_{SERVICE}_{KEY} (all upper-cased)
//  2. env PRODUCTION_{SERVICE}_{KEY}, only in hosted mode (RENDER set)
//  3. the client document value under service.key
//  4. the static default from the defaults table
//
// A miss on every tier is types.ErrConfigMissing; the message names each
// env var and the document path checked so an operator can fix the gap
// without reading source. The resolver never writes configuration back.
//
// A Resolver is bound to one client. Use WithClient to derive a resolver
// for another client; derived resolvers share the store and the document
// cache, which is keyed by client ID so one client's lookups are never
// satisfied from another client's entry.
type Resolver struct {
	client    string
	hosted    bool
	store     store.ClientStore
	docs      *Cache[string, types.ClientDocument]
	lookupEnv func(string) (string, bool)
}

// Options tunes resolver construction. The zero value is what production
// deployments use: client from MCP_CLIENT_ID, hosted mode from RENDER,
// real process environment.
type Options struct {
	// Client overrides the default client ID.
	Client string
	// Hosted overrides hosted-mode detection.
	Hosted *bool
	// LookupEnv replaces os.LookupEnv. Tests use this to keep cases
	// hermetic; production code leaves it nil.
	LookupEnv func(string) (string, bool)
}

func New(st store.ClientStore, opts Options) *Resolver {
	client := opts.Client
	if client == "" {
		client = CurrentClientID()
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	hosted := false
	if opts.Hosted != nil {
		hosted = *opts.Hosted
	} else if _, ok := lookup(types.HostedEnvKey); ok {
		hosted = true
	}
	return &Resolver{
		client:    client,
		hosted:    hosted,
		store:     st,
		docs:      NewCache[string, types.ClientDocument](),
		lookupEnv: lookup,
	}
}

// CurrentClientID resolves the process-wide default client from
// MCP_CLIENT_ID, falling back to "default". Resolved once at startup;
// immutable for the process lifetime.
func CurrentClientID() string {
	if id := os.Getenv(types.ClientIDEnvKey); id != "" {
		return id
	}
	return types.DefaultClientID
}

func (r *Resolver) ClientID() string { return r.client }

// WithClient derives a resolver bound to clientID, sharing the store and
// document cache. There is deliberately no mutable process-wide current
// client: concurrent multi-client use within one process stays safe.
func (r *Resolver) WithClient(clientID string) *Resolver {
	if clientID == "" || clientID == r.client {
		return r
	}
	derived := *r
	derived.client = clientID
	return &derived
}

// Get resolves a required setting. The returned value keeps its document
// type (string stays string, number stays number); values from env tiers
// are always strings.
func (r *Resolver) Get(ctx context.Context, service, key string) (any, error) {
	if service == "" {
		return nil, fmt.Errorf("service is required")
	}
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}

	clientVar := EnvVarName(r.client, service, key)
	if v, ok := r.lookupEnv(clientVar); ok {
		return v, nil
	}
	checked := []string{"env " + clientVar}

	if r.hosted {
		hostedVar := EnvVarName("production", service, key)
		if v, ok := r.lookupEnv(hostedVar); ok {
			return v, nil
		}
		checked = append(checked, "env "+hostedVar)
	}

	doc, err := r.document(ctx)
	if err != nil {
		return nil, err
	}
	if section, ok := doc[service]; ok {
		if v, ok := section[key]; ok {
			return v, nil
		}
	}
	checked = append(checked, fmt.Sprintf("%s: %s.%s", r.store.DocumentRef(r.client), service, key))

	if v, ok := Default(service, key); ok {
		return v, nil
	}

	return nil, types.Err(types.ErrConfigMissing, nil,
		"no value for %s.%s (client %q): checked %s; no default documented",
		service, key, r.client, strings.Join(checked, ", "))
}

// GetOr resolves an optional setting, returning def when every tier
// misses. Required settings go through Get so a gap aborts startup instead
// of running with a guessed value.
func (r *Resolver) GetOr(ctx context.Context, service, key string, def any) any {
	v, err := r.Get(ctx, service, key)
	if err != nil {
		if !errors.Is(err, types.ErrConfigMissing) {
			log.WithError(err).WithField("client", r.client).
				Warnf("optional lookup %s.%s failed, using fallback", service, key)
		}
		return def
	}
	return v
}

func (r *Resolver) GetString(ctx context.Context, service, key string) (string, error) {
	v, err := r.Get(ctx, service, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s.%s is %T, want string", service, key, v)
	}
	return s, nil
}

// GetInt resolves an integer setting. Env tiers carry strings, so numeric
// strings are parsed; document values keep whatever integer shape the YAML
// decoder produced.
func (r *Resolver) GetInt(ctx context.Context, service, key string) (int, error) {
	v, err := r.Get(ctx, service, key)
	if err != nil {
		return 0, err
	}
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case uint64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%s.%s is %v, want an integer", service, key, t)
		}
		return int(t), nil
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, fmt.Errorf("%s.%s is %q, want an integer", service, key, t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s.%s is %T, want an integer", service, key, v)
	}
}

// GetStringSlice resolves a list setting. Document lists decode as []any;
// env tiers supply comma-separated strings.
func (r *Resolver) GetStringSlice(ctx context.Context, service, key string) ([]string, error) {
	v, err := r.Get(ctx, service, key)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s.%s contains %T, want strings", service, key, item)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		parts := strings.Split(t, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s.%s is %T, want a string list", service, key, v)
	}
}

// ServiceConfig returns every resolved setting of a service: the union of
// the document section and the defaults table, each key individually
// resolved so env overrides still win.
func (r *Resolver) ServiceConfig(ctx context.Context, service string) (map[string]any, error) {
	doc, err := r.document(ctx)
	if err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	for k := range doc[service] {
		keys[k] = struct{}{}
	}
	for k := range defaults[service] {
		keys[k] = struct{}{}
	}
	out := make(map[string]any, len(keys))
	for k := range keys {
		v, err := r.Get(ctx, service, k)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

// ListClients enumerates client IDs known to the underlying store.
func (r *Resolver) ListClients(ctx context.Context) ([]string, error) {
	return r.store.ListClients(ctx)
}

// document loads the client document through the process-lifetime cache.
// A client without a document resolves as an empty document: absence only
// surfaces when a lookup misses every tier. Parse failures surface
// immediately.
func (r *Resolver) document(ctx context.Context) (types.ClientDocument, error) {
	if doc, ok := r.docs.Get(r.client); ok {
		return doc, nil
	}
	doc, err := r.store.GetClientDocument(ctx, r.client)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return types.ClientDocument{}, nil
		}
		return nil, err
	}
	r.docs.Set(r.client, doc, 0)
	return doc, nil
}

// EnvVarName builds the override variable name for the given parts, e.g.
// ("acme", "telegram", "token") -> ACME_TELEGRAM_TOKEN. Characters that
// cannot appear in an env var name become underscores.
func EnvVarName(parts ...string) string {
	mapped := make([]string, len(parts))
	for i, p := range parts {
		mapped[i] = strings.Map(func(c rune) rune {
			switch {
			case c >= 'a' && c <= 'z':
				return c - ('a' - 'A')
			case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
				return c
			default:
				return '_'
			}
		}, p)
	}
	return strings.Join(mapped, "_")
}
