package fsstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"mcphub/internal/types"
)

// Store reads client documents from a directory of per-client files,
// configs/{client_id}.yaml by default. A .yml or .json file with the same
// stem is accepted too. This is the default backend: one deployment, one
// directory, no shared infrastructure.
type Store struct {
	dir string
}

// exts are the accepted document file extensions, in lookup order.
var exts = []string{".yaml", ".yml", ".json"}

func New(dir string) *Store {
	if dir == "" {
		dir = "configs"
	}
	return &Store{dir: dir}
}

func (s *Store) GetClientDocument(ctx context.Context, clientID string) (types.ClientDocument, error) {
	for _, ext := range exts {
		path := filepath.Join(s.dir, clientID+ext)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, types.Err(types.ErrStoreAccess, err, "read %s", path)
		}
		return parseDocument(path, data)
	}
	return nil, types.Err(types.ErrNotFound, nil, "no document for client %q under %s", clientID, s.dir)
}

func (s *Store) ListClients(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		// No directory yet means no clients configured, not an error.
		return []string{}, nil
	}
	if err != nil {
		return nil, types.Err(types.ErrStoreAccess, err, "read dir %s", s.dir)
	}
	seen := make(map[string]struct{})
	clients := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if !isDocumentExt(ext) {
			continue
		}
		id := strings.TrimSuffix(name, ext)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		clients = append(clients, id)
	}
	sort.Strings(clients)
	return clients, nil
}

func (s *Store) PutClientDocument(ctx context.Context, clientID string, doc types.ClientDocument) error {
	if err := types.ValidateClientID(clientID); err != nil {
		return err
	}
	out, err := yaml.Marshal(map[string]map[string]any(doc))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return types.Err(types.ErrStoreAccess, err, "create dir %s", s.dir)
	}
	path := filepath.Join(s.dir, clientID+".yaml")
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return types.Err(types.ErrStoreAccess, err, "write %s", path)
	}
	return nil
}

func (s *Store) DeleteClientDocument(ctx context.Context, clientID string) error {
	removed := false
	for _, ext := range exts {
		path := filepath.Join(s.dir, clientID+ext)
		err := os.Remove(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return types.Err(types.ErrStoreAccess, err, "remove %s", path)
		}
		removed = true
	}
	if !removed {
		return types.Err(types.ErrNotFound, nil, "no document for client %q under %s", clientID, s.dir)
	}
	return nil
}

// DocumentRef returns the canonical path form, configs/{client_id}.yaml,
// even when the document is actually a .yml or .json variant.
func (s *Store) DocumentRef(clientID string) string {
	return filepath.Join(s.dir, clientID+".yaml")
}

func (s *Store) ClearAll(ctx context.Context) error {
	clients, err := s.ListClients(ctx)
	if err != nil {
		return err
	}
	for _, id := range clients {
		if err := s.DeleteClientDocument(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func isDocumentExt(ext string) bool {
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// parseDocument decodes and shape-checks one document file. Both parse
// failures and a non-mapping top level surface as ErrConfigFileInvalid
// naming the offending path.
func parseDocument(path string, data []byte) (types.ClientDocument, error) {
	var raw map[string]any
	var err error
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, types.Err(types.ErrConfigFileInvalid, err, "parse %s", path)
	}
	if raw == nil {
		return nil, types.Err(types.ErrConfigFileInvalid, fmt.Errorf("top level is not a mapping"), "parse %s", path)
	}
	doc, err := types.NormalizeDocument(raw)
	if err != nil {
		return nil, types.Err(types.ErrConfigFileInvalid, err, "parse %s", path)
	}
	return doc, nil
}
