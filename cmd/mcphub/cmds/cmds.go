package cmds

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"mcphub/internal/store"
	"mcphub/internal/types"
)

// PutDocument reads a YAML client document from path and stores it under
// the file's stem as client ID (configs/acme.yaml -> "acme").
func PutDocument(ctx context.Context, st store.ClientStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return types.Err(types.ErrConfigFileInvalid, err, "parse %s", path)
	}
	doc, err := types.NormalizeDocument(raw)
	if err != nil {
		return types.Err(types.ErrConfigFileInvalid, err, "parse %s", path)
	}
	name := filepath.Base(path)
	clientID := strings.TrimSuffix(name, filepath.Ext(name))
	return st.PutClientDocument(ctx, clientID, doc)
}

// GetDocument prints a client's document as YAML to stdout.
func GetDocument(ctx context.Context, st store.ClientStore, clientID string) error {
	doc, err := st.GetClientDocument(ctx, clientID)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(map[string]map[string]any(doc))
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

// ListClients prints known client IDs, one per line.
func ListClients(ctx context.Context, st store.ClientStore) error {
	clients, err := st.ListClients(ctx)
	if err != nil {
		return err
	}
	for _, id := range clients {
		fmt.Println(id)
	}
	return nil
}
