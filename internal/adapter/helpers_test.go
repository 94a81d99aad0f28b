package adapter

import (
	"context"
	"sort"

	"mcphub/internal/config"
	"mcphub/internal/types"
)

// memStore is an in-memory ClientStore for adapter construction in tests.
type memStore struct {
	docs map[string]types.ClientDocument
}

func (m *memStore) GetClientDocument(ctx context.Context, clientID string) (types.ClientDocument, error) {
	if doc, ok := m.docs[clientID]; ok {
		return doc, nil
	}
	return nil, types.Err(types.ErrNotFound, nil, "no document for client %q", clientID)
}

func (m *memStore) ListClients(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memStore) PutClientDocument(ctx context.Context, clientID string, doc types.ClientDocument) error {
	m.docs[clientID] = doc
	return nil
}

func (m *memStore) DeleteClientDocument(ctx context.Context, clientID string) error {
	delete(m.docs, clientID)
	return nil
}

func (m *memStore) DocumentRef(clientID string) string {
	return "memory document " + clientID
}

func (m *memStore) ClearAll(ctx context.Context) error {
	m.docs = map[string]types.ClientDocument{}
	return nil
}

func testResolver(doc types.ClientDocument) *config.Resolver {
	hosted := false
	return config.New(
		&memStore{docs: map[string]types.ClientDocument{"testclient": doc}},
		config.Options{
			Client: "testclient",
			Hosted: &hosted,
			LookupEnv: func(string) (string, bool) {
				return "", false
			},
		},
	)
}
