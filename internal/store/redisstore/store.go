package redisstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"
	"github.com/redis/go-redis/v9"

	"mcphub/internal/types"
)

const documentKeyTemplate = "_mcphub_cfg_%s"

// Store keeps client documents in Redis, one gzip-compressed JSON value per
// client. Meant for fleets that manage client documents centrally instead
// of shipping a configs/ directory with every deployment.
type Store struct {
	cli *redis.Client
}

func New(cli *redis.Client) *Store {
	return &Store{cli: cli}
}

func (s *Store) GetClientDocument(ctx context.Context, clientID string) (types.ClientDocument, error) {
	out := s.cli.Get(ctx, documentKey(clientID))
	if err := out.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, types.Err(types.ErrNotFound, nil, "no document for client %q", clientID)
		}
		return nil, types.Err(types.ErrStoreAccess, err, "")
	}
	raw, err := decompress([]byte(out.Val()))
	if err != nil {
		return nil, types.Err(types.ErrConfigFileInvalid, err, "decode %s", s.DocumentRef(clientID))
	}
	var doc map[string]map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, types.Err(types.ErrConfigFileInvalid, err, "decode %s", s.DocumentRef(clientID))
	}
	return doc, nil
}

func (s *Store) ListClients(ctx context.Context) ([]string, error) {
	out := s.cli.Keys(ctx, documentKey("*"))
	if out.Err() != nil {
		return nil, types.Err(types.ErrStoreAccess, out.Err(), "")
	}
	prefixLen := len(fmt.Sprintf(documentKeyTemplate, ""))
	keys := out.Val()
	clients := make([]string, 0, len(keys))
	for _, k := range keys {
		if len(k) > prefixLen {
			clients = append(clients, k[prefixLen:])
		}
	}
	sort.Strings(clients)
	return clients, nil
}

func (s *Store) PutClientDocument(ctx context.Context, clientID string, doc types.ClientDocument) error {
	if err := types.ValidateClientID(clientID); err != nil {
		return err
	}
	raw, err := json.Marshal(map[string]map[string]any(doc))
	if err != nil {
		return err
	}
	outS := s.cli.Set(ctx, documentKey(clientID), compress(raw), 0)
	if outS.Err() != nil {
		return types.Err(types.ErrStoreAccess, outS.Err(), "")
	}
	return nil
}

func (s *Store) DeleteClientDocument(ctx context.Context, clientID string) error {
	out := s.cli.Del(ctx, documentKey(clientID))
	if out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "")
	}
	if out.Val() == 0 {
		return types.Err(types.ErrNotFound, nil, "no document for client %q", clientID)
	}
	return nil
}

func (s *Store) DocumentRef(clientID string) string {
	return "redis key " + documentKey(clientID)
}

func (s *Store) ClearAll(ctx context.Context) error {
	out := s.cli.Keys(ctx, documentKey("*"))
	if out.Err() != nil {
		return types.Err(types.ErrStoreAccess, out.Err(), "")
	}
	keys := out.Val()
	if len(keys) == 0 {
		return nil
	}
	return s.cli.Del(ctx, keys...).Err()
}

func documentKey(id string) string {
	return fmt.Sprintf(documentKeyTemplate, id)
}

func compress(raw []byte) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write(raw)
	_ = w.Close()
	return buf.Bytes()
}

func decompress(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()
	return io.ReadAll(r)
}
