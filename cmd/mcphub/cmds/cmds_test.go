package cmds

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mcphub/internal/store/fsstore"
	"mcphub/internal/types"
)

func TestPutDocument(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "acme.yaml")
	require.NoError(t, os.WriteFile(src, []byte("telegram:\n  token: abc\n"), 0o600))

	st := fsstore.New(filepath.Join(dir, "configs"))
	ctx := context.Background()
	require.NoError(t, PutDocument(ctx, st, src))

	doc, err := st.GetClientDocument(ctx, "acme")
	require.NoError(t, err)
	require.Equal(t, "abc", doc["telegram"]["token"])
}

func TestPutDocumentInvalid(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(src, []byte("telegram: just-a-string\n"), 0o600))

	err := PutDocument(context.Background(), fsstore.New(filepath.Join(dir, "configs")), src)
	require.True(t, errors.Is(err, types.ErrConfigFileInvalid))
	require.Contains(t, err.Error(), src)
}

func TestGetDocumentUnknownClient(t *testing.T) {
	st := fsstore.New(t.TempDir())
	err := GetDocument(context.Background(), st, "ghost")
	require.True(t, errors.Is(err, types.ErrNotFound))
}
