package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"mcphub/internal/types"
)

func newTestDropbox(t *testing.T, base string) *Dropbox {
	t.Helper()
	a, err := NewDropbox(context.Background(), testResolver(types.ClientDocument{
		"dropbox": {"access_token": "db-token"},
	}))
	require.NoError(t, err)
	d := a.(*Dropbox)
	d.base = base
	return d
}

func TestDropboxRequiresAccessToken(t *testing.T) {
	_, err := NewDropbox(context.Background(), testResolver(nil))
	require.ErrorIs(t, err, types.ErrConfigMissing)
	require.Contains(t, err.Error(), "dropbox.access_token")
}

func TestDropboxListFolder(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/files/list_folder", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries": [
			{".tag": "folder", "path_display": "/reports"},
			{".tag": "file", "path_display": "/reports/q3.pdf"}
		]}`))
	}))
	defer srv.Close()

	d := newTestDropbox(t, srv.URL)
	res, err := d.handleListFolder(context.Background(), callReq(map[string]any{
		"folder_path": "reports",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), "/reports/q3.pdf")

	require.Equal(t, "Bearer db-token", gotAuth)
	require.Equal(t, "/reports", gotBody["path"]) // slash-prefixed by normalization
}

func TestDropboxListFolderRoot(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries": []}`))
	}))
	defer srv.Close()

	d := newTestDropbox(t, srv.URL)
	res, err := d.handleListFolder(context.Background(), callReq(map[string]any{
		"folder_path": "/",
	}))
	require.NoError(t, err)
	require.Equal(t, "Folder is empty", resultText(t, res))
	require.Equal(t, "", gotBody["path"]) // API root spelling
}

func TestDropboxCreateFolderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error_summary": "path/conflict/folder/"}`))
	}))
	defer srv.Close()

	d := newTestDropbox(t, srv.URL)
	res, err := d.handleCreateFolder(context.Background(), callReq(map[string]any{
		"folder_path": "/reports",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "path/conflict/folder/")
}

func TestDropboxAccountInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/2/users/get_current_account", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": {"display_name": "Acme Ops"}, "email": "ops@acme.test"}`))
	}))
	defer srv.Close()

	d := newTestDropbox(t, srv.URL)
	res, err := d.handleAccountInfo(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.Equal(t, "Acme Ops ops@acme.test", resultText(t, res))
}

func TestNormalizeDropboxPath(t *testing.T) {
	require.Equal(t, "", normalizeDropboxPath(""))
	require.Equal(t, "", normalizeDropboxPath("/"))
	require.Equal(t, "/reports", normalizeDropboxPath("reports"))
	require.Equal(t, "/reports", normalizeDropboxPath("/reports"))
}
