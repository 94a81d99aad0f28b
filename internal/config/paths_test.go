package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mcphub/internal/store/fsstore"
)

func TestCredentialAndTokenPaths(t *testing.T) {
	require.Equal(t,
		filepath.Join("credentials", "acme", "gmail_credentials.json"),
		CredentialsPath("acme", "gmail"))
	require.Equal(t,
		filepath.Join("tokens", "acme", "gmail_token.pickle"),
		TokenPath("acme", "gmail"))
}

func TestEnvVarName(t *testing.T) {
	require.Equal(t, "ACME_TELEGRAM_TOKEN", EnvVarName("acme", "telegram", "token"))
	require.Equal(t, "MY_CLIENT_PDF_TOOLS_API_KEY", EnvVarName("my-client", "pdf_tools", "api.key"))
}

func TestProvision(t *testing.T) {
	t.Chdir(t.TempDir())
	st := fsstore.New("configs")
	ctx := context.Background()

	require.NoError(t, Provision(ctx, st, "acme"))

	doc, err := st.GetClientDocument(ctx, "acme")
	require.NoError(t, err)
	require.Contains(t, doc, "telegram")
	require.Contains(t, doc, "calendar")
	require.Equal(t, CredentialsPath("acme", "gmail"), doc["gmail"]["credentials_path"])

	for _, dir := range []string{
		filepath.Join("credentials", "acme"),
		filepath.Join("tokens", "acme"),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}

	// Too-short IDs are rejected before anything is written.
	require.Error(t, Provision(ctx, st, "x"))
}
