package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mcphub/internal/types"
)

func TestKnown(t *testing.T) {
	require.Equal(t, []string{"calendar", "dropbox", "telegram"}, Known())
}

func TestBuildUnknownService(t *testing.T) {
	_, err := Build(context.Background(), testResolver(nil), []string{"fax"})
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown service "fax"`)
}

func TestBuildFailsFastOnMissingConfig(t *testing.T) {
	// calendar would construct fine from defaults, but telegram has no
	// token anywhere, so the whole build aborts.
	_, err := Build(context.Background(), testResolver(nil), []string{"calendar", "telegram"})
	require.ErrorIs(t, err, types.ErrConfigMissing)
	require.Contains(t, err.Error(), "init telegram")
}

func TestBuildAll(t *testing.T) {
	res := testResolver(types.ClientDocument{
		"telegram": {"token": "tok"},
		"dropbox":  {"access_token": "tok"},
	})
	adapters, err := Build(context.Background(), res, Known())
	require.NoError(t, err)
	require.Len(t, adapters, 3)
	names := make([]string, 0, len(adapters))
	for _, a := range adapters {
		names = append(names, a.Name())
	}
	require.Equal(t, []string{"calendar", "dropbox", "telegram"}, names)
}
