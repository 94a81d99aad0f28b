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

func telegramDoc() types.ClientDocument {
	return types.ClientDocument{
		"telegram": {"token": "bot-token", "chat_id": "777"},
	}
}

func newTestTelegram(t *testing.T, base string) *Telegram {
	t.Helper()
	a, err := NewTelegram(context.Background(), testResolver(telegramDoc()))
	require.NoError(t, err)
	tg := a.(*Telegram)
	tg.base = base
	return tg
}

func TestTelegramRequiresToken(t *testing.T) {
	_, err := NewTelegram(context.Background(), testResolver(types.ClientDocument{}))
	require.ErrorIs(t, err, types.ErrConfigMissing)
	require.Contains(t, err.Error(), "telegram.token")
}

func TestTelegramSendMessage(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": {"message_id": 99}}`))
	}))
	defer srv.Close()

	tg := newTestTelegram(t, srv.URL)
	res, err := tg.handleSendMessage(context.Background(), callReq(map[string]any{
		"text": "hello",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, resultText(t, res), "99")

	require.Equal(t, "/botbot-token/sendMessage", gotPath)
	require.Equal(t, "hello", gotBody["text"])
	require.Equal(t, "777", gotBody["chat_id"]) // default chat from the document
	require.Equal(t, "HTML", gotBody["parse_mode"])
}

func TestTelegramSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
	}))
	defer srv.Close()

	tg := newTestTelegram(t, srv.URL)
	res, err := tg.handleSendMessage(context.Background(), callReq(map[string]any{
		"text": "hello", "chat_id": "404",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "chat not found")
}

func TestTelegramNoChatConfigured(t *testing.T) {
	a, err := NewTelegram(context.Background(), testResolver(types.ClientDocument{
		"telegram": {"token": "bot-token"},
	}))
	require.NoError(t, err)

	res, err := a.(*Telegram).handleSendMessage(context.Background(), callReq(map[string]any{
		"text": "hello",
	}))
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Contains(t, resultText(t, res), "no chat_id")
}

func TestTelegramGetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true, "result": []}`))
	}))
	defer srv.Close()

	tg := newTestTelegram(t, srv.URL)
	res, err := tg.handleGetUpdates(context.Background(), callReq(map[string]any{}))
	require.NoError(t, err)
	require.Equal(t, "No recent updates", resultText(t, res))
}
