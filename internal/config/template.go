package config

import (
	"context"
	"time"

	"mcphub/internal/store"
	"mcphub/internal/types"
)

// Template returns a starter client document with every known service
// section filled with placeholder values. Operators replace the
// placeholders, or delete the sections they don't deploy.
func Template(clientID string) types.ClientDocument {
	return types.ClientDocument{
		"client_info": {
			"name":        "Client " + clientID,
			"description": "Configuration for MCP adapter services",
			"created":     time.Now().Format("2006-01-02"),
		},
		"gmail": {
			"credentials_path": CredentialsPath(clientID, "gmail"),
			"token_path":       TokenPath(clientID, "gmail"),
			"scopes":           []any{"https://www.googleapis.com/auth/gmail.modify"},
		},
		"telegram": {
			"token":      "your_telegram_bot_token",
			"chat_id":    "your_default_chat_id",
			"parse_mode": "HTML",
		},
		"pdf_tools": {
			"api_key":        "your_pdfshift_api_key",
			"default_format": "A4",
			"default_margin": 20,
		},
		"elevenlabs": {
			"api_key":       "your_elevenlabs_api_key",
			"default_voice": "rachel",
			"default_model": "eleven_monolingual_v1",
		},
		"supabase": {
			"url":          "your_supabase_url",
			"key":          "your_supabase_anon_key",
			"table_prefix": clientID,
		},
		"instagram": {
			"access_token": "your_instagram_access_token",
			"app_id":       "your_facebook_app_id",
			"app_secret":   "your_facebook_app_secret",
			"account_id":   "your_instagram_business_account_id",
			"page_id":      "your_facebook_page_id",
		},
		"tiktok": {
			"client_key":    "your_tiktok_client_key",
			"client_secret": "your_tiktok_client_secret",
			"access_token":  "your_tiktok_access_token",
			"refresh_token": "your_tiktok_refresh_token",
		},
		"dropbox": {
			"access_token":  "your_dropbox_access_token",
			"refresh_token": "your_dropbox_refresh_token",
			"app_key":       "your_dropbox_app_key",
			"app_secret":    "your_dropbox_app_secret",
		},
		"calendar": {
			"timezone": "UTC",
			"business_hours": map[string]any{
				"start": "09:00",
				"end":   "17:00",
			},
			"excluded_days": []any{"saturday", "sunday"},
		},
	}
}

// Provision writes a template document for a new client and creates its
// credential/token directories. Fails if the client ID is unusable; an
// existing document is overwritten deliberately (re-provisioning resets
// the template).
func Provision(ctx context.Context, st store.ClientStore, clientID string) error {
	if err := types.ValidateClientID(clientID); err != nil {
		return err
	}
	if err := st.PutClientDocument(ctx, clientID, Template(clientID)); err != nil {
		return err
	}
	return EnsureClientDirs(clientID)
}
