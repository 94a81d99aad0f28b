package adapter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"mcphub/internal/config"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram maps Bot API methods to tools. Required setting: telegram.token.
// Optional: telegram.chat_id (default target chat), telegram.parse_mode.
type Telegram struct {
	token         string
	defaultChatID string
	parseMode     string
	base          string
	hc            *http.Client
}

func NewTelegram(ctx context.Context, res *config.Resolver) (Adapter, error) {
	token, err := res.GetString(ctx, "telegram", "token")
	if err != nil {
		return nil, err
	}
	parseMode, err := res.GetString(ctx, "telegram", "parse_mode")
	if err != nil {
		return nil, err
	}
	chatID := fmt.Sprint(res.GetOr(ctx, "telegram", "chat_id", ""))
	return &Telegram{
		token:         token,
		defaultChatID: chatID,
		parseMode:     parseMode,
		base:          telegramAPIBase,
		hc:            newHTTPClient(),
	}, nil
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("send_message",
		mcp.WithDescription("Send a message to a Telegram chat"),
		mcp.WithString("text", mcp.Required(), mcp.Description("Message text")),
		mcp.WithString("chat_id", mcp.Description("Target chat ID; falls back to the configured default chat")),
		mcp.WithString("parse_mode", mcp.Description("Telegram parse mode, e.g. HTML or MarkdownV2")),
	), t.handleSendMessage)

	s.AddTool(mcp.NewTool("send_photo",
		mcp.WithDescription("Send a photo to a Telegram chat by URL"),
		mcp.WithString("photo_url", mcp.Required(), mcp.Description("Publicly reachable photo URL")),
		mcp.WithString("chat_id", mcp.Description("Target chat ID; falls back to the configured default chat")),
		mcp.WithString("caption", mcp.Description("Photo caption")),
	), t.handleSendPhoto)

	s.AddTool(mcp.NewTool("get_updates",
		mcp.WithDescription("Get recent updates (messages) received by the bot"),
		mcp.WithNumber("limit", mcp.Description("Maximum number of updates to return (default 10)")),
	), t.handleGetUpdates)
}

func (t *Telegram) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.base, t.token, name)
}

func (t *Telegram) handleSendMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chatID := req.GetString("chat_id", t.defaultChatID)
	if chatID == "" {
		return mcp.NewToolResultError("no chat_id given and no default chat configured"), nil
	}
	data, _, err := callJSON(ctx, t.hc, http.MethodPost, t.method("sendMessage"), nil, map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": req.GetString("parse_mode", t.parseMode),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("telegram call failed: %v", err)), nil
	}
	if !telegramOK(data) {
		return mcp.NewToolResultError("telegram: " + telegramDescription(data)), nil
	}
	id, _ := ExtractText("result.message_id", data)
	log.WithFields(log.Fields{"chat_id": chatID, "message_id": id}).Debug("telegram message sent")
	return mcp.NewToolResultText(fmt.Sprintf("Message sent, ID %s", id)), nil
}

func (t *Telegram) handleSendPhoto(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	photoURL, err := req.RequireString("photo_url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	chatID := req.GetString("chat_id", t.defaultChatID)
	if chatID == "" {
		return mcp.NewToolResultError("no chat_id given and no default chat configured"), nil
	}
	data, _, err := callJSON(ctx, t.hc, http.MethodPost, t.method("sendPhoto"), nil, map[string]any{
		"chat_id": chatID,
		"photo":   photoURL,
		"caption": req.GetString("caption", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("telegram call failed: %v", err)), nil
	}
	if !telegramOK(data) {
		return mcp.NewToolResultError("telegram: " + telegramDescription(data)), nil
	}
	id, _ := ExtractText("result.message_id", data)
	return mcp.NewToolResultText(fmt.Sprintf("Photo sent, ID %s", id)), nil
}

func (t *Telegram) handleGetUpdates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	data, _, err := callJSON(ctx, t.hc, http.MethodPost, t.method("getUpdates"), nil, map[string]any{
		"limit": limit,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("telegram call failed: %v", err)), nil
	}
	if !telegramOK(data) {
		return mcp.NewToolResultError("telegram: " + telegramDescription(data)), nil
	}
	updates, err := ExtractText("result", data)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if updates == "" || updates == "[]" {
		return mcp.NewToolResultText("No recent updates"), nil
	}
	return mcp.NewToolResultText(updates), nil
}

func telegramOK(data map[string]any) bool {
	ok, _ := data["ok"].(bool)
	return ok
}

func telegramDescription(data map[string]any) string {
	if desc, ok := data["description"].(string); ok {
		return desc
	}
	return "unknown error"
}
