package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"mcphub/internal/config"
)

const dropboxAPIBase = "https://api.dropboxapi.com"

// Dropbox maps a few file-namespace endpoints to tools.
// Required setting: dropbox.access_token.
type Dropbox struct {
	accessToken string
	base        string
	hc          *http.Client
}

func NewDropbox(ctx context.Context, res *config.Resolver) (Adapter, error) {
	token, err := res.GetString(ctx, "dropbox", "access_token")
	if err != nil {
		return nil, err
	}
	return &Dropbox{
		accessToken: token,
		base:        dropboxAPIBase,
		hc:          newHTTPClient(),
	}, nil
}

func (d *Dropbox) Name() string { return "dropbox" }

func (d *Dropbox) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_folder",
		mcp.WithDescription("List contents of a Dropbox folder"),
		mcp.WithString("folder_path", mcp.Description("Dropbox folder path; empty or / for the root")),
	), d.handleListFolder)

	s.AddTool(mcp.NewTool("create_folder",
		mcp.WithDescription("Create a new folder in Dropbox"),
		mcp.WithString("folder_path", mcp.Required(), mcp.Description("Path of the folder to create")),
	), d.handleCreateFolder)

	s.AddTool(mcp.NewTool("get_account_info",
		mcp.WithDescription("Get information about the linked Dropbox account"),
	), d.handleAccountInfo)
}

func (d *Dropbox) call(ctx context.Context, endpoint string, body any) (map[string]any, int, error) {
	return callJSON(ctx, d.hc, http.MethodPost, d.base+endpoint,
		map[string]string{"Authorization": "Bearer " + d.accessToken}, body)
}

func (d *Dropbox) handleListFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := normalizeDropboxPath(req.GetString("folder_path", ""))
	data, status, err := d.call(ctx, "/2/files/list_folder", map[string]any{"path": path})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dropbox call failed: %v", err)), nil
	}
	if status != http.StatusOK {
		return mcp.NewToolResultError("dropbox: " + dropboxErrorSummary(data, status)), nil
	}
	entries, err := ExtractText("entries[].join(' ', [\".tag\", path_display])", data)
	if err != nil || entries == "" || entries == "[]" {
		names, _ := ExtractText("entries", data)
		if names == "" || names == "[]" {
			return mcp.NewToolResultText("Folder is empty"), nil
		}
		return mcp.NewToolResultText(names), nil
	}
	return mcp.NewToolResultText(entries), nil
}

func (d *Dropbox) handleCreateFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("folder_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, status, err := d.call(ctx, "/2/files/create_folder_v2", map[string]any{
		"path":       normalizeDropboxPath(path),
		"autorename": false,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dropbox call failed: %v", err)), nil
	}
	if status != http.StatusOK {
		return mcp.NewToolResultError("dropbox: " + dropboxErrorSummary(data, status)), nil
	}
	created, _ := ExtractText("metadata.path_display", data)
	return mcp.NewToolResultText("Folder created: " + created), nil
}

func (d *Dropbox) handleAccountInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, status, err := d.call(ctx, "/2/users/get_current_account", nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dropbox call failed: %v", err)), nil
	}
	if status != http.StatusOK {
		return mcp.NewToolResultError("dropbox: " + dropboxErrorSummary(data, status)), nil
	}
	summary, err := ExtractText("join(' ', [name.display_name, email])", data)
	if err != nil || summary == "" {
		summary, _ = ExtractText("", data)
	}
	return mcp.NewToolResultText(summary), nil
}

// normalizeDropboxPath maps the human root spellings to the API's "" and
// makes sure everything else is slash-prefixed.
func normalizeDropboxPath(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

func dropboxErrorSummary(data map[string]any, status int) string {
	if summary, ok := data["error_summary"].(string); ok {
		return summary
	}
	return fmt.Sprintf("unexpected status %d", status)
}
