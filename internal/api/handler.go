package api

import (
	"bytes"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/server"

	"mcphub/internal/adapter"
)

const MCPEndpoint = "/mcp"

// Handler wires the client-bound adapters into one MCP server and exposes
// it over streamable HTTP next to the probe endpoints.
type Handler struct {
	clientID string
	version  string
	adapters []adapter.Adapter
}

func NewHandler(clientID, version string, adapters []adapter.Adapter) *Handler {
	return &Handler{clientID: clientID, version: version, adapters: adapters}
}

func (h *Handler) Router() http.Handler {
	mcpServer := server.NewMCPServer("mcphub", h.version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, a := range h.adapters {
		a.Register(mcpServer)
	}
	streamable := server.NewStreamableHTTPServer(mcpServer,
		server.WithEndpointPath(MCPEndpoint),
	)

	mux := http.NewServeMux()
	mux.Handle(MCPEndpoint, streamable)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/info", h.handleInfo)
	return mux
}

func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	services := make([]string, 0, len(h.adapters))
	for _, a := range h.adapters {
		services = append(services, a.Name())
	}
	if err := writeJSON(w, http.StatusOK, map[string]any{
		"client":   h.clientID,
		"version":  h.version,
		"services": services,
	}); err != nil {
		http.Error(w, "failed to write response", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with the given status code. Encoding
// happens into a buffer first so a marshal failure returns before any
// header is written and the caller can still answer with a 500.
func writeJSON(w http.ResponseWriter, code int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err := w.Write(buf.Bytes())
	return err
}
