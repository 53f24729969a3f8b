// Package server assembles the MCP server and its stdio and HTTP transports.
package server

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alnah/go-docsmith/internal/registry"
)

const (
	Name    = "docsmith"
	Version = "0.3.0"
)

// configDescriptor is the payload served by the config://server resource.
type configDescriptor struct {
	Name        string              `json:"name"`
	Version     string              `json:"version"`
	Tools       []string            `json:"tools"`
	Conversions map[string][]string `json:"conversions"`
}

// NewMCPServer builds an MCP server exposing every enabled registered tool
// plus the config://server resource.
func NewMCPServer() *mcpserver.MCPServer {
	srv := mcpserver.NewMCPServer(Name, Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithResourceCapabilities(false, true),
	)

	logger := registry.GetLogger()
	for name, tool := range registry.GetTools() {
		name := name
		srv.AddTool(tool.Definition(), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			current, ok := registry.GetTool(name)
			if !ok {
				return mcp.NewToolResultError("tool not found: " + name), nil
			}
			args, ok := request.Params.Arguments.(map[string]any)
			if !ok {
				if request.Params.Arguments != nil {
					return mcp.NewToolResultError("invalid arguments: expected an object"), nil
				}
				args = map[string]any{}
			}
			return current.Execute(ctx, logger, args)
		})
	}

	srv.AddResource(mcp.NewResource("config://server", "Server configuration",
		mcp.WithResourceDescription("Server identity, version and supported conversion matrix"),
		mcp.WithMIMEType("application/json"),
	), serveConfig)

	return srv
}

func serveConfig(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	payload, err := json.MarshalIndent(configDescriptor{
		Name:    Name,
		Version: Version,
		Tools:   registry.ToolNames(),
		Conversions: map[string][]string{
			"markdown": {"html", "pdf", "docx"},
			"html":     {"pdf", "docx"},
			"url":      {"pdf"},
		},
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      request.Params.URI,
		MIMEType: "application/json",
		Text:     string(payload),
	}}, nil
}

// ServeStdio runs the MCP server over stdin/stdout until the client hangs
// up. Nothing else may write to stdout while it runs.
func ServeStdio() error {
	return mcpserver.ServeStdio(NewMCPServer())
}
