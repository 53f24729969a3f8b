// Package tools defines the contract every exposed MCP tool implements.
package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// Tool is implemented by each exposed operation.
type Tool interface {
	// Definition returns the tool's definition for MCP registration. The
	// declared input schema is documentation for clients; enforcement
	// happens in option parsing after dispatch.
	Definition() mcp.Tool

	// Execute runs the tool. Failures are reported as error-flagged tool
	// results, not returned errors, so a bad request never takes down the
	// server or other in-flight requests.
	Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error)
}
