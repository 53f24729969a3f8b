// Package convert exposes the document conversion pipelines as MCP tools.
//
// Every tool reports failures as error-flagged tool results rather than
// returned errors, so a malformed request never crashes the server or a
// sibling request. Binary output is written to output_path when the caller
// supplies one, otherwise returned inline as a base64 data URI.
package convert

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"

	docsmith "github.com/alnah/go-docsmith"
)

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// svc is shared by all tools. The service holds no mutable state, so
// concurrent tool calls are safe.
var svc = docsmith.New()

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

// optionsArg extracts the optional options object. A present but
// non-object value is a caller error.
func optionsArg(args map[string]any) (map[string]any, *mcp.CallToolResult) {
	raw, ok := args["options"]
	if !ok || raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, mcp.NewToolResultError("options must be an object")
	}
	return m, nil
}

// sectionsArg extracts the optional sections array for batch conversion.
// The second return reports whether the argument was present at all.
func sectionsArg(args map[string]any) ([]docsmith.Section, bool, *mcp.CallToolResult) {
	raw, ok := args["sections"]
	if !ok || raw == nil {
		return nil, false, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, true, mcp.NewToolResultError("sections must be an array of objects")
	}
	sections := make([]docsmith.Section, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, true, mcp.NewToolResultError(fmt.Sprintf("sections[%d] must be an object", i))
		}
		content, _ := m["content"].(string)
		title, _ := m["title"].(string)
		sections = append(sections, docsmith.Section{Content: content, Title: title})
	}
	return sections, true, nil
}

func errResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

func readInputFile(path string) (string, *mcp.CallToolResult) {
	if path == "" {
		return "", mcp.NewToolResultError("file_path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("reading input file: %v", err))
	}
	return string(data), nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	return nil
}

// deliverBinary routes binary output: to the filesystem when output_path
// is set, inline as a data URI otherwise.
func deliverBinary(args map[string]any, data []byte, mimeType string) (*mcp.CallToolResult, error) {
	if out := stringArg(args, "output_path"); out != "" {
		if err := writeOutput(out, data); err != nil {
			return errResult(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("wrote %s (%d bytes)", out, len(data))), nil
	}
	uri := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
	return mcp.NewToolResultText(uri), nil
}

type htmlPayload struct {
	HTML     string            `json:"html"`
	Metadata docsmith.Metadata `json:"metadata"`
}

// deliverHTML returns HTML output as a JSON payload carrying the conversion
// metadata, or writes the bare HTML to output_path when given.
func deliverHTML(args map[string]any, res *docsmith.HTMLResult) (*mcp.CallToolResult, error) {
	if out := stringArg(args, "output_path"); out != "" {
		if err := writeOutput(out, []byte(res.HTML)); err != nil {
			return errResult(err), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("wrote %s (%d bytes)", out, len(res.HTML))), nil
	}
	payload, err := json.Marshal(htmlPayload{HTML: res.HTML, Metadata: res.Meta})
	if err != nil {
		return errResult(err), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}
