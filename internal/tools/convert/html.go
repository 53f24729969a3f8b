package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"

	docsmith "github.com/alnah/go-docsmith"
	"github.com/alnah/go-docsmith/internal/registry"
	"github.com/alnah/go-docsmith/internal/tools"
)

type markdownToHTMLTool struct{}
type fileToHTMLTool struct{}

var (
	_ tools.Tool = (*markdownToHTMLTool)(nil)
	_ tools.Tool = (*fileToHTMLTool)(nil)
)

func init() {
	registry.Register(&markdownToHTMLTool{})
	registry.Register(&fileToHTMLTool{})
}

const htmlOptionsDoc = "Markdown options: gfm, breaks, strict, sanitize, " +
	"sanitize_policy (allowed_tags, allowed_attributes, allowed_schemes, allowed_classes); " +
	"wrap options: full_document, title, css"

// convertMarkdownToHTML runs the Markdown stage and applies the optional
// full-document wrap, keeping the reported HTML length in step with the
// final content.
func convertMarkdownToHTML(ctx context.Context, markdown string, md *docsmith.MarkdownOptions, wrap *docsmith.WrapOptions) (*docsmith.HTMLResult, error) {
	res, err := svc.ConvertMarkdown(ctx, markdown, md)
	if err != nil {
		return nil, err
	}
	if wrap != nil && wrap.FullDocument {
		res.HTML = docsmith.WrapDocument(res.HTML, wrap)
		res.Meta.HTMLLength = len(res.HTML)
	}
	return res, nil
}

func (t *markdownToHTMLTool) Definition() mcp.Tool {
	return mcp.NewTool("markdown_to_html",
		mcp.WithDescription("Convert Markdown to HTML, as a fragment or a full styled document"),
		mcp.WithString("markdown", mcp.Required(), mcp.Description("Markdown content to convert")),
		mcp.WithString("output_path", mcp.Description("File path to write the HTML to; when omitted the HTML is returned inline with conversion metadata")),
		mcp.WithObject("options", mcp.Description(htmlOptionsDoc)),
	)
}

func (t *markdownToHTMLTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "markdown_to_html").Debug("executing")
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	md, wrap, err := docsmith.ParseMarkdownHTMLOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}
	res, err := convertMarkdownToHTML(ctx, stringArg(args, "markdown"), md, wrap)
	if err != nil {
		return errResult(err), nil
	}
	return deliverHTML(args, res)
}

func (t *fileToHTMLTool) Definition() mcp.Tool {
	return mcp.NewTool("file_to_html",
		mcp.WithDescription("Convert a Markdown file to HTML"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to a .md or .markdown file")),
		mcp.WithString("output_path", mcp.Description("File path to write the HTML to; when omitted the HTML is returned inline with conversion metadata")),
		mcp.WithObject("options", mcp.Description(htmlOptionsDoc)),
	)
}

func (t *fileToHTMLTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "file_to_html").Debug("executing")
	path := stringArg(args, "file_path")
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".md" && ext != ".markdown" {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported input extension %q, want .md or .markdown", ext)), nil
	}
	content, bad := readInputFile(path)
	if bad != nil {
		return bad, nil
	}
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	md, wrap, err := docsmith.ParseMarkdownHTMLOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}
	res, err := convertMarkdownToHTML(ctx, content, md, wrap)
	if err != nil {
		return errResult(err), nil
	}
	return deliverHTML(args, res)
}
