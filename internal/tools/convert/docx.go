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

type htmlToDocxTool struct{}
type markdownToDocxTool struct{}
type fileToDocxTool struct{}

var (
	_ tools.Tool = (*htmlToDocxTool)(nil)
	_ tools.Tool = (*markdownToDocxTool)(nil)
	_ tools.Tool = (*fileToDocxTool)(nil)
)

func init() {
	registry.Register(&htmlToDocxTool{})
	registry.Register(&markdownToDocxTool{})
	registry.Register(&fileToDocxTool{})
}

const docxOptionsDoc = "DOCX geometry and metadata: orientation (portrait, landscape), " +
	"margin_top/margin_right/margin_bottom/margin_left (twips, 1440 = 1 inch), " +
	"title, subject, creator, keywords, description"

func (t *htmlToDocxTool) Definition() mcp.Tool {
	return mcp.NewTool("html_to_docx",
		mcp.WithDescription("Convert HTML content to a DOCX document"),
		mcp.WithString("html", mcp.Required(), mcp.Description("HTML content to convert")),
		mcp.WithString("output_path", mcp.Description("File path to write the DOCX to; when omitted the DOCX is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description(docxOptionsDoc)),
	)
}

func (t *htmlToDocxTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "html_to_docx").Debug("executing")
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	opts, err := docsmith.ParseDocxOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}
	res, err := svc.ConvertHTMLToDocx(ctx, stringArg(args, "html"), opts)
	if err != nil {
		return errResult(err), nil
	}
	return deliverBinary(args, res.Data, mimeDocx)
}

func (t *markdownToDocxTool) Definition() mcp.Tool {
	return mcp.NewTool("markdown_to_docx",
		mcp.WithDescription("Convert Markdown to a DOCX document"),
		mcp.WithString("markdown", mcp.Required(), mcp.Description("Markdown content to convert")),
		mcp.WithString("output_path", mcp.Description("File path to write the DOCX to; when omitted the DOCX is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description("Markdown options (gfm, breaks, strict, sanitize, sanitize_policy), wrap_document, css and "+docxOptionsDoc)),
	)
}

func (t *markdownToDocxTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "markdown_to_docx").Debug("executing")
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	opts, err := docsmith.ParseMarkdownDocxOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}
	res, err := svc.ConvertMarkdownToDocx(ctx, stringArg(args, "markdown"), opts)
	if err != nil {
		return errResult(err), nil
	}
	return deliverBinary(args, res.Data, mimeDocx)
}

func (t *fileToDocxTool) Definition() mcp.Tool {
	return mcp.NewTool("file_to_docx",
		mcp.WithDescription("Convert a Markdown or HTML file to a DOCX document, chosen by file extension"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to a .md, .markdown, .html or .htm file")),
		mcp.WithString("output_path", mcp.Description("File path to write the DOCX to; when omitted the DOCX is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description(docxOptionsDoc+"; Markdown and wrap options apply to Markdown inputs")),
	)
}

func (t *fileToDocxTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "file_to_docx").Debug("executing")
	content, bad := readInputFile(stringArg(args, "file_path"))
	if bad != nil {
		return bad, nil
	}
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}

	switch ext := strings.ToLower(filepath.Ext(stringArg(args, "file_path"))); ext {
	case ".md", ".markdown":
		opts, err := docsmith.ParseMarkdownDocxOptions(optMap)
		if err != nil {
			return errResult(err), nil
		}
		res, err := svc.ConvertMarkdownToDocx(ctx, content, opts)
		if err != nil {
			return errResult(err), nil
		}
		return deliverBinary(args, res.Data, mimeDocx)
	case ".html", ".htm":
		opts, err := docsmith.ParseDocxOptions(optMap)
		if err != nil {
			return errResult(err), nil
		}
		res, err := svc.ConvertHTMLToDocx(ctx, content, opts)
		if err != nil {
			return errResult(err), nil
		}
		return deliverBinary(args, res.Data, mimeDocx)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported input extension %q, want .md, .markdown, .html or .htm", ext)), nil
	}
}
