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

type htmlToPDFTool struct{}
type urlToPDFTool struct{}
type markdownToPDFTool struct{}
type fileToPDFTool struct{}

var (
	_ tools.Tool = (*htmlToPDFTool)(nil)
	_ tools.Tool = (*urlToPDFTool)(nil)
	_ tools.Tool = (*markdownToPDFTool)(nil)
	_ tools.Tool = (*fileToPDFTool)(nil)
)

func init() {
	registry.Register(&htmlToPDFTool{})
	registry.Register(&urlToPDFTool{})
	registry.Register(&markdownToPDFTool{})
	registry.Register(&fileToPDFTool{})
}

const pdfOptionsDoc = "PDF geometry: format (a0-a4, letter, legal, tabloid), " +
	"margin_top/margin_right/margin_bottom/margin_left (CSS lengths, e.g. \"1cm\"), " +
	"landscape, print_background, scale (0.1-2.0), header_template, footer_template"

func (t *htmlToPDFTool) Definition() mcp.Tool {
	return mcp.NewTool("html_to_pdf",
		mcp.WithDescription("Convert HTML content to a PDF document"),
		mcp.WithString("html", mcp.Required(), mcp.Description("HTML content to render")),
		mcp.WithString("output_path", mcp.Description("File path to write the PDF to; when omitted the PDF is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description(pdfOptionsDoc)),
	)
}

func (t *htmlToPDFTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "html_to_pdf").Debug("executing")
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	opts, err := docsmith.ParsePDFOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}
	res, err := svc.ConvertHTMLToPDF(ctx, stringArg(args, "html"), opts)
	if err != nil {
		return errResult(err), nil
	}
	return deliverBinary(args, res.Data, mimePDF)
}

func (t *urlToPDFTool) Definition() mcp.Tool {
	return mcp.NewTool("url_to_pdf",
		mcp.WithDescription("Render a web page to a PDF document"),
		mcp.WithString("url", mcp.Required(), mcp.Description("Page URL, http or https")),
		mcp.WithString("output_path", mcp.Description("File path to write the PDF to; when omitted the PDF is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description(pdfOptionsDoc)),
	)
}

func (t *urlToPDFTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "url_to_pdf").Debug("executing")
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	opts, err := docsmith.ParsePDFOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}
	res, err := svc.ConvertURLToPDF(ctx, stringArg(args, "url"), opts)
	if err != nil {
		return errResult(err), nil
	}
	return deliverBinary(args, res.Data, mimePDF)
}

func (t *markdownToPDFTool) Definition() mcp.Tool {
	return mcp.NewTool("markdown_to_pdf",
		mcp.WithDescription("Convert Markdown to a PDF document, either a single document or an ordered list of sections separated by page breaks"),
		mcp.WithString("markdown", mcp.Description("Markdown content; required unless sections is given")),
		mcp.WithArray("sections", mcp.Description("Ordered sections [{content, title?}]; each starts on a new page, titled sections get an H1 heading")),
		mcp.WithString("output_path", mcp.Description("File path to write the PDF to; when omitted the PDF is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description("Markdown options (gfm, breaks, strict, sanitize, sanitize_policy), wrap options (full_document, title, css) and "+pdfOptionsDoc)),
	)
}

func (t *markdownToPDFTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "markdown_to_pdf").Debug("executing")
	optMap, bad := optionsArg(args)
	if bad != nil {
		return bad, nil
	}
	opts, err := docsmith.ParseMarkdownPDFOptions(optMap)
	if err != nil {
		return errResult(err), nil
	}

	sections, given, bad := sectionsArg(args)
	if bad != nil {
		return bad, nil
	}

	var res *docsmith.PipelineResult
	if given {
		res, err = svc.ConvertMarkdownSectionsToPDF(ctx, sections, opts)
	} else {
		res, err = svc.ConvertMarkdownToPDF(ctx, stringArg(args, "markdown"), opts)
	}
	if err != nil {
		return errResult(err), nil
	}
	return deliverBinary(args, res.Data, mimePDF)
}

func (t *fileToPDFTool) Definition() mcp.Tool {
	return mcp.NewTool("file_to_pdf",
		mcp.WithDescription("Convert a Markdown or HTML file to a PDF document, chosen by file extension"),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to a .md, .markdown, .html or .htm file")),
		mcp.WithString("output_path", mcp.Description("File path to write the PDF to; when omitted the PDF is returned inline as a base64 data URI")),
		mcp.WithObject("options", mcp.Description(pdfOptionsDoc+"; Markdown and wrap options apply to Markdown inputs")),
	)
}

func (t *fileToPDFTool) Execute(ctx context.Context, logger *logrus.Logger, args map[string]any) (*mcp.CallToolResult, error) {
	logger.WithField("tool", "file_to_pdf").Debug("executing")
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
		opts, err := docsmith.ParseMarkdownPDFOptions(optMap)
		if err != nil {
			return errResult(err), nil
		}
		res, err := svc.ConvertMarkdownToPDF(ctx, content, opts)
		if err != nil {
			return errResult(err), nil
		}
		return deliverBinary(args, res.Data, mimePDF)
	case ".html", ".htm":
		opts, err := docsmith.ParsePDFOptions(optMap)
		if err != nil {
			return errResult(err), nil
		}
		res, err := svc.ConvertHTMLToPDF(ctx, content, opts)
		if err != nil {
			return errResult(err), nil
		}
		return deliverBinary(args, res.Data, mimePDF)
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported input extension %q, want .md, .markdown, .html or .htm", ext)), nil
	}
}
