package docsmith

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/alnah/go-docsmith/internal/docxml"
)

// docxEmitter abstracts DOCX byte production to enable testing with fakes.
// Only geometry knobs cross this boundary; document metadata travels inside
// the HTML head.
type docxEmitter interface {
	Emit(htmlContent string, geom docxml.Geometry) ([]byte, error)
}

// docxmlEmitter is the production emitter backed by internal/docxml.
type docxmlEmitter struct{}

var _ docxEmitter = docxmlEmitter{}

func (docxmlEmitter) Emit(htmlContent string, geom docxml.Geometry) ([]byte, error) {
	return docxml.Convert(htmlContent, geom)
}

// ConvertHTMLToDocx converts HTML content to a DOCX byte buffer. When any
// metadata option is set, matching elements are injected into the document
// head before emission; the emitter reads them back from there.
func (s *Service) ConvertHTMLToDocx(ctx context.Context, htmlContent string, opts *DocxOptions) (*DocxResult, error) {
	if htmlContent == "" {
		return nil, ErrEmptyHTML
	}
	if opts == nil {
		opts = DefaultDocxOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.HasMetadata() {
		htmlContent = injectHeadMetadata(htmlContent, opts)
	}

	geom := docxml.Geometry{
		Landscape:    strings.EqualFold(opts.Orientation, OrientationLandscape),
		MarginTop:    opts.MarginTop,
		MarginRight:  opts.MarginRight,
		MarginBottom: opts.MarginBottom,
		MarginLeft:   opts.MarginLeft,
	}

	data, err := s.emitter.Emit(htmlContent, geom)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocxConversion, err)
	}
	return &DocxResult{Data: data, Size: len(data)}, nil
}

// injectHeadMetadata inserts title/meta elements into the HTML head.
// Contract: content with neither an <html> nor a <head> marker is wrapped
// in a minimal shell; content with a literal <head> tag gets the metadata
// inserted immediately after it. The match is position- and case-sensitive,
// so oddly-cased or malformed markup may not receive metadata.
func injectHeadMetadata(htmlContent string, opts *DocxOptions) string {
	meta := buildMetaElements(opts)

	if !strings.Contains(htmlContent, "<html") && !strings.Contains(htmlContent, "<head") {
		return "<!DOCTYPE html>\n<html>\n<head>\n" + meta + "</head>\n<body>\n" + htmlContent + "\n</body>\n</html>"
	}

	if idx := strings.Index(htmlContent, "<head>"); idx != -1 {
		insert := idx + len("<head>")
		return htmlContent[:insert] + "\n" + meta + htmlContent[insert:]
	}

	return htmlContent
}

// buildMetaElements renders the metadata elements for the document head.
func buildMetaElements(opts *DocxOptions) string {
	var b strings.Builder
	if opts.Title != "" {
		b.WriteString("<title>" + html.EscapeString(opts.Title) + "</title>\n")
	}
	for _, m := range []struct {
		name  string
		value string
	}{
		{"subject", opts.Subject},
		{"author", opts.Creator},
		{"keywords", opts.Keywords},
		{"description", opts.Description},
	} {
		if m.value == "" {
			continue
		}
		b.WriteString(`<meta name="` + m.name + `" content="` + html.EscapeString(m.value) + `">` + "\n")
	}
	return b.String()
}
