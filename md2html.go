package docsmith

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// newGoldmark builds a goldmark instance for the given options. Strict mode
// means pure CommonMark: no GFM extensions and no syntax highlighting.
// Raw HTML passthrough is always on; sanitization is the opt-in safety
// layer, and batch page-break markers depend on it.
func newGoldmark(opts *MarkdownOptions) goldmark.Markdown {
	rendererOpts := []renderer.Option{
		html.WithXHTML(),
		html.WithUnsafe(),
	}
	if opts.Breaks {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}

	builders := []goldmark.Option{
		goldmark.WithRendererOptions(rendererOpts...),
	}

	if !opts.Strict && opts.GFM {
		builders = append(builders, goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes instead of inline styles
				),
			),
		))
	}

	return goldmark.New(builders...)
}

// ConvertMarkdown converts Markdown text to an HTML fragment, optionally
// passing it through the sanitizer. A nil opts means defaults (GFM on,
// breaks off, strict off, sanitize off).
//
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (s *Service) ConvertMarkdown(ctx context.Context, markdown string, opts *MarkdownOptions) (*HTMLResult, error) {
	if markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if opts == nil {
		opts = DefaultMarkdownOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := newGoldmark(opts).Convert([]byte(markdown), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	var htmlContent string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return nil, r.err
		}
		htmlContent = r.html
	}

	sanitized := false
	if opts.Sanitize {
		clean, err := sanitizeHTML(htmlContent, opts.Policy)
		if err != nil {
			return nil, err
		}
		htmlContent = clean
		sanitized = true
	}

	return &HTMLResult{
		HTML: htmlContent,
		Meta: Metadata{
			OriginalLength: len(markdown),
			HTMLLength:     len(htmlContent),
			Sanitized:      sanitized,
		},
	}, nil
}
