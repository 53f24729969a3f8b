package docsmith

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-docsmith/internal/fileutil"
)

// pdfRenderer abstracts PDF rendering to enable testing without a browser.
type pdfRenderer interface {
	RenderHTML(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error)
	RenderURL(ctx context.Context, url string, opts *PDFOptions) ([]byte, error)
}

// Compile-time interface check
var _ pdfRenderer = (*rodRenderer)(nil)

// rodRenderer renders PDFs with headless Chrome via go-rod. Every call
// launches a fresh browser and tears it down on all exit paths: isolation
// over throughput, so one render's crash cannot corrupt another call.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	timeout time.Duration
}

// RenderHTML writes the HTML to a temp file and renders it via file://.
func (r *rodRenderer) RenderHTML(ctx context.Context, htmlContent string, opts *PDFOptions) ([]byte, error) {
	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return r.render(ctx, "file://"+tmpPath, opts)
}

// RenderURL navigates to the URL and renders the loaded page.
func (r *rodRenderer) RenderURL(ctx context.Context, url string, opts *PDFOptions) ([]byte, error) {
	return r.render(ctx, url, opts)
}

// render launches an isolated browser, loads target, waits for the load to
// settle within the timeout, and prints to PDF.
func (r *rodRenderer) render(ctx context.Context, target string, opts *PDFOptions) ([]byte, error) {
	// Check context before paying browser startup cost
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	defer func() { _ = browser.Close() }()

	page, err := browser.Page(proto.TargetCreateTarget{URL: target})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Tighten the load timeout if the context deadline is nearer
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			if remaining <= 0 {
				return nil, context.DeadlineExceeded
			}
			timeout = remaining
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(buildPrintOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions constructs proto.PagePrintToPDF from validated options.
func buildPrintOptions(opts *PDFOptions) *proto.PagePrintToPDF {
	if opts == nil {
		opts = DefaultPDFOptions()
	}

	width, height := opts.paper()

	p := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginInches(opts.MarginTop)),
		MarginRight:     floatPtr(marginInches(opts.MarginRight)),
		MarginBottom:    floatPtr(marginInches(opts.MarginBottom)),
		MarginLeft:      floatPtr(marginInches(opts.MarginLeft)),
		Landscape:       opts.Landscape,
		PrintBackground: opts.PrintBackground,
	}

	if opts.Scale != 0 {
		p.Scale = floatPtr(opts.Scale)
	}

	if opts.HeaderTemplate != "" || opts.FooterTemplate != "" {
		p.DisplayHeaderFooter = true
		p.HeaderTemplate = orEmptySpan(opts.HeaderTemplate)
		p.FooterTemplate = orEmptySpan(opts.FooterTemplate)
	}

	return p
}

// marginInches converts a validated CSS length to inches, falling back to
// the default margin for unset values.
func marginInches(s string) float64 {
	if s == "" {
		s = DefaultPDFMargin
	}
	v, err := parseCSSLength(s)
	if err != nil {
		v, _ = parseCSSLength(DefaultPDFMargin)
	}
	return v
}

// orEmptySpan substitutes Chrome's minimal no-op template for empty
// header/footer slots so only the populated one renders content.
func orEmptySpan(tpl string) string {
	if tpl == "" {
		return "<span></span>"
	}
	return tpl
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// ConvertHTMLToPDF renders HTML content to a PDF byte buffer using an
// isolated headless browser. A nil opts means defaults (A4 portrait, 1 cm
// margins, background graphics on).
func (s *Service) ConvertHTMLToPDF(ctx context.Context, htmlContent string, opts *PDFOptions) (*PDFResult, error) {
	if htmlContent == "" {
		return nil, ErrEmptyHTML
	}
	if opts == nil {
		opts = DefaultPDFOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderHTML(ctx, htmlContent, opts)
	if err != nil {
		return nil, err
	}
	return &PDFResult{Data: data, Size: len(data)}, nil
}

// ConvertURLToPDF navigates to a URL and renders the loaded page to PDF.
func (s *Service) ConvertURLToPDF(ctx context.Context, url string, opts *PDFOptions) (*PDFResult, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !fileutil.IsURL(url) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	if opts == nil {
		opts = DefaultPDFOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data, err := s.renderer.RenderURL(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	return &PDFResult{Data: data, Size: len(data)}, nil
}
