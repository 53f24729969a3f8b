package docsmith

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Paper format constants for PDF output.
const (
	FormatA0      = "a0"
	FormatA1      = "a1"
	FormatA2      = "a2"
	FormatA3      = "a3"
	FormatA4      = "a4"
	FormatLetter  = "letter"
	FormatLegal   = "legal"
	FormatTabloid = "tabloid"
)

// Orientation constants for DOCX output.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// PDF scale bounds.
const (
	MinScale     = 0.1
	MaxScale     = 2.0
	DefaultScale = 1.0
)

// DefaultPDFMargin is applied to each page edge unless overridden.
const DefaultPDFMargin = "1cm"

// DOCX margins are expressed in twips (1/1440 inch).
const (
	TwipsPerInch           = 1440
	DefaultDocxMarginTwips = TwipsPerInch
	MaxDocxMarginTwips     = 10 * TwipsPerInch
)

// DefaultTitle is used when a full-document wrap has no explicit title.
const DefaultTitle = "Document"

// loadTimeout bounds the content-load/navigation step of PDF rendering.
// All other pipeline steps are unbounded by design.
const loadTimeout = 30 * time.Second

// paperSize holds page dimensions in inches.
type paperSize struct {
	width  float64
	height float64
}

// paperSizes maps paper formats to their portrait dimensions in inches.
var paperSizes = map[string]paperSize{
	FormatA0:      {33.1, 46.8},
	FormatA1:      {23.4, 33.1},
	FormatA2:      {16.5, 23.4},
	FormatA3:      {11.7, 16.5},
	FormatA4:      {8.27, 11.7},
	FormatLetter:  {8.5, 11},
	FormatLegal:   {8.5, 14},
	FormatTabloid: {11, 17},
}

// MarkdownOptions configures the Markdown to HTML stage.
type MarkdownOptions struct {
	GFM      bool            // GitHub-flavored extensions (tables, strikethrough, autolinks, task lists)
	Breaks   bool            // Treat single newlines as <br>
	Strict   bool            // Pure CommonMark: disables GFM and syntax highlighting
	Sanitize bool            // Pass output through the HTML sanitizer
	Policy   *SanitizePolicy // Sanitizer policy fragment (nil = built-in policy)
}

// DefaultMarkdownOptions returns markdown options with default values.
func DefaultMarkdownOptions() *MarkdownOptions {
	return &MarkdownOptions{GFM: true}
}

// Validate checks markdown options. Returns nil if m is nil (nil means defaults).
func (m *MarkdownOptions) Validate() error {
	if m == nil || m.Policy == nil {
		return nil
	}
	for _, pattern := range m.Policy.AllowedClasses {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("%w: allowed_classes pattern %q does not compile", ErrInvalidOptions, pattern)
		}
	}
	return nil
}

// SanitizePolicy is an allow-list applied to untrusted HTML. Each non-nil
// field replaces the corresponding built-in list wholesale; fields left nil
// keep the defaults (shallow merge, not per-tag).
type SanitizePolicy struct {
	AllowedTags       []string            // Permitted element names
	AllowedAttributes map[string][]string // Attribute names per tag; "*" applies globally
	AllowedSchemes    []string            // Permitted URL schemes
	AllowedClasses    []string            // Regular expressions for permitted class values
}

// WrapOptions configures full-document wrapping of an HTML fragment.
type WrapOptions struct {
	FullDocument bool   // Wrap the fragment in a complete document shell
	Title        string // Document title (default "Document")
	CSS          string // Caller CSS, appended after the built-in stylesheet
}

// PDFOptions configures PDF page geometry and rendering.
type PDFOptions struct {
	Format          string  // Paper format: a0-a4, letter, legal, tabloid
	MarginTop       string  // CSS length, e.g. "1cm", "0.5in"
	MarginRight     string
	MarginBottom    string
	MarginLeft      string
	Landscape       bool
	PrintBackground bool    // Include background graphics
	Scale           float64 // Render scale, 0.1 to 2.0
	HeaderTemplate  string  // Chrome header template HTML
	FooterTemplate  string  // Chrome footer template HTML
}

// DefaultPDFOptions returns PDF options with default values: A4 portrait,
// 1 cm margins, background graphics on, scale 1.0.
func DefaultPDFOptions() *PDFOptions {
	return &PDFOptions{
		Format:          FormatA4,
		MarginTop:       DefaultPDFMargin,
		MarginRight:     DefaultPDFMargin,
		MarginBottom:    DefaultPDFMargin,
		MarginLeft:      DefaultPDFMargin,
		PrintBackground: true,
		Scale:           DefaultScale,
	}
}

// Validate checks PDF options. Returns nil if p is nil (nil means defaults).
func (p *PDFOptions) Validate() error {
	if p == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(p.Format)]; !ok {
		return fmt.Errorf("%w: format %q (must be one of a0, a1, a2, a3, a4, letter, legal, tabloid)", ErrInvalidOptions, p.Format)
	}
	for _, m := range []struct {
		field string
		value string
	}{
		{"margin_top", p.MarginTop},
		{"margin_right", p.MarginRight},
		{"margin_bottom", p.MarginBottom},
		{"margin_left", p.MarginLeft},
	} {
		if _, err := parseCSSLength(m.value); err != nil {
			return fmt.Errorf("%w: %s %q (%v)", ErrInvalidOptions, m.field, m.value, err)
		}
	}
	if p.Scale < MinScale || p.Scale > MaxScale {
		return fmt.Errorf("%w: scale %.2f (must be between %.1f and %.1f)", ErrInvalidOptions, p.Scale, MinScale, MaxScale)
	}
	return nil
}

// paper returns the paper dimensions in inches, swapped for landscape.
func (p *PDFOptions) paper() (width, height float64) {
	size := paperSizes[strings.ToLower(p.Format)]
	if p.Landscape {
		return size.height, size.width
	}
	return size.width, size.height
}

// DocxOptions configures DOCX page geometry and document metadata.
type DocxOptions struct {
	Orientation  string // "portrait" or "landscape"
	MarginTop    int    // Twips (1440 = 1 inch)
	MarginRight  int
	MarginBottom int
	MarginLeft   int
	Title        string
	Subject      string
	Creator      string
	Keywords     string
	Description  string
}

// DefaultDocxOptions returns DOCX options with default values: portrait
// orientation, 1 inch margins on every edge.
func DefaultDocxOptions() *DocxOptions {
	return &DocxOptions{
		Orientation:  OrientationPortrait,
		MarginTop:    DefaultDocxMarginTwips,
		MarginRight:  DefaultDocxMarginTwips,
		MarginBottom: DefaultDocxMarginTwips,
		MarginLeft:   DefaultDocxMarginTwips,
	}
}

// Validate checks DOCX options. Returns nil if d is nil (nil means defaults).
func (d *DocxOptions) Validate() error {
	if d == nil {
		return nil
	}
	switch strings.ToLower(d.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: orientation %q (must be portrait or landscape)", ErrInvalidOptions, d.Orientation)
	}
	for _, m := range []struct {
		field string
		value int
	}{
		{"margin_top", d.MarginTop},
		{"margin_right", d.MarginRight},
		{"margin_bottom", d.MarginBottom},
		{"margin_left", d.MarginLeft},
	} {
		if m.value < 0 || m.value > MaxDocxMarginTwips {
			return fmt.Errorf("%w: %s %d twips (must be between 0 and %d)", ErrInvalidOptions, m.field, m.value, MaxDocxMarginTwips)
		}
	}
	return nil
}

// HasMetadata reports whether any document metadata field is set.
func (d *DocxOptions) HasMetadata() bool {
	if d == nil {
		return false
	}
	return d.Title != "" || d.Subject != "" || d.Creator != "" || d.Keywords != "" || d.Description != ""
}

// MarkdownPDFOptions configures the Markdown to PDF pipeline. The
// full-document wrap defaults to on with title "Document".
type MarkdownPDFOptions struct {
	Markdown MarkdownOptions
	Wrap     WrapOptions
	PDF      PDFOptions
}

// DefaultMarkdownPDFOptions returns pipeline options with default values.
func DefaultMarkdownPDFOptions() *MarkdownPDFOptions {
	return &MarkdownPDFOptions{
		Markdown: *DefaultMarkdownOptions(),
		Wrap:     WrapOptions{FullDocument: true, Title: DefaultTitle},
		PDF:      *DefaultPDFOptions(),
	}
}

// Validate checks pipeline options. Returns nil if o is nil.
func (o *MarkdownPDFOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := o.Markdown.Validate(); err != nil {
		return err
	}
	return o.PDF.Validate()
}

// MarkdownDocxOptions configures the Markdown to DOCX pipeline. The
// full-document wrap defaults to on, matching the PDF path even though the
// exposed flag name differs (wrap_document vs full_document).
type MarkdownDocxOptions struct {
	Markdown MarkdownOptions
	Wrap     WrapOptions
	Docx     DocxOptions
}

// DefaultMarkdownDocxOptions returns pipeline options with default values.
func DefaultMarkdownDocxOptions() *MarkdownDocxOptions {
	return &MarkdownDocxOptions{
		Markdown: *DefaultMarkdownOptions(),
		Wrap:     WrapOptions{FullDocument: true, Title: DefaultTitle},
		Docx:     *DefaultDocxOptions(),
	}
}

// Validate checks pipeline options. Returns nil if o is nil.
func (o *MarkdownDocxOptions) Validate() error {
	if o == nil {
		return nil
	}
	if err := o.Markdown.Validate(); err != nil {
		return err
	}
	return o.Docx.Validate()
}

// parseCSSLength converts a CSS length string ("1cm", "0.5in", "10mm",
// "96px") to inches. The unit suffix is required.
func parseCSSLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("length cannot be empty")
	}

	var unit string
	var divisor float64
	switch {
	case strings.HasSuffix(s, "cm"):
		unit, divisor = "cm", 2.54
	case strings.HasSuffix(s, "mm"):
		unit, divisor = "mm", 25.4
	case strings.HasSuffix(s, "in"):
		unit, divisor = "in", 1
	case strings.HasSuffix(s, "px"):
		unit, divisor = "px", 96
	default:
		return 0, fmt.Errorf("length must end in cm, mm, in, or px")
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, unit)), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value")
	}
	if value < 0 {
		return 0, fmt.Errorf("length cannot be negative")
	}
	return value / divisor, nil
}
