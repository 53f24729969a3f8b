package docsmith

import (
	"fmt"
	"math"
	"sort"
)

// Option key constants shared between tool schemas and parsing so a typo in
// one place is caught by the other.
const (
	optGFM             = "gfm"
	optBreaks          = "breaks"
	optStrict          = "strict"
	optSanitize        = "sanitize"
	optSanitizePolicy  = "sanitize_policy"
	optFullDocument    = "full_document"
	optWrapDocument    = "wrap_document"
	optTitle           = "title"
	optCSS             = "css"
	optFormat          = "format"
	optMarginTop       = "margin_top"
	optMarginRight     = "margin_right"
	optMarginBottom    = "margin_bottom"
	optMarginLeft      = "margin_left"
	optLandscape       = "landscape"
	optPrintBackground = "print_background"
	optScale           = "scale"
	optHeaderTemplate  = "header_template"
	optFooterTemplate  = "footer_template"
	optOrientation     = "orientation"
	optSubject         = "subject"
	optCreator         = "creator"
	optKeywords        = "keywords"
	optDescription     = "description"
)

// optionReader extracts typed values from a loosely-typed option map and
// tracks which keys were consumed so leftovers can be rejected.
type optionReader struct {
	args map[string]any
	seen map[string]struct{}
}

func newOptionReader(args map[string]any) *optionReader {
	return &optionReader{args: args, seen: make(map[string]struct{})}
}

func (r *optionReader) stringOpt(key, def string) (string, error) {
	v, ok := r.args[key]
	if !ok {
		return def, nil
	}
	r.seen[key] = struct{}{}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOptions, key, v)
	}
	return s, nil
}

func (r *optionReader) boolOpt(key string, def bool) (bool, error) {
	v, ok := r.args[key]
	if !ok {
		return def, nil
	}
	r.seen[key] = struct{}{}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrInvalidOptions, key, v)
	}
	return b, nil
}

func (r *optionReader) floatOpt(key string, def float64) (float64, error) {
	v, ok := r.args[key]
	if !ok {
		return def, nil
	}
	r.seen[key] = struct{}{}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number, got %T", ErrInvalidOptions, key, v)
	}
}

func (r *optionReader) intOpt(key string, def int) (int, error) {
	v, ok := r.args[key]
	if !ok {
		return def, nil
	}
	r.seen[key] = struct{}{}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidOptions, key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrInvalidOptions, key, v)
	}
}

func (r *optionReader) mapOpt(key string) (map[string]any, bool, error) {
	v, ok := r.args[key]
	if !ok {
		return nil, false, nil
	}
	r.seen[key] = struct{}{}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s must be an object, got %T", ErrInvalidOptions, key, v)
	}
	return m, true, nil
}

func (r *optionReader) stringSliceOpt(key string) ([]string, error) {
	v, ok := r.args[key]
	if !ok {
		return nil, nil
	}
	r.seen[key] = struct{}{}
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array of strings, got %T", ErrInvalidOptions, key, v)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s must contain only strings, got %T", ErrInvalidOptions, key, item)
		}
		out = append(out, s)
	}
	return out, nil
}

// finish rejects any key that was present but never consumed. Unknown keys
// are an error rather than silently ignored.
func (r *optionReader) finish() error {
	var unknown []string
	for key := range r.args {
		if _, ok := r.seen[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: unknown option %q", ErrInvalidOptions, unknown[0])
}

// readMarkdownOptions consumes markdown-stage keys from r.
func readMarkdownOptions(r *optionReader) (*MarkdownOptions, error) {
	opts := DefaultMarkdownOptions()
	var err error
	if opts.GFM, err = r.boolOpt(optGFM, opts.GFM); err != nil {
		return nil, err
	}
	if opts.Breaks, err = r.boolOpt(optBreaks, opts.Breaks); err != nil {
		return nil, err
	}
	if opts.Strict, err = r.boolOpt(optStrict, opts.Strict); err != nil {
		return nil, err
	}
	if opts.Sanitize, err = r.boolOpt(optSanitize, opts.Sanitize); err != nil {
		return nil, err
	}
	policyMap, ok, err := r.mapOpt(optSanitizePolicy)
	if err != nil {
		return nil, err
	}
	if ok {
		if opts.Policy, err = parseSanitizePolicy(policyMap); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

// parseSanitizePolicy builds a policy fragment from a loosely-typed map.
func parseSanitizePolicy(m map[string]any) (*SanitizePolicy, error) {
	r := newOptionReader(m)
	policy := &SanitizePolicy{}
	var err error
	if policy.AllowedTags, err = r.stringSliceOpt("allowed_tags"); err != nil {
		return nil, err
	}
	if policy.AllowedSchemes, err = r.stringSliceOpt("allowed_schemes"); err != nil {
		return nil, err
	}
	if policy.AllowedClasses, err = r.stringSliceOpt("allowed_classes"); err != nil {
		return nil, err
	}
	attrsMap, ok, err := r.mapOpt("allowed_attributes")
	if err != nil {
		return nil, err
	}
	if ok {
		policy.AllowedAttributes = make(map[string][]string, len(attrsMap))
		for tag, v := range attrsMap {
			raw, ok := v.([]any)
			if !ok {
				return nil, fmt.Errorf("%w: allowed_attributes[%q] must be an array of strings, got %T", ErrInvalidOptions, tag, v)
			}
			attrs := make([]string, 0, len(raw))
			for _, item := range raw {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: allowed_attributes[%q] must contain only strings, got %T", ErrInvalidOptions, tag, item)
				}
				attrs = append(attrs, s)
			}
			policy.AllowedAttributes[tag] = attrs
		}
	}
	if err := r.finish(); err != nil {
		return nil, fmt.Errorf("%w in sanitize_policy", err)
	}
	return policy, nil
}

// readPDFOptions consumes PDF geometry keys from r.
func readPDFOptions(r *optionReader) (*PDFOptions, error) {
	opts := DefaultPDFOptions()
	var err error
	if opts.Format, err = r.stringOpt(optFormat, opts.Format); err != nil {
		return nil, err
	}
	if opts.MarginTop, err = r.stringOpt(optMarginTop, opts.MarginTop); err != nil {
		return nil, err
	}
	if opts.MarginRight, err = r.stringOpt(optMarginRight, opts.MarginRight); err != nil {
		return nil, err
	}
	if opts.MarginBottom, err = r.stringOpt(optMarginBottom, opts.MarginBottom); err != nil {
		return nil, err
	}
	if opts.MarginLeft, err = r.stringOpt(optMarginLeft, opts.MarginLeft); err != nil {
		return nil, err
	}
	if opts.Landscape, err = r.boolOpt(optLandscape, opts.Landscape); err != nil {
		return nil, err
	}
	if opts.PrintBackground, err = r.boolOpt(optPrintBackground, opts.PrintBackground); err != nil {
		return nil, err
	}
	if opts.Scale, err = r.floatOpt(optScale, opts.Scale); err != nil {
		return nil, err
	}
	if opts.HeaderTemplate, err = r.stringOpt(optHeaderTemplate, opts.HeaderTemplate); err != nil {
		return nil, err
	}
	if opts.FooterTemplate, err = r.stringOpt(optFooterTemplate, opts.FooterTemplate); err != nil {
		return nil, err
	}
	return opts, nil
}

// readDocxOptions consumes DOCX geometry and metadata keys from r.
func readDocxOptions(r *optionReader, withTitle bool) (*DocxOptions, error) {
	opts := DefaultDocxOptions()
	var err error
	if opts.Orientation, err = r.stringOpt(optOrientation, opts.Orientation); err != nil {
		return nil, err
	}
	if opts.MarginTop, err = r.intOpt(optMarginTop, opts.MarginTop); err != nil {
		return nil, err
	}
	if opts.MarginRight, err = r.intOpt(optMarginRight, opts.MarginRight); err != nil {
		return nil, err
	}
	if opts.MarginBottom, err = r.intOpt(optMarginBottom, opts.MarginBottom); err != nil {
		return nil, err
	}
	if opts.MarginLeft, err = r.intOpt(optMarginLeft, opts.MarginLeft); err != nil {
		return nil, err
	}
	if withTitle {
		if opts.Title, err = r.stringOpt(optTitle, opts.Title); err != nil {
			return nil, err
		}
	}
	if opts.Subject, err = r.stringOpt(optSubject, opts.Subject); err != nil {
		return nil, err
	}
	if opts.Creator, err = r.stringOpt(optCreator, opts.Creator); err != nil {
		return nil, err
	}
	if opts.Keywords, err = r.stringOpt(optKeywords, opts.Keywords); err != nil {
		return nil, err
	}
	if opts.Description, err = r.stringOpt(optDescription, opts.Description); err != nil {
		return nil, err
	}
	return opts, nil
}

// ParseMarkdownHTMLOptions parses options for the markdown_to_html
// operation. The full-document wrap defaults to OFF here, unlike the PDF
// and DOCX pipelines.
func ParseMarkdownHTMLOptions(args map[string]any) (*MarkdownOptions, *WrapOptions, error) {
	r := newOptionReader(args)
	md, err := readMarkdownOptions(r)
	if err != nil {
		return nil, nil, err
	}
	wrap := &WrapOptions{Title: DefaultTitle}
	if wrap.FullDocument, err = r.boolOpt(optFullDocument, false); err != nil {
		return nil, nil, err
	}
	if wrap.Title, err = r.stringOpt(optTitle, wrap.Title); err != nil {
		return nil, nil, err
	}
	if wrap.CSS, err = r.stringOpt(optCSS, ""); err != nil {
		return nil, nil, err
	}
	if err := r.finish(); err != nil {
		return nil, nil, err
	}
	if err := md.Validate(); err != nil {
		return nil, nil, err
	}
	return md, wrap, nil
}

// ParsePDFOptions parses options for the html_to_pdf and url_to_pdf
// operations.
func ParsePDFOptions(args map[string]any) (*PDFOptions, error) {
	r := newOptionReader(args)
	opts, err := readPDFOptions(r)
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// ParseDocxOptions parses options for the html_to_docx operation.
func ParseDocxOptions(args map[string]any) (*DocxOptions, error) {
	r := newOptionReader(args)
	opts, err := readDocxOptions(r, true)
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// ParseMarkdownPDFOptions parses options for the markdown_to_pdf
// operation: markdown knobs, the full_document wrap (default on), and PDF
// geometry, all in one flat option object.
func ParseMarkdownPDFOptions(args map[string]any) (*MarkdownPDFOptions, error) {
	r := newOptionReader(args)
	md, err := readMarkdownOptions(r)
	if err != nil {
		return nil, err
	}
	wrap := WrapOptions{FullDocument: true, Title: DefaultTitle}
	if wrap.FullDocument, err = r.boolOpt(optFullDocument, wrap.FullDocument); err != nil {
		return nil, err
	}
	if wrap.Title, err = r.stringOpt(optTitle, wrap.Title); err != nil {
		return nil, err
	}
	if wrap.CSS, err = r.stringOpt(optCSS, ""); err != nil {
		return nil, err
	}
	pdf, err := readPDFOptions(r)
	if err != nil {
		return nil, err
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	opts := &MarkdownPDFOptions{Markdown: *md, Wrap: wrap, PDF: *pdf}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// ParseMarkdownDocxOptions parses options for the markdown_to_docx
// operation. The wrap flag is named wrap_document on this path (observed
// behaviour; same default as the PDF path's full_document). A title option
// feeds both the document shell and the DOCX metadata.
func ParseMarkdownDocxOptions(args map[string]any) (*MarkdownDocxOptions, error) {
	r := newOptionReader(args)
	md, err := readMarkdownOptions(r)
	if err != nil {
		return nil, err
	}
	wrap := WrapOptions{FullDocument: true, Title: DefaultTitle}
	if wrap.FullDocument, err = r.boolOpt(optWrapDocument, wrap.FullDocument); err != nil {
		return nil, err
	}
	if wrap.CSS, err = r.stringOpt(optCSS, ""); err != nil {
		return nil, err
	}
	docx, err := readDocxOptions(r, true)
	if err != nil {
		return nil, err
	}
	if docx.Title != "" {
		wrap.Title = docx.Title
	}
	if err := r.finish(); err != nil {
		return nil, err
	}
	opts := &MarkdownDocxOptions{Markdown: *md, Wrap: wrap, Docx: *docx}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}
