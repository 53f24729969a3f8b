// Package docxml emits minimal Open XML word-processing documents.
//
// It converts an HTML document (or fragment) into a .docx byte buffer:
// headings, paragraphs, inline formatting, lists, tables, blockquotes,
// code blocks, and line breaks map to their word-processing equivalents;
// anything else degrades to its text content. Page geometry goes into the
// section properties and head metadata (<title>, <meta> elements) into the
// core document properties.
//
// The output is deterministic: equal input produces byte-identical output,
// with no timestamps or generated identifiers.
package docxml

// Geometry controls page size, orientation, and margins. Margins are in
// twips (1/1440 inch). The page is always A4; landscape swaps the edges.
type Geometry struct {
	Landscape    bool
	MarginTop    int
	MarginRight  int
	MarginBottom int
	MarginLeft   int
}

// DefaultMarginTwips is one inch, applied when a margin is zero or negative.
const DefaultMarginTwips = 1440

// A4 page dimensions in twips.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
)

// CoreProperties is the document metadata written to docProps/core.xml,
// extracted from the HTML head.
type CoreProperties struct {
	Title       string
	Subject     string
	Creator     string
	Keywords    string
	Description string
}

// Convert turns an HTML document into DOCX bytes. The HTML may be a full
// document or a bare fragment; metadata is read from the head when present.
func Convert(htmlContent string, geom Geometry) ([]byte, error) {
	props, blocks, err := parseHTML(htmlContent)
	if err != nil {
		return nil, err
	}
	return writePackage(props, blocks, geom)
}
