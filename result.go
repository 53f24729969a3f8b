package docsmith

// Metadata carries kind-specific facts about a successful conversion.
type Metadata struct {
	OriginalLength int  `json:"originalLength"`
	HTMLLength     int  `json:"htmlLength"`
	OutputSize     int  `json:"outputSize,omitempty"`
	Sanitized      bool `json:"sanitized"`
}

// HTMLResult is the output of the Markdown to HTML stage.
type HTMLResult struct {
	HTML string
	Meta Metadata
}

// PDFResult is the output of the HTML/URL to PDF stage. Size always equals
// len(Data); partial output is never returned.
type PDFResult struct {
	Data []byte
	Size int
}

// DocxResult is the output of the HTML to DOCX stage.
type DocxResult struct {
	Data []byte
	Size int
}

// PipelineResult is the output of a multi-stage pipeline with merged
// metadata from every stage.
type PipelineResult struct {
	Data []byte
	Meta Metadata
}

// Section is one entry of a batch Markdown conversion.
type Section struct {
	Content string // Markdown content (required, non-empty)
	Title   string // Optional; rendered as an H1 heading before the section
}
