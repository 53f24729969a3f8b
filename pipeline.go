package docsmith

import (
	"context"
	"fmt"
	"strings"
)

// pageBreakMarker separates batch sections in the combined document. It
// passes through the Markdown stage as raw HTML and forces a page break in
// both the PDF and DOCX renderers.
const pageBreakMarker = `<div style="page-break-after: always;"></div>`

// ConvertMarkdownToPDF runs the Markdown to HTML stage, wraps the result
// as a full document unless disabled, and renders it to PDF. Metadata from
// both stages is merged. The first failing stage aborts the pipeline and
// its error names the stage; no partial output is returned.
func (s *Service) ConvertMarkdownToPDF(ctx context.Context, markdown string, opts *MarkdownPDFOptions) (*PipelineResult, error) {
	if markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if opts == nil {
		opts = DefaultMarkdownPDFOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	htmlRes, err := s.ConvertMarkdown(ctx, markdown, &opts.Markdown)
	if err != nil {
		return nil, fmt.Errorf("markdown to HTML stage: %w", err)
	}

	content := htmlRes.HTML
	if opts.Wrap.FullDocument {
		content = WrapDocument(content, &opts.Wrap)
	}

	pdfRes, err := s.ConvertHTMLToPDF(ctx, content, &opts.PDF)
	if err != nil {
		return nil, fmt.Errorf("HTML to PDF stage: %w", err)
	}

	return &PipelineResult{
		Data: pdfRes.Data,
		Meta: Metadata{
			OriginalLength: len(markdown),
			HTMLLength:     len(content),
			OutputSize:     pdfRes.Size,
			Sanitized:      htmlRes.Meta.Sanitized,
		},
	}, nil
}

// ConvertMarkdownSectionsToPDF concatenates an ordered list of sections
// into one Markdown document and runs the single-document pipeline once.
// Titled sections get an H1 heading; a page-break marker is inserted
// between consecutive sections but not after the last. The reported
// original length is the sum of the section content lengths.
func (s *Service) ConvertMarkdownSectionsToPDF(ctx context.Context, sections []Section, opts *MarkdownPDFOptions) (*PipelineResult, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no sections provided", ErrEmptySection)
	}

	total := 0
	var b strings.Builder
	for i, section := range sections {
		if section.Content == "" {
			return nil, fmt.Errorf("%w: section %d", ErrEmptySection, i)
		}
		if i > 0 {
			b.WriteString("\n\n" + pageBreakMarker + "\n\n")
		}
		if section.Title != "" {
			b.WriteString("# " + section.Title + "\n\n")
		}
		b.WriteString(section.Content)
		total += len(section.Content)
	}

	res, err := s.ConvertMarkdownToPDF(ctx, b.String(), opts)
	if err != nil {
		return nil, err
	}
	res.Meta.OriginalLength = total
	return res, nil
}

// ConvertMarkdownToDocx runs the Markdown to HTML stage, wraps the result
// unless disabled (the wrap defaults to on here, as on the PDF path), and
// emits DOCX bytes.
func (s *Service) ConvertMarkdownToDocx(ctx context.Context, markdown string, opts *MarkdownDocxOptions) (*PipelineResult, error) {
	if markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	if opts == nil {
		opts = DefaultMarkdownDocxOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	htmlRes, err := s.ConvertMarkdown(ctx, markdown, &opts.Markdown)
	if err != nil {
		return nil, fmt.Errorf("markdown to HTML stage: %w", err)
	}

	content := htmlRes.HTML
	if opts.Wrap.FullDocument {
		content = WrapDocument(content, &opts.Wrap)
	}

	docxRes, err := s.ConvertHTMLToDocx(ctx, content, &opts.Docx)
	if err != nil {
		return nil, fmt.Errorf("HTML to DOCX stage: %w", err)
	}

	return &PipelineResult{
		Data: docxRes.Data,
		Meta: Metadata{
			OriginalLength: len(markdown),
			HTMLLength:     len(content),
			OutputSize:     docxRes.Size,
			Sanitized:      htmlRes.Meta.Sanitized,
		},
	}, nil
}
