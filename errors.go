package docsmith

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrEmptyHTML     = errors.New("HTML content cannot be empty")
	ErrEmptyURL      = errors.New("URL cannot be empty")
	ErrInvalidURL    = errors.New("URL must start with http:// or https://")
	ErrEmptySection  = errors.New("section content cannot be empty")

	// Option validation errors.
	ErrInvalidOptions = errors.New("invalid options")

	// Markdown and DOCX conversion errors.
	ErrHTMLConversion = errors.New("HTML conversion failed")
	ErrDocxConversion = errors.New("DOCX conversion failed")

	// Browser rendering errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// IsInputError reports whether err stems from missing or empty payload.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyMarkdown) ||
		errors.Is(err, ErrEmptyHTML) ||
		errors.Is(err, ErrEmptyURL) ||
		errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, ErrEmptySection)
}

// IsRenderError reports whether err stems from the browser rendering engine.
func IsRenderError(err error) bool {
	return errors.Is(err, ErrBrowserConnect) ||
		errors.Is(err, ErrPageCreate) ||
		errors.Is(err, ErrPageLoad) ||
		errors.Is(err, ErrPDFGeneration)
}

// IsValidationError reports whether err should be treated as a caller
// mistake (bad payload or bad options) rather than a processing failure.
func IsValidationError(err error) bool {
	return IsInputError(err) || errors.Is(err, ErrInvalidOptions)
}
