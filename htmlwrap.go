package docsmith

import (
	_ "embed"
	"html"
	"strings"
)

// defaultStylesheet is the built-in document stylesheet. Caller CSS is
// appended after it, so callers override by cascade order, never by
// removing built-in rules.
//
//go:embed style.css
var defaultStylesheet string

// WrapDocument embeds an HTML fragment in a complete document shell: fixed
// head (charset, viewport, title), the built-in stylesheet, caller CSS
// appended after it, and the fragment as the body. The output is a pure
// function of its inputs, with no timestamps or randomness.
func WrapDocument(fragment string, opts *WrapOptions) string {
	title := DefaultTitle
	css := ""
	if opts != nil {
		if opts.Title != "" {
			title = opts.Title
		}
		css = opts.CSS
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString(`<meta charset="utf-8">` + "\n")
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>\n" + defaultStylesheet + "</style>\n")
	if css != "" {
		b.WriteString("<style>\n" + sanitizeCSS(css) + "\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fragment)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// sanitizeCSS escapes sequences that could close the <style> block early.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
