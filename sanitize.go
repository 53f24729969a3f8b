package docsmith

import (
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// defaultPolicy is the built-in sanitizer allow-list. It covers the HTML
// that the Markdown stage can emit: headings, inline formatting, links,
// images, lists (including GFM task lists), tables, and highlighted code.
var defaultPolicy = SanitizePolicy{
	AllowedTags: []string{
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "br", "hr", "div", "span", "blockquote",
		"pre", "code", "em", "strong", "del", "s", "u", "b", "i",
		"a", "img",
		"ul", "ol", "li", "input",
		"table", "thead", "tbody", "tfoot", "tr", "th", "td",
		"dl", "dt", "dd", "sup", "sub", "figure", "figcaption",
	},
	AllowedAttributes: map[string][]string{
		"*":     {"id"},
		"a":     {"href", "title"},
		"img":   {"src", "alt", "title", "width", "height"},
		"th":    {"colspan", "rowspan", "align"},
		"td":    {"colspan", "rowspan", "align"},
		"input": {"type", "checked", "disabled"},
		"ol":    {"start"},
	},
	AllowedSchemes: []string{"http", "https", "mailto"},
	AllowedClasses: []string{`^[a-zA-Z0-9\s_-]+$`},
}

// mergePolicy overlays a caller-supplied policy fragment on the built-in
// policy. The merge is shallow: each non-nil field replaces the built-in
// list wholesale, never per tag.
func mergePolicy(fragment *SanitizePolicy) *SanitizePolicy {
	merged := defaultPolicy
	if fragment == nil {
		return &merged
	}
	if fragment.AllowedTags != nil {
		merged.AllowedTags = fragment.AllowedTags
	}
	if fragment.AllowedAttributes != nil {
		merged.AllowedAttributes = fragment.AllowedAttributes
	}
	if fragment.AllowedSchemes != nil {
		merged.AllowedSchemes = fragment.AllowedSchemes
	}
	if fragment.AllowedClasses != nil {
		merged.AllowedClasses = fragment.AllowedClasses
	}
	return &merged
}

// pageBreakStyle matches the inline declaration the batch composer puts
// between sections. The sanitizer must let it through on div or sanitized
// batch output loses its pagination.
var pageBreakStyle = regexp.MustCompile(`^page-break-after:\s*always;?\s*$`)

// buildSanitizer compiles an effective policy into a bluemonday policy.
func buildSanitizer(effective *SanitizePolicy) (*bluemonday.Policy, error) {
	p := bluemonday.NewPolicy()
	p.AllowElements(effective.AllowedTags...)
	p.AllowAttrs("style").Matching(pageBreakStyle).OnElements("div")

	for tag, attrs := range effective.AllowedAttributes {
		if tag == "*" {
			p.AllowAttrs(attrs...).Globally()
			continue
		}
		p.AllowAttrs(attrs...).OnElements(tag)
	}

	for _, pattern := range effective.AllowedClasses {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: allowed_classes pattern %q does not compile", ErrInvalidOptions, pattern)
		}
		p.AllowAttrs("class").Matching(re).Globally()
	}

	p.AllowURLSchemes(effective.AllowedSchemes...)
	return p, nil
}

// sanitizeHTML strips everything outside the effective allow-list from
// htmlContent. The fragment is shallow-merged over the built-in policy.
func sanitizeHTML(htmlContent string, fragment *SanitizePolicy) (string, error) {
	sanitizer, err := buildSanitizer(mergePolicy(fragment))
	if err != nil {
		return "", err
	}
	return sanitizer.Sanitize(htmlContent), nil
}
