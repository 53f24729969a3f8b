package docxml

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Paragraph style identifiers referenced from styles.xml.
const (
	styleHeadingPrefix = "Heading"
	styleQuote         = "Quote"
	styleCode          = "Code"
	styleList          = "ListParagraph"
)

const codeFont = "Consolas"

// listIndentTwips is the extra left indent applied per nesting level.
const listIndentTwips = 720

// parseHTML extracts core properties from the head and converts the body
// into an ordered slice of paragraphs and tables. goquery tolerates bare
// fragments by synthesizing html/head/body, so malformed input degrades to
// text content instead of failing.
func parseHTML(htmlContent string) (CoreProperties, []any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return CoreProperties{}, nil, fmt.Errorf("parsing HTML: %w", err)
	}

	props := CoreProperties{
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	}
	doc.Find("head meta").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		switch strings.ToLower(name) {
		case "subject":
			props.Subject = content
		case "author", "creator":
			props.Creator = content
		case "keywords":
			props.Keywords = content
		case "description":
			props.Description = content
		}
	})

	b := &builder{}
	for _, bodyNode := range doc.Find("body").Nodes {
		for c := bodyNode.FirstChild; c != nil; c = c.NextSibling {
			b.block(c)
		}
	}

	// An empty document still needs one paragraph to be a valid body.
	if len(b.blocks) == 0 {
		b.blocks = append(b.blocks, paragraph{})
	}

	return props, b.blocks, nil
}

// builder accumulates document blocks while walking the node tree.
type builder struct {
	blocks []any
}

// inlineState carries inherited inline formatting down the tree.
type inlineState struct {
	bold      bool
	italic    bool
	underline bool
	strike    bool
	code      bool
}

// block converts one block-level node into zero or more document blocks.
func (b *builder) block(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		if runs := inlineRuns(n, inlineState{}); len(runs) > 0 {
			b.blocks = append(b.blocks, paragraph{Runs: runs})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		level := n.Data[1:]
		b.appendParagraph(styleHeadingPrefix+level, childRuns(n, inlineState{}))
	case "p":
		b.appendParagraph("", childRuns(n, inlineState{}))
	case "ul":
		b.list(n, 0, false)
	case "ol":
		b.list(n, 0, true)
	case "pre":
		b.codeBlock(n)
	case "blockquote":
		b.quote(n)
	case "table":
		b.table(n)
	case "hr":
		b.blocks = append(b.blocks, paragraph{})
	case "div", "section", "article", "main", "header", "footer", "aside", "figure":
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b.block(c)
		}
	case "script", "style", "head":
		// Never rendered
	default:
		// Unknown or inline element at block level: degrade to a text paragraph
		if runs := inlineRuns(n, inlineState{}); len(runs) > 0 {
			b.blocks = append(b.blocks, paragraph{Runs: runs})
		}
	}
}

func (b *builder) appendParagraph(style string, runs []run) {
	if len(runs) == 0 && style == "" {
		return
	}
	p := paragraph{Runs: runs}
	if style != "" {
		p.Props = &paraProps{Style: &valAttr{Val: style}}
	}
	b.blocks = append(b.blocks, p)
}

// list flattens a ul/ol into prefixed paragraphs, one per item, indenting
// nested lists by level.
func (b *builder) list(n *html.Node, depth int, ordered bool) {
	index := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}

		prefix := "• "
		if ordered {
			prefix = fmt.Sprintf("%d. ", index)
		}
		index++

		runs := []run{{Text: newText(prefix)}}
		var nested []*html.Node
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			if g.Type == html.ElementNode && (g.Data == "ul" || g.Data == "ol") {
				nested = append(nested, g)
				continue
			}
			runs = append(runs, inlineRuns(g, inlineState{})...)
		}

		p := paragraph{
			Props: &paraProps{
				Style:  &valAttr{Val: styleList},
				Indent: &indent{Left: listIndentTwips * (depth + 1)},
			},
			Runs: runs,
		}
		b.blocks = append(b.blocks, p)

		for _, g := range nested {
			b.list(g, depth+1, g.Data == "ol")
		}
	}
}

// codeBlock renders a pre element as one Code-styled paragraph with line
// breaks between source lines.
func (b *builder) codeBlock(n *html.Node) {
	lines := strings.Split(strings.TrimRight(nodeText(n), "\n"), "\n")
	var runs []run
	props := &runProps{Fonts: &runFonts{ASCII: codeFont, HAnsi: codeFont}}
	for i, line := range lines {
		if i > 0 {
			runs = append(runs, run{Break: &lineBreak{}})
		}
		runs = append(runs, run{Props: props, Text: newText(line)})
	}
	b.blocks = append(b.blocks, paragraph{
		Props: &paraProps{Style: &valAttr{Val: styleCode}},
		Runs:  runs,
	})
}

// quote renders blockquote children as blocks, then styles any unstyled
// paragraph among them as Quote.
func (b *builder) quote(n *html.Node) {
	inner := &builder{}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inner.block(c)
	}
	for _, blk := range inner.blocks {
		if p, ok := blk.(paragraph); ok {
			if p.Props == nil {
				p.Props = &paraProps{Style: &valAttr{Val: styleQuote}}
			}
			b.blocks = append(b.blocks, p)
			continue
		}
		b.blocks = append(b.blocks, blk)
	}
}

// table converts an HTML table; header cells render bold.
func (b *builder) table(n *html.Node) {
	tbl := table{
		Props: tblProps{
			Width: tblWidth{W: 5000, Type: "pct"},
			Borders: tblBorders{
				Top:     borderEdge{Val: "single", Size: 4, Color: "auto"},
				Left:    borderEdge{Val: "single", Size: 4, Color: "auto"},
				Bottom:  borderEdge{Val: "single", Size: 4, Color: "auto"},
				Right:   borderEdge{Val: "single", Size: 4, Color: "auto"},
				InsideH: borderEdge{Val: "single", Size: 4, Color: "auto"},
				InsideV: borderEdge{Val: "single", Size: 4, Color: "auto"},
			},
		},
	}

	var walkRows func(*html.Node)
	walkRows = func(parent *html.Node) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				walkRows(c)
			case "tr":
				tbl.Rows = append(tbl.Rows, tableRowFrom(c))
			}
		}
	}
	walkRows(n)

	if len(tbl.Rows) > 0 {
		b.blocks = append(b.blocks, tbl)
	}
}

func tableRowFrom(tr *html.Node) tableRow {
	var row tableRow
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		state := inlineState{bold: c.Data == "th"}
		cell := tableCell{Paragraphs: []paragraph{{Runs: childRuns(c, state)}}}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

// childRuns collects the inline runs of all children of n.
func childRuns(n *html.Node, state inlineState) []run {
	var runs []run
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		runs = append(runs, inlineRuns(c, state)...)
	}
	return runs
}

// inlineRuns converts an inline node into formatted runs.
func inlineRuns(n *html.Node, state inlineState) []run {
	switch n.Type {
	case html.TextNode:
		text := n.Data
		if !state.code {
			text = collapseWhitespace(text)
		}
		if text == "" {
			return nil
		}
		return []run{{Props: state.props(), Text: newText(text)}}
	case html.ElementNode:
	default:
		return nil
	}

	switch n.Data {
	case "br":
		return []run{{Break: &lineBreak{}}}
	case "b", "strong":
		state.bold = true
	case "i", "em":
		state.italic = true
	case "u", "ins":
		state.underline = true
	case "del", "s", "strike":
		state.strike = true
	case "code", "kbd", "samp", "tt":
		state.code = true
	case "a":
		state.underline = true
	case "img":
		if alt := attrValue(n, "alt"); alt != "" {
			return []run{{Props: state.props(), Text: newText("[" + alt + "]")}}
		}
		return nil
	case "script", "style":
		return nil
	}

	return childRuns(n, state)
}

// props converts an inline state into run properties, nil when plain.
func (s inlineState) props() *runProps {
	if !s.bold && !s.italic && !s.underline && !s.strike && !s.code {
		return nil
	}
	p := &runProps{}
	if s.code {
		p.Fonts = &runFonts{ASCII: codeFont, HAnsi: codeFont}
	}
	if s.bold {
		p.Bold = &toggle{}
	}
	if s.italic {
		p.Italic = &toggle{}
	}
	if s.strike {
		p.Strike = &toggle{}
	}
	if s.underline {
		p.Underline = &valAttr{Val: "single"}
	}
	return p
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeText returns the concatenated text content of a subtree.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// collapseWhitespace folds runs of whitespace into single spaces while
// preserving a significant leading or trailing space.
func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	out := strings.Join(fields, " ")
	runes := []rune(s)
	if unicode.IsSpace(runes[0]) {
		out = " " + out
	}
	if unicode.IsSpace(runes[len(runes)-1]) {
		out += " "
	}
	return out
}
