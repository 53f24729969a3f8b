package docxml

import "encoding/xml"

// XML structs for word/document.xml, modelled after the w: element
// hierarchy: a body of paragraphs and tables followed by the section
// properties. Field order matters; encoding/xml marshals in declaration
// order and the schema requires properties before content.

type document struct {
	XMLName xml.Name `xml:"w:document"`
	XMLNSW  string   `xml:"xmlns:w,attr"`
	Body    docBody  `xml:"w:body"`
}

type docBody struct {
	Content []any
	SectPr  sectPr
}

// paragraph represents w:p.
type paragraph struct {
	XMLName xml.Name   `xml:"w:p"`
	Props   *paraProps `xml:"w:pPr,omitempty"`
	Runs    []run
}

type paraProps struct {
	Style  *valAttr `xml:"w:pStyle,omitempty"`
	Indent *indent  `xml:"w:ind,omitempty"`
}

type valAttr struct {
	Val string `xml:"w:val,attr"`
}

type indent struct {
	Left int `xml:"w:left,attr"`
}

// run represents w:r: optional properties, then either a break or text.
type run struct {
	XMLName xml.Name  `xml:"w:r"`
	Props   *runProps `xml:"w:rPr,omitempty"`
	Break   *lineBreak
	Text    *runText
}

type runProps struct {
	Fonts     *runFonts `xml:"w:rFonts,omitempty"`
	Bold      *toggle   `xml:"w:b,omitempty"`
	Italic    *toggle   `xml:"w:i,omitempty"`
	Strike    *toggle   `xml:"w:strike,omitempty"`
	Underline *valAttr  `xml:"w:u,omitempty"`
}

type runFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
}

// toggle is an empty presence element such as w:b.
type toggle struct{}

type lineBreak struct {
	XMLName xml.Name `xml:"w:br"`
}

type runText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr"`
	Value   string   `xml:",chardata"`
}

// table represents w:tbl.
type table struct {
	XMLName xml.Name `xml:"w:tbl"`
	Props   tblProps `xml:"w:tblPr"`
	Rows    []tableRow
}

type tblProps struct {
	Width   tblWidth   `xml:"w:tblW"`
	Borders tblBorders `xml:"w:tblBorders"`
}

type tblWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type tblBorders struct {
	Top     borderEdge `xml:"w:top"`
	Left    borderEdge `xml:"w:left"`
	Bottom  borderEdge `xml:"w:bottom"`
	Right   borderEdge `xml:"w:right"`
	InsideH borderEdge `xml:"w:insideH"`
	InsideV borderEdge `xml:"w:insideV"`
}

type borderEdge struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Color string `xml:"w:color,attr"`
}

type tableRow struct {
	XMLName xml.Name `xml:"w:tr"`
	Cells   []tableCell
}

type tableCell struct {
	XMLName    xml.Name `xml:"w:tc"`
	Paragraphs []paragraph
}

// sectPr represents w:sectPr: page size then margins.
type sectPr struct {
	XMLName xml.Name `xml:"w:sectPr"`
	Size    pageSize `xml:"w:pgSz"`
	Margins pageMar  `xml:"w:pgMar"`
}

type pageSize struct {
	W      int    `xml:"w:w,attr"`
	H      int    `xml:"w:h,attr"`
	Orient string `xml:"w:orient,attr,omitempty"`
}

type pageMar struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// newText builds a preserved-space text run element.
func newText(s string) *runText {
	return &runText{Space: "preserve", Value: s}
}

// buildSectPr maps a Geometry to section properties. Non-positive margins
// fall back to the one-inch default.
func buildSectPr(geom Geometry) sectPr {
	width, height := pageWidthTwips, pageHeightTwips
	orient := ""
	if geom.Landscape {
		width, height = height, width
		orient = "landscape"
	}
	return sectPr{
		Size: pageSize{W: width, H: height, Orient: orient},
		Margins: pageMar{
			Top:    marginOrDefault(geom.MarginTop),
			Right:  marginOrDefault(geom.MarginRight),
			Bottom: marginOrDefault(geom.MarginBottom),
			Left:   marginOrDefault(geom.MarginLeft),
			Header: 720,
			Footer: 720,
		},
	}
}

func marginOrDefault(v int) int {
	if v <= 0 {
		return DefaultMarginTwips
	}
	return v
}

// marshalDocument renders word/document.xml.
func marshalDocument(blocks []any, geom Geometry) ([]byte, error) {
	doc := document{
		XMLNSW: wordNamespace,
		Body: docBody{
			Content: blocks,
			SectPr:  buildSectPr(geom),
		},
	}
	out, err := xml.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
