// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import "encoding/xml"

// Encoding structs. Element names carry the w: prefix literally; the
// prefix is bound by the namespace declarations on the document root, so
// fragments are spliced into the body without xmlns attributes of their own.
// Field order follows the WordprocessingML schema sequences.

type wVal struct {
	Val string `xml:"w:val,attr"`
}

type wIntVal struct {
	Val int `xml:"w:val,attr"`
}

type wOnOff struct {
	Val string `xml:"w:val,attr,omitempty"`
}

type wWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type wTable struct {
	XMLName xml.Name    `xml:"w:tbl"`
	Props   wTableProps `xml:"w:tblPr"`
	Grid    wTableGrid  `xml:"w:tblGrid"`
	Rows    []wRow      `xml:"w:tr"`
}

type wTableProps struct {
	Style   *wVal     `xml:"w:tblStyle"`
	Width   wWidth    `xml:"w:tblW"`
	Justify *wVal     `xml:"w:jc"`
	Borders *wBorders `xml:"w:tblBorders"`
	Layout  *wLayout  `xml:"w:tblLayout"`
}

type wBorders struct {
	Top     wBorder `xml:"w:top"`
	Left    wBorder `xml:"w:left"`
	Bottom  wBorder `xml:"w:bottom"`
	Right   wBorder `xml:"w:right"`
	InsideH wBorder `xml:"w:insideH"`
	InsideV wBorder `xml:"w:insideV"`
}

type wBorder struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type wLayout struct {
	Type string `xml:"w:type,attr"`
}

type wTableGrid struct {
	Cols []wIntW `xml:"w:gridCol"`
}

type wIntW struct {
	W int `xml:"w:w,attr"`
}

type wRow struct {
	Props *wRowProps `xml:"w:trPr"`
	Cells []wCell    `xml:"w:tc"`
}

type wRowProps struct {
	Height wHeight `xml:"w:trHeight"`
}

type wHeight struct {
	Val  int    `xml:"w:val,attr"`
	Rule string `xml:"w:hRule,attr,omitempty"`
}

type wCell struct {
	Props      wCellProps   `xml:"w:tcPr"`
	Paragraphs []wParagraph `xml:"w:p"`
}

type wCellProps struct {
	Width    wWidth    `xml:"w:tcW"`
	GridSpan *wIntVal  `xml:"w:gridSpan"`
	VMerge   *wOnOff   `xml:"w:vMerge"`
	Shading  *wShading `xml:"w:shd"`
	VAlign   *wVal     `xml:"w:vAlign"`
}

type wShading struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

type wParagraph struct {
	XMLName xml.Name         `xml:"w:p"`
	Props   *wParagraphProps `xml:"w:pPr"`
	Runs    []wRun           `xml:"w:r"`
}

type wParagraphProps struct {
	Justify *wVal `xml:"w:jc"`
}

type wRun struct {
	Props *wRunProps `xml:"w:rPr"`
	Items []wRunItem
}

// wRunItem is a w:t or w:br child; its XMLName is set per item.
type wRunItem struct {
	XMLName xml.Name
	Space   string `xml:"xml:space,attr,omitempty"`
	Text    string `xml:",chardata"`
}

type wRunProps struct {
	Fonts  *wFonts  `xml:"w:rFonts"`
	Bold   *wOnOff  `xml:"w:b"`
	BoldCS *wOnOff  `xml:"w:bCs"`
	Color  *wVal    `xml:"w:color"`
	Size   *wIntVal `xml:"w:sz"`
	SizeCS *wIntVal `xml:"w:szCs"`
}

type wFonts struct {
	ASCII    string `xml:"w:ascii,attr,omitempty"`
	HAnsi    string `xml:"w:hAnsi,attr,omitempty"`
	EastAsia string `xml:"w:eastAsia,attr,omitempty"`
}
