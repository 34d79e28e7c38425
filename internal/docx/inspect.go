// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// Decoding structs match on local names so that they accept both
// prefixed template content and fragments written by this package.

type rVal struct {
	Val string `xml:"val,attr"`
}

type rIntVal struct {
	Val int `xml:"val,attr"`
}

type rTable struct {
	Props struct {
		Style   *rVal `xml:"tblStyle"`
		Justify *rVal `xml:"jc"`
		Borders *struct {
			Top rBorder `xml:"top"`
		} `xml:"tblBorders"`
	} `xml:"tblPr"`
	Grid struct {
		Cols []struct {
			W int `xml:"w,attr"`
		} `xml:"gridCol"`
	} `xml:"tblGrid"`
	Rows []rRow `xml:"tr"`
}

type rBorder struct {
	Val   string `xml:"val,attr"`
	Size  int    `xml:"sz,attr"`
	Color string `xml:"color,attr"`
}

type rRow struct {
	Props struct {
		Height *struct {
			Val int `xml:"val,attr"`
		} `xml:"trHeight"`
	} `xml:"trPr"`
	Cells []rCell `xml:"tc"`
}

type rCell struct {
	Props struct {
		GridSpan *rIntVal `xml:"gridSpan"`
		VMerge   *rVal    `xml:"vMerge"`
		Shading  *struct {
			Fill string `xml:"fill,attr"`
		} `xml:"shd"`
		VAlign *rVal `xml:"vAlign"`
	} `xml:"tcPr"`
	Paragraphs []rParagraph `xml:"p"`
}

type rParagraph struct {
	Props struct {
		Justify *rVal `xml:"jc"`
	} `xml:"pPr"`
	Runs []rRun `xml:"r"`
}

type rRun struct {
	Props *struct {
		Fonts *struct {
			ASCII    string `xml:"ascii,attr"`
			EastAsia string `xml:"eastAsia,attr"`
		} `xml:"rFonts"`
		Bold  *rVal    `xml:"b"`
		Color *rVal    `xml:"color"`
		Size  *rIntVal `xml:"sz"`
	} `xml:"rPr"`
	Items []struct {
		XMLName xml.Name
		Text    string `xml:",chardata"`
	} `xml:",any"`
}

func (r rRun) text() string {
	var b strings.Builder
	for _, it := range r.Items {
		switch it.XMLName.Local {
		case "t":
			b.WriteString(it.Text)
		case "br", "cr":
			b.WriteByte('\n')
		case "tab":
			b.WriteByte('\t')
		}
	}
	return b.String()
}

func (p rParagraph) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.text())
	}
	return b.String()
}

// RunView is the formatting of a run as written in its properties.
type RunView struct {
	Font     string
	EastAsia string
	SizePt   float64
	Bold     bool
	Color    string
}

func (p rParagraph) firstRun() RunView {
	if len(p.Runs) == 0 || p.Runs[0].Props == nil {
		return RunView{}
	}
	rp := p.Runs[0].Props
	var v RunView
	if rp.Fonts != nil {
		v.Font, v.EastAsia = rp.Fonts.ASCII, rp.Fonts.EastAsia
	}
	if rp.Size != nil {
		v.SizePt = float64(rp.Size.Val) / 2
	}
	if rp.Bold != nil {
		v.Bold = rp.Bold.Val != "0" && rp.Bold.Val != "false"
	}
	if rp.Color != nil {
		v.Color = rp.Color.Val
	}
	return v
}

// ParagraphView is a top-level body paragraph read back from the document.
type ParagraphView struct {
	Text  string
	Align types.HAlign
	RunView
}

func (p rParagraph) view() ParagraphView {
	v := ParagraphView{Text: p.text(), RunView: p.firstRun()}
	if p.Props.Justify != nil {
		v.Align = types.HAlign(p.Props.Justify.Val)
	}
	return v
}

// CellView is a logical cell: a merged region reported once, from its anchor.
type CellView struct {
	Row, Col         int
	RowSpan, ColSpan int
	Text             string
	Fill             string
	VAlign           types.VAlign
	Align            types.HAlign
	RunView
}

// TableView is a body table with merges resolved.
type TableView struct {
	Style   string
	Align   types.HAlign
	Border  *types.Border
	Widths  []int
	Heights []int
	cells   [][]*CellView
}

// Rows returns the number of rows.
func (t *TableView) Rows() int { return len(t.cells) }

// Cols returns the number of grid columns.
func (t *TableView) Cols() int { return len(t.Widths) }

// Cell returns the logical cell covering (row, col), or nil if the
// coordinate is outside the table or not covered by any cell.
func (t *TableView) Cell(row, col int) *CellView {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.cells[row]) {
		return nil
	}
	return t.cells[row][col]
}

// Paragraphs returns the top-level body paragraphs in order.
func (d *Document) Paragraphs() ([]ParagraphView, error) {
	var out []ParagraphView
	for i, el := range d.body {
		if el.Kind != KindParagraph {
			continue
		}
		var p rParagraph
		if err := xml.Unmarshal(el.raw, &p); err != nil {
			return nil, fmt.Errorf("body element %d: %w", i, err)
		}
		out = append(out, p.view())
	}
	return out, nil
}

// Tables returns the top-level body tables in order.
func (d *Document) Tables() ([]*TableView, error) {
	var out []*TableView
	for i, el := range d.body {
		if el.Kind != KindTable {
			continue
		}
		var t rTable
		if err := xml.Unmarshal(el.raw, &t); err != nil {
			return nil, fmt.Errorf("body element %d: %w", i, err)
		}
		out = append(out, t.view())
	}
	return out, nil
}

func (t rTable) view() *TableView {
	v := &TableView{}
	if t.Props.Style != nil {
		v.Style = t.Props.Style.Val
	}
	if t.Props.Justify != nil {
		v.Align = types.HAlign(t.Props.Justify.Val)
	}
	if b := t.Props.Borders; b != nil {
		v.Border = &types.Border{Style: b.Top.Val, Size: b.Top.Size, Color: b.Top.Color}
	}
	for _, c := range t.Grid.Cols {
		v.Widths = append(v.Widths, c.W)
	}

	cols := len(v.Widths)
	v.cells = make([][]*CellView, len(t.Rows))
	for r, row := range t.Rows {
		h := 0
		if row.Props.Height != nil {
			h = row.Props.Height.Val
		}
		v.Heights = append(v.Heights, h)

		v.cells[r] = make([]*CellView, cols)
		c := 0
		for _, tc := range row.Cells {
			span := 1
			if tc.Props.GridSpan != nil && tc.Props.GridSpan.Val > 1 {
				span = tc.Props.GridSpan.Val
			}
			if c+span > cols {
				break
			}

			var cell *CellView
			continued := tc.Props.VMerge != nil && tc.Props.VMerge.Val != "restart"
			if continued && r > 0 && v.cells[r-1][c] != nil {
				cell = v.cells[r-1][c]
				cell.RowSpan = r - cell.Row + 1
			} else {
				cell = tc.view(r, c, span)
			}
			for k := c; k < c+span; k++ {
				v.cells[r][k] = cell
			}
			c += span
		}
	}
	return v
}

func (tc rCell) view(row, col, span int) *CellView {
	cv := &CellView{Row: row, Col: col, RowSpan: 1, ColSpan: span}
	texts := make([]string, len(tc.Paragraphs))
	for i, p := range tc.Paragraphs {
		texts[i] = p.text()
	}
	cv.Text = strings.Join(texts, "\n")
	if len(tc.Paragraphs) > 0 {
		first := tc.Paragraphs[0]
		cv.RunView = first.firstRun()
		if first.Props.Justify != nil {
			cv.Align = types.HAlign(first.Props.Justify.Val)
		}
	}
	if tc.Props.Shading != nil {
		cv.Fill = tc.Props.Shading.Fill
	}
	if tc.Props.VAlign != nil {
		cv.VAlign = types.VAlign(tc.Props.VAlign.Val)
	}
	return cv
}
