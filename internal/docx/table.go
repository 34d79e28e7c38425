// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"fmt"
	"math"

	"github.com/songyongshun/ciit-lesson-plan/internal/grid"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// DefaultTableStyle is the table style referenced by new tables.
const DefaultTableStyle = "TableGrid"

// twipsPerCm converts centimetres to twentieths of a point.
const twipsPerCm = 1440 / 2.54

// Twips converts a length in centimetres to twips.
func Twips(cm float64) int {
	return int(math.Round(cm * twipsPerCm))
}

// Table is a fixed-shape table under construction. Cells are merged,
// written and styled through the underlying grid, then the table is
// encoded by Document.AppendTable.
type Table struct {
	m       *grid.Matrix
	widths  []int
	heights []int
	borders *types.Border
	align   types.HAlign
	styleID string
}

// NewTable returns a rows × cols table with no widths, heights or borders.
func NewTable(rows, cols int) *Table {
	return &Table{
		m:       grid.New(rows, cols),
		widths:  make([]int, cols),
		heights: make([]int, rows),
		styleID: DefaultTableStyle,
	}
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.m.Rows() }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.m.Cols() }

// SetColumnWidth fixes the width of column col.
func (t *Table) SetColumnWidth(col int, cm float64) error {
	if col < 0 || col >= len(t.widths) {
		return fmt.Errorf("column %d: %w", col, grid.ErrOutOfRange)
	}
	t.widths[col] = Twips(cm)
	return nil
}

// SetRowHeight sets the minimum height of row.
func (t *Table) SetRowHeight(row int, cm float64) error {
	if row < 0 || row >= len(t.heights) {
		return fmt.Errorf("row %d: %w", row, grid.ErrOutOfRange)
	}
	t.heights[row] = Twips(cm)
	return nil
}

// SetBorders draws b on every outer and inner edge.
func (t *Table) SetBorders(b types.Border) { t.borders = &b }

// SetTableAlignment positions the table on the page.
func (t *Table) SetTableAlignment(a types.HAlign) { t.align = a }

// SetStyleID changes the referenced table style; empty removes it.
func (t *Table) SetStyleID(id string) { t.styleID = id }

// Merge joins the rectangle between the two corner cells into one region.
func (t *Table) Merge(row1, col1, row2, col2 int) error {
	_, err := t.m.Merge(row1, col1, row2, col2)
	return err
}

// SetText writes text to the anchor cell of a region.
func (t *Table) SetText(row, col int, text string) error { return t.m.SetText(row, col, text) }

// Text returns the text of the region covering (row, col).
func (t *Table) Text(row, col int) string { return t.m.Text(row, col) }

// StyleCell overlays s onto the region covering (row, col).
func (t *Table) StyleCell(row, col int, s types.CellStyle) error { return t.m.StyleCell(row, col, s) }

func (t *Table) xml() wTable {
	x := wTable{
		Props: wTableProps{
			Width:  wWidth{W: 0, Type: "auto"},
			Layout: &wLayout{Type: "fixed"},
		},
	}
	if t.styleID != "" {
		x.Props.Style = &wVal{Val: t.styleID}
	}
	if t.align != "" {
		x.Props.Justify = &wVal{Val: string(t.align)}
	}
	if b := t.borders; b != nil && b.Style != "" {
		edge := wBorder{Val: b.Style, Size: b.Size, Color: b.Color}
		x.Props.Borders = &wBorders{
			Top: edge, Left: edge, Bottom: edge, Right: edge,
			InsideH: edge, InsideV: edge,
		}
	}
	for _, w := range t.widths {
		x.Grid.Cols = append(x.Grid.Cols, wIntW{W: w})
	}

	for r := 0; r < t.m.Rows(); r++ {
		row := wRow{}
		if h := t.heights[r]; h > 0 {
			row.Props = &wRowProps{Height: wHeight{Val: h, Rule: "atLeast"}}
		}
		for c := 0; c < t.m.Cols(); {
			reg, _ := t.m.At(r, c)
			row.Cells = append(row.Cells, t.cellXML(reg, r))
			c = reg.Right + 1
		}
		x.Rows = append(x.Rows, row)
	}
	return x
}

// cellXML encodes the slice of reg that lies in row r. Vertically merged
// regions repeat their properties on every row; only the anchor row holds
// the text.
func (t *Table) cellXML(reg *grid.Region, r int) wCell {
	width := 0
	for c := reg.Left; c <= reg.Right; c++ {
		width += t.widths[c]
	}

	cell := wCell{Props: wCellProps{Width: wWidth{W: width, Type: "dxa"}}}
	if span := reg.ColSpan(); span > 1 {
		cell.Props.GridSpan = &wIntVal{Val: span}
	}
	if reg.RowSpan() > 1 {
		if r == reg.Top {
			cell.Props.VMerge = &wOnOff{Val: "restart"}
		} else {
			cell.Props.VMerge = &wOnOff{}
		}
	}
	if fill := reg.Style.Fill; fill != "" {
		cell.Props.Shading = &wShading{Val: "clear", Color: "auto", Fill: fill}
	}
	if va := reg.Style.VAlign; va != "" {
		cell.Props.VAlign = &wVal{Val: string(va)}
	}

	if r == reg.Top {
		cell.Paragraphs = []wParagraph{buildParagraph(reg.Text, reg.Style.Align, reg.Style.Font)}
	} else {
		cell.Paragraphs = []wParagraph{{}}
	}
	return cell
}

// Anchor returns the top-left cell of the region covering (row, col), or
// (row, col) itself when out of range.
func (t *Table) Anchor(row, col int) (int, int) {
	reg, err := t.m.At(row, col)
	if err != nil {
		return row, col
	}
	return reg.Top, reg.Left
}
