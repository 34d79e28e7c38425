// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout declares the fixed tables of a lesson plan and applies
// them to a grid.
//
// A Table is a list of regions. Each region is merged, optionally labelled
// and optionally bound to a section key. Build lays out structure and
// labels, Bind fills keyed regions from parsed sections, and Style runs a
// single classification pass over the finished text. The same descriptor
// drives both the .docx table and the workbook sheet.
package layout

import (
	"fmt"
	"strings"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// Grid is the surface a table is laid out on.
type Grid interface {
	Merge(row1, col1, row2, col2 int) error
	SetText(row, col int, text string) error
	Text(row, col int) string
	StyleCell(row, col int, s types.CellStyle) error
	SetColumnWidth(col int, cm float64) error
	SetRowHeight(row int, cm float64) error
	SetBorders(b types.Border)
	// Anchor returns the top-left cell of the region covering (row, col).
	Anchor(row, col int) (int, int)
}

// aligner is implemented by grids that can be positioned on the page.
type aligner interface {
	SetTableAlignment(a types.HAlign)
}

// Values supplies content for keyed regions. Missing keys yield "".
type Values interface {
	Get(key string) string
}

// Region is one logical cell of a table. A zero span counts as one.
type Region struct {
	Row, Col         int
	RowSpan, ColSpan int
	// Label is fixed text written at build time.
	Label string
	// Key names the section whose value is bound into the region.
	Key string
	// Header marks a section header painted with PaintHeader.
	Header bool
}

func (r Region) bottom() int { return r.Row + max(r.RowSpan, 1) - 1 }
func (r Region) right() int  { return r.Col + max(r.ColSpan, 1) - 1 }

// Classifier returns the style of the region anchored at (row, col) given
// its trimmed text. A false result leaves the region unstyled.
type Classifier func(row, col int, text string) (types.CellStyle, bool)

// Table describes a fixed-shape table.
type Table struct {
	Name     string
	Rows     int
	Cols     int
	Widths   []float64
	Heights  map[int]float64
	Border   types.Border
	Align    types.HAlign
	Regions  []Region
	Classify Classifier
}

// Keys returns the section keys bound by the table in region order.
func (t Table) Keys() []string {
	var keys []string
	for _, r := range t.Regions {
		if r.Key != "" {
			keys = append(keys, r.Key)
		}
	}
	return keys
}

// Build applies widths, heights, borders, merges and labels to g.
func Build(g Grid, t Table) error {
	for c, w := range t.Widths {
		if err := g.SetColumnWidth(c, w); err != nil {
			return fmt.Errorf("%s: %w", t.Name, err)
		}
	}
	for r, h := range t.Heights {
		if err := g.SetRowHeight(r, h); err != nil {
			return fmt.Errorf("%s: %w", t.Name, err)
		}
	}
	g.SetBorders(t.Border)
	if a, ok := g.(aligner); ok && t.Align != "" {
		a.SetTableAlignment(t.Align)
	}

	for _, reg := range t.Regions {
		apply := place
		if reg.Header {
			apply = paintHeader
		}
		if err := apply(g, reg); err != nil {
			return fmt.Errorf("%s: region (%d,%d): %w", t.Name, reg.Row, reg.Col, err)
		}
	}
	return nil
}

func place(g Grid, reg Region) error {
	if reg.bottom() != reg.Row || reg.right() != reg.Col {
		if err := g.Merge(reg.Row, reg.Col, reg.bottom(), reg.right()); err != nil {
			return err
		}
	}
	if reg.Label != "" {
		return g.SetText(reg.Row, reg.Col, reg.Label)
	}
	return nil
}

func paintHeader(g Grid, reg Region) error { return PaintHeader(g, reg, reg.Label) }

// PaintHeader merges reg, writes label into it and paints it as a section
// header.
func PaintHeader(g Grid, reg Region, label string) error {
	if err := place(g, Region{Row: reg.Row, Col: reg.Col, RowSpan: reg.RowSpan, ColSpan: reg.ColSpan}); err != nil {
		return err
	}
	if err := g.SetText(reg.Row, reg.Col, label); err != nil {
		return err
	}
	return g.StyleCell(reg.Row, reg.Col, HeaderStyle())
}

// Bind writes the value of every keyed region to its anchor. It never
// merges or removes cells.
func Bind(g Grid, t Table, v Values) error {
	for _, reg := range t.Regions {
		if reg.Key == "" {
			continue
		}
		if err := g.SetText(reg.Row, reg.Col, v.Get(reg.Key)); err != nil {
			return fmt.Errorf("%s: bind %s: %w", t.Name, reg.Key, err)
		}
	}
	return nil
}

// Style centres every region vertically and applies the table's
// classifier to each region once, at its anchor.
func Style(g Grid, t Table) error {
	for r := 0; r < t.Rows; r++ {
		for c := 0; c < t.Cols; c++ {
			if ar, ac := g.Anchor(r, c); ar != r || ac != c {
				continue
			}
			if err := g.StyleCell(r, c, types.CellStyle{VAlign: types.VAlignCenter}); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
			if t.Classify == nil {
				continue
			}
			s, ok := t.Classify(r, c, strings.TrimSpace(g.Text(r, c)))
			if !ok {
				continue
			}
			if err := g.StyleCell(r, c, s); err != nil {
				return fmt.Errorf("%s: %w", t.Name, err)
			}
		}
	}
	return nil
}

// Render builds, binds and styles t on g.
func Render(g Grid, t Table, v Values) error {
	if err := Build(g, t); err != nil {
		return err
	}
	if err := Bind(g, t, v); err != nil {
		return err
	}
	return Style(g, t)
}
