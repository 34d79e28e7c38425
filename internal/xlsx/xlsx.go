// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xlsx renders lesson-plan tables into an .xlsx workbook, one sheet
// per table. Sheets satisfy layout.Grid, so the same region tables that
// build the .docx output build the workbook.
package xlsx

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/songyongshun/ciit-lesson-plan/internal/grid"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

const (
	// charsPerCm approximates Excel's default character width (7 px at 96 dpi).
	charsPerCm  = 96 / 2.54 / 7
	pointsPerCm = 72 / 2.54

	// mediumBorder is excelize's continuous weight-2 line, the nearest
	// match to a 1.5 pt rule.
	mediumBorder = 2
	defaultSheet = "Sheet1"
)

// Workbook collects sheets until SaveAs writes them.
type Workbook struct {
	f      *excelize.File
	sheets []*Sheet
}

// New returns an empty workbook.
func New() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

// AddSheet appends a rows × cols sheet named name.
func (w *Workbook) AddSheet(name string, rows, cols int) (*Sheet, error) {
	if len(w.sheets) == 0 {
		if err := w.f.SetSheetName(defaultSheet, name); err != nil {
			return nil, fmt.Errorf("naming sheet %q: %w", name, err)
		}
	} else if _, err := w.f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("adding sheet %q: %w", name, err)
	}
	s := &Sheet{
		name:    name,
		m:       grid.New(rows, cols),
		widths:  make([]float64, cols),
		heights: make([]float64, rows),
	}
	w.sheets = append(w.sheets, s)
	return s, nil
}

// SaveAs renders every sheet and writes the workbook to path.
func (w *Workbook) SaveAs(path string) error {
	for _, s := range w.sheets {
		if err := s.render(w.f); err != nil {
			return fmt.Errorf("rendering sheet %q: %w", s.name, err)
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheet is one table of the workbook.
type Sheet struct {
	name    string
	m       *grid.Matrix
	widths  []float64
	heights []float64
	border  *types.Border
}

// SetColumnWidth sets the width of col in centimetres.
func (s *Sheet) SetColumnWidth(col int, cm float64) error {
	if col < 0 || col >= len(s.widths) {
		return fmt.Errorf("column %d: %w", col, grid.ErrOutOfRange)
	}
	s.widths[col] = cm
	return nil
}

// SetRowHeight sets the height of row in centimetres.
func (s *Sheet) SetRowHeight(row int, cm float64) error {
	if row < 0 || row >= len(s.heights) {
		return fmt.Errorf("row %d: %w", row, grid.ErrOutOfRange)
	}
	s.heights[row] = cm
	return nil
}

// SetBorders outlines every region with b.
func (s *Sheet) SetBorders(b types.Border) { s.border = &b }

// Merge joins the rectangle between the two corner cells.
func (s *Sheet) Merge(row1, col1, row2, col2 int) error {
	_, err := s.m.Merge(row1, col1, row2, col2)
	return err
}

// SetText writes text to the anchor of a region.
func (s *Sheet) SetText(row, col int, text string) error { return s.m.SetText(row, col, text) }

// Text returns the text of the region covering (row, col).
func (s *Sheet) Text(row, col int) string { return s.m.Text(row, col) }

// StyleCell overlays st onto the region covering (row, col).
func (s *Sheet) StyleCell(row, col int, st types.CellStyle) error { return s.m.StyleCell(row, col, st) }

// Anchor returns the top-left cell of the region covering (row, col).
func (s *Sheet) Anchor(row, col int) (int, int) {
	reg, err := s.m.At(row, col)
	if err != nil {
		return row, col
	}
	return reg.Top, reg.Left
}

func cellName(row, col int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row+1)
	return name
}

func (s *Sheet) render(f *excelize.File) error {
	for c, cm := range s.widths {
		if cm <= 0 {
			continue
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(s.name, col, col, math.Round(cm*charsPerCm*100)/100); err != nil {
			return err
		}
	}
	for r, cm := range s.heights {
		if cm <= 0 {
			continue
		}
		if err := f.SetRowHeight(s.name, r+1, math.Round(cm*pointsPerCm*100)/100); err != nil {
			return err
		}
	}

	for _, reg := range s.m.Regions() {
		topLeft, bottomRight := cellName(reg.Top, reg.Left), cellName(reg.Bottom, reg.Right)
		if topLeft != bottomRight {
			if err := f.MergeCell(s.name, topLeft, bottomRight); err != nil {
				return err
			}
		}
		if reg.Text != "" {
			if err := f.SetCellValue(s.name, topLeft, reg.Text); err != nil {
				return err
			}
		}
		styleID, err := f.NewStyle(s.style(reg))
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.name, topLeft, bottomRight, styleID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sheet) style(reg *grid.Region) *excelize.Style {
	st := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: string(reg.Style.Align),
			Vertical:   string(reg.Style.VAlign),
			WrapText:   true,
		},
	}
	if f := reg.Style.Font; f != nil {
		family := f.EastAsia
		if family == "" {
			family = f.Latin
		}
		st.Font = &excelize.Font{Bold: f.Bold, Size: f.SizePt, Family: family, Color: f.Color}
	}
	if reg.Style.Fill != "" {
		st.Fill = excelize.Fill{Type: "pattern", Color: []string{reg.Style.Fill}, Pattern: 1}
	}
	if s.border != nil && s.border.Style != "" {
		color := s.border.Color
		if color == "auto" {
			color = "000000"
		}
		for _, side := range []string{"left", "top", "right", "bottom"} {
			st.Border = append(st.Border, excelize.Border{Type: side, Color: color, Style: mediumBorder})
		}
	}
	return st
}
