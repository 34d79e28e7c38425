// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grid models a fixed-shape table as a matrix of merged regions.
//
// Every coordinate of a merged region points at the same Region; the
// region's top-left coordinate is its anchor and is the only coordinate
// that accepts text. Renderers (docx tables, xlsx sheets) serialize a
// Matrix once all merges, writes and styles have been applied.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

var (
	// ErrOutOfRange is returned for coordinates outside the matrix.
	ErrOutOfRange = errors.New("cell out of range")
	// ErrNotAnchor is returned when text is written to a merged region
	// through a coordinate other than its top-left anchor.
	ErrNotAnchor = errors.New("cell is not the anchor of its region")
	// ErrOverlap is returned when a merge range cuts through an existing region.
	ErrOverlap = errors.New("merge range partially overlaps a merged region")
)

// Region is a rectangular group of cells treated as one logical cell.
// Bounds are inclusive.
type Region struct {
	Top, Left, Bottom, Right int
	Text                     string
	Style                    types.CellStyle
}

// RowSpan returns the number of rows covered by the region.
func (r *Region) RowSpan() int { return r.Bottom - r.Top + 1 }

// ColSpan returns the number of columns covered by the region.
func (r *Region) ColSpan() int { return r.Right - r.Left + 1 }

// IsAnchor reports whether (row, col) is the region's top-left cell.
func (r *Region) IsAnchor(row, col int) bool { return row == r.Top && col == r.Left }

// Matrix is a rows × cols grid of regions. The zero value is not usable;
// create one with New.
type Matrix struct {
	rows, cols int
	cells      [][]*Region
}

// New returns a matrix where every cell is its own 1×1 region.
func New(rows, cols int) *Matrix {
	m := &Matrix{rows: rows, cols: cols, cells: make([][]*Region, rows)}
	for r := range m.cells {
		m.cells[r] = make([]*Region, cols)
		for c := range m.cells[r] {
			m.cells[r][c] = &Region{Top: r, Left: c, Bottom: r, Right: c}
		}
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) check(row, col int) error {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return fmt.Errorf("(%d,%d) in %dx%d grid: %w", row, col, m.rows, m.cols, ErrOutOfRange)
	}
	return nil
}

// At returns the region covering (row, col).
func (m *Matrix) At(row, col int) (*Region, error) {
	if err := m.check(row, col); err != nil {
		return nil, err
	}
	return m.cells[row][col], nil
}

// Merge joins the rectangle spanned by the two corner cells into one
// region. Corners may be given in any order. Regions lying entirely inside
// the rectangle are absorbed and their non-empty text is joined, row-major,
// into the new anchor; a region crossing the rectangle's edge is an error.
func (m *Matrix) Merge(row1, col1, row2, col2 int) (*Region, error) {
	if err := m.check(row1, col1); err != nil {
		return nil, err
	}
	if err := m.check(row2, col2); err != nil {
		return nil, err
	}
	top, bottom := min(row1, row2), max(row1, row2)
	left, right := min(col1, col2), max(col1, col2)

	var (
		seen  = make(map[*Region]bool)
		texts []string
	)
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			reg := m.cells[r][c]
			if seen[reg] {
				continue
			}
			seen[reg] = true
			if reg.Top < top || reg.Bottom > bottom || reg.Left < left || reg.Right > right {
				return nil, fmt.Errorf("merge (%d,%d)-(%d,%d) with (%d,%d)-(%d,%d): %w",
					top, left, bottom, right, reg.Top, reg.Left, reg.Bottom, reg.Right, ErrOverlap)
			}
			if reg.Text != "" {
				texts = append(texts, reg.Text)
			}
		}
	}

	merged := &Region{
		Top: top, Left: left, Bottom: bottom, Right: right,
		Text:  strings.Join(texts, "\n"),
		Style: m.cells[top][left].Style,
	}
	for r := top; r <= bottom; r++ {
		for c := left; c <= right; c++ {
			m.cells[r][c] = merged
		}
	}
	return merged, nil
}

// SetText replaces the text of the region anchored at (row, col).
func (m *Matrix) SetText(row, col int, text string) error {
	reg, err := m.At(row, col)
	if err != nil {
		return err
	}
	if !reg.IsAnchor(row, col) {
		return fmt.Errorf("write to (%d,%d) inside region anchored at (%d,%d): %w",
			row, col, reg.Top, reg.Left, ErrNotAnchor)
	}
	reg.Text = text
	return nil
}

// Text returns the text of the region covering (row, col), or "" when the
// coordinate is out of range.
func (m *Matrix) Text(row, col int) string {
	reg, err := m.At(row, col)
	if err != nil {
		return ""
	}
	return reg.Text
}

// StyleCell overlays s onto the style of the region covering (row, col).
func (m *Matrix) StyleCell(row, col int, s types.CellStyle) error {
	reg, err := m.At(row, col)
	if err != nil {
		return err
	}
	reg.Style.Apply(s)
	return nil
}

// Regions returns every distinct region in row-major order of anchors.
func (m *Matrix) Regions() []*Region {
	var out []*Region
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if reg := m.cells[r][c]; reg.IsAnchor(r, c) {
				out = append(out, reg)
			}
		}
	}
	return out
}
