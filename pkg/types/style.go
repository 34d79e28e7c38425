// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// HAlign is a horizontal paragraph alignment.
type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

// VAlign is a vertical cell alignment.
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignCenter VAlign = "center"
	VAlignBottom VAlign = "bottom"
)

// Font describes run formatting. Latin and EastAsia name the fonts used for
// the two script slots; CJK text falls back to a default face when EastAsia
// is empty.
type Font struct {
	Latin    string
	EastAsia string
	SizePt   float64
	Bold     bool
	// Color is an RGB hex string without '#', empty for automatic.
	Color string
}

// CellStyle is the formatting applied to a table cell. Zero fields leave
// the current value unchanged.
type CellStyle struct {
	Font   *Font
	Align  HAlign
	VAlign VAlign
	// Fill is an RGB hex background color without '#'.
	Fill string
}

// Apply overlays the non-zero fields of o onto s.
func (s *CellStyle) Apply(o CellStyle) {
	if o.Font != nil {
		f := *o.Font
		s.Font = &f
	}
	if o.Align != "" {
		s.Align = o.Align
	}
	if o.VAlign != "" {
		s.VAlign = o.VAlign
	}
	if o.Fill != "" {
		s.Fill = o.Fill
	}
}

// Border is a line drawn on every outer and inner table edge.
type Border struct {
	// Style is the OOXML border style, e.g. "single".
	Style string
	// Size is the line width in eighths of a point.
	Size int
	// Color is an RGB hex string or "auto".
	Color string
}
