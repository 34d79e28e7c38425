// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"encoding/xml"
	"math"
	"strings"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// Paragraph is a body paragraph made of a single run.
type Paragraph struct {
	Text  string
	Align types.HAlign
	Font  *types.Font
}

func (p Paragraph) xml() wParagraph {
	return buildParagraph(p.Text, p.Align, p.Font)
}

// buildParagraph encodes text as one run; newlines become w:br.
func buildParagraph(text string, align types.HAlign, font *types.Font) wParagraph {
	wp := wParagraph{}
	if align != "" {
		wp.Props = &wParagraphProps{Justify: &wVal{Val: string(align)}}
	}
	if text == "" {
		return wp
	}

	run := wRun{Props: runProps(font)}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			run.Items = append(run.Items, wRunItem{XMLName: xml.Name{Local: "w:br"}})
		}
		if line == "" {
			continue
		}
		run.Items = append(run.Items, wRunItem{
			XMLName: xml.Name{Local: "w:t"},
			Space:   "preserve",
			Text:    line,
		})
	}
	wp.Runs = []wRun{run}
	return wp
}

func runProps(f *types.Font) *wRunProps {
	if f == nil {
		return nil
	}
	rp := &wRunProps{}
	if f.Latin != "" || f.EastAsia != "" {
		rp.Fonts = &wFonts{ASCII: f.Latin, HAnsi: f.Latin, EastAsia: f.EastAsia}
	}
	if f.Bold {
		rp.Bold, rp.BoldCS = &wOnOff{}, &wOnOff{}
	} else {
		rp.Bold, rp.BoldCS = &wOnOff{Val: "0"}, &wOnOff{Val: "0"}
	}
	if f.Color != "" {
		rp.Color = &wVal{Val: f.Color}
	}
	if f.SizePt > 0 {
		hp := halfPoints(f.SizePt)
		rp.Size, rp.SizeCS = &wIntVal{Val: hp}, &wIntVal{Val: hp}
	}
	return rp
}

// halfPoints converts a font size in points to OOXML half-points.
func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}
