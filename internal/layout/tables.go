// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"slices"

	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

const (
	headerFill = "1A5F88"
	headerFace = "微软雅黑"
	bodyFace   = "宋体"
)

// Section header labels.
const (
	HeaderBefore     = "课前"
	HeaderDuring     = "课中"
	HeaderAfter      = "课后"
	HeaderReflection = "教学反思"
)

var headerLabels = []string{HeaderBefore, HeaderDuring, HeaderAfter, HeaderReflection}

// titleLabels are the fixed sub-header and row labels of the lesson table.
var titleLabels = []string{
	"教学内容", "教学活动", "学生活动", "教师活动", "设计意图", "教学环节",
	"项目导入", "内容展开", "课堂小结", "教学效果", "诊断改进",
}

// TableBorder is drawn on every edge of both tables.
var TableBorder = types.Border{Style: "single", Size: 12, Color: "auto"}

// HeaderStyle is the style of a painted section header.
func HeaderStyle() types.CellStyle {
	return types.CellStyle{
		Font:  &types.Font{Latin: headerFace, EastAsia: headerFace, SizePt: 16, Bold: true, Color: "FFFFFF"},
		Align: types.AlignCenter,
		Fill:  headerFill,
	}
}

func labelFont() *types.Font { return &types.Font{Latin: bodyFace, EastAsia: bodyFace, SizePt: 12, Bold: true} }
func bodyFont() *types.Font  { return &types.Font{Latin: bodyFace, EastAsia: bodyFace, SizePt: 10.5} }

// MetadataTable is the 10 × 5 table of course facts and objectives.
func MetadataTable() Table {
	heights := make(map[int]float64, 10)
	for r := range 10 {
		heights[r] = 1.5
	}

	regions := []Region{
		{Row: 0, Col: 0, Label: "项目名称"},
		{Row: 0, Col: 1, ColSpan: 4, Key: "项目名称"},
		{Row: 1, Col: 0, Label: "授课类型"},
		{Row: 1, Col: 1, ColSpan: 2, Key: "授课类型"},
		{Row: 1, Col: 3, Key: "授课周次"},
		{Row: 1, Col: 4, Key: "授课学时"},
		{Row: 2, Col: 0, RowSpan: 3, Label: "教学目标"},
	}
	for i, goal := range []string{"知识目标", "能力目标", "素质目标"} {
		regions = append(regions,
			Region{Row: 2 + i, Col: 1, Label: goal + "："},
			Region{Row: 2 + i, Col: 2, ColSpan: 3, Key: goal},
		)
	}
	for i, field := range []string{"学情分析", "教学重点", "教学难点", "教学方法", "教材资源"} {
		regions = append(regions,
			Region{Row: 5 + i, Col: 0, Label: field},
			Region{Row: 5 + i, Col: 1, ColSpan: 4, Key: field},
		)
	}

	return Table{
		Name:     "metadata",
		Rows:     10,
		Cols:     5,
		Widths:   []float64{1.0, 4.5, 7, 4, 3.5},
		Heights:  heights,
		Border:   TableBorder,
		Align:    types.AlignCenter,
		Regions:  regions,
		Classify: classifyMetadata,
	}
}

func classifyMetadata(row, col int, _ string) (types.CellStyle, bool) {
	if col == 0 || (col == 1 && row >= 2 && row <= 4) {
		return types.CellStyle{Font: labelFont()}, true
	}
	return types.CellStyle{Font: bodyFont()}, true
}

// LessonTable is the 18 × 5 table of lesson phases and reflection.
func LessonTable() Table {
	var regions []Region
	header := func(row int, label string) {
		regions = append(regions, Region{Row: row, Col: 0, ColSpan: 5, Label: label, Header: true})
	}
	activities := func(row int, phase string) {
		regions = append(regions,
			Region{Row: row, Col: 2, Key: phase + ":学生活动"},
			Region{Row: row, Col: 3, Key: phase + ":教师活动"},
			Region{Row: row, Col: 4, Key: phase + ":设计意图"},
		)
	}
	// Before and after class share one block shape.
	outOfClass := func(row int, phase string) {
		header(row, phase)
		regions = append(regions,
			Region{Row: row + 1, Col: 0, RowSpan: 2, ColSpan: 2, Label: "教学内容"},
			Region{Row: row + 1, Col: 2, ColSpan: 2, Label: "教学活动"},
			Region{Row: row + 1, Col: 4, RowSpan: 2, Label: "设计意图"},
			Region{Row: row + 2, Col: 2, Label: "学生活动"},
			Region{Row: row + 2, Col: 3, Label: "教师活动"},
			Region{Row: row + 3, Col: 0, ColSpan: 2, Key: phase + ":教学内容"},
		)
		activities(row+3, phase)
	}

	outOfClass(0, HeaderBefore)

	header(4, HeaderDuring)
	regions = append(regions,
		Region{Row: 5, Col: 0, RowSpan: 2, Label: "教学环节"},
		Region{Row: 5, Col: 1, RowSpan: 2, Label: "教学内容"},
		Region{Row: 5, Col: 2, ColSpan: 2, Label: "教学活动"},
		Region{Row: 5, Col: 4, RowSpan: 2, Label: "设计意图"},
		Region{Row: 6, Col: 2, Label: "学生活动"},
		Region{Row: 6, Col: 3, Label: "教师活动"},
	)
	for i, stage := range []string{"项目导入", "内容展开", "课堂小结"} {
		row := 7 + i
		regions = append(regions,
			Region{Row: row, Col: 0, Label: stage},
			Region{Row: row, Col: 1, Key: stage + ":教学内容"},
		)
		activities(row, stage)
	}

	outOfClass(10, HeaderAfter)

	header(14, HeaderReflection)
	regions = append(regions,
		Region{Row: 15, Col: 0, Label: "教学效果"},
		Region{Row: 15, Col: 1, ColSpan: 4, Key: HeaderReflection + ":教学效果"},
		Region{Row: 16, Col: 0, RowSpan: 2, Label: "诊断改进"},
		Region{Row: 16, Col: 1, ColSpan: 4, Key: HeaderReflection + ":诊断"},
		Region{Row: 17, Col: 1, ColSpan: 4, Key: HeaderReflection + ":改进"},
	)

	return Table{
		Name:     "lesson",
		Rows:     18,
		Cols:     5,
		Widths:   []float64{1.0, 14.0, 1.8, 1.2, 2},
		Heights:  map[int]float64{1: 0.6, 2: 1.9, 16: 2, 17: 2},
		Border:   TableBorder,
		Align:    types.AlignCenter,
		Regions:  regions,
		Classify: classifyLesson,
	}
}

func classifyLesson(_, _ int, text string) (types.CellStyle, bool) {
	switch {
	case slices.Contains(headerLabels, text):
		return types.CellStyle{}, false
	case slices.Contains(titleLabels, text):
		return types.CellStyle{Font: labelFont(), Align: types.AlignCenter}, true
	default:
		return types.CellStyle{Font: bodyFont(), Align: types.AlignLeft}, true
	}
}
