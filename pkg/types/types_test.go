// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestWithDefaults(t *testing.T) {
	got := ConversionConfig{}.WithDefaults()
	assert.Equal(t, DefaultTemplate, got.TemplatePath)
	assert.Equal(t, ".", got.OutputDir)
	assert.Equal(t, DefaultRetainParagraphs, got.RetainParagraphs)
	assert.Equal(t, DefaultNamePattern, got.NamePattern)

	set := ConversionConfig{TemplatePath: "t.docx", OutputDir: "out", RetainParagraphs: 3, NamePattern: "base"}
	assert.Equal(t, set, set.WithDefaults())
}

func TestConversionConfig_YAML(t *testing.T) {
	var cfg ConversionConfig
	require.NoError(t, yaml.Unmarshal([]byte(`
template: school.docx
output_dir: out
retain_paragraphs: 12
workbook: true
history: lessonplan.db
`), &cfg))
	assert.Equal(t, "school.docx", cfg.TemplatePath)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 12, cfg.RetainParagraphs)
	assert.True(t, cfg.Workbook)
	assert.Equal(t, "lessonplan.db", cfg.HistoryPath)
}

func TestCellStyle_Apply(t *testing.T) {
	font := &Font{Latin: "宋体", SizePt: 12, Bold: true}
	s := CellStyle{VAlign: VAlignCenter}
	s.Apply(CellStyle{Font: font, Align: AlignLeft})
	s.Apply(CellStyle{Fill: "1A5F88"})

	assert.Equal(t, VAlignCenter, s.VAlign)
	assert.Equal(t, AlignLeft, s.Align)
	assert.Equal(t, "1A5F88", s.Fill)
	require.NotNil(t, s.Font)
	assert.Equal(t, *font, *s.Font)

	font.Bold = false
	assert.True(t, s.Font.Bold, "Apply copies the font")
}
