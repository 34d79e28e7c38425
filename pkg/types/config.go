// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

const (
	// DefaultTemplate is the template path used when none is configured.
	DefaultTemplate = "template.docx"

	// DefaultRetainParagraphs is the number of leading template paragraphs
	// kept when the template body is trimmed.
	DefaultRetainParagraphs = 17

	// DefaultNamePattern builds the output file stem from the number
	// extracted from the input name and the parsed project name.
	DefaultNamePattern = `number + "-" + project + "-教案"`
)

// ConversionConfig holds settings for converting markdown lesson plans
// into documents.
type ConversionConfig struct {
	// TemplatePath is the .docx file whose leading paragraphs frame the output.
	TemplatePath string `json:"template" yaml:"template" mapstructure:"template"`

	// OutputDir is the directory that receives generated documents.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// RetainParagraphs is the number of template paragraphs kept before the
	// generated tables (default 17).
	RetainParagraphs int `json:"retain_paragraphs" yaml:"retain_paragraphs" mapstructure:"retain_paragraphs"`

	// NamePattern is an expression evaluated to the output file stem. It
	// sees the variables number, project and base.
	NamePattern string `json:"name_pattern" yaml:"name_pattern" mapstructure:"name_pattern"`

	// PreparedOn replaces the date text of the trailing "制订时间" line.
	// Empty derives it from the current month.
	PreparedOn string `json:"prepared_on,omitempty" yaml:"prepared_on,omitempty" mapstructure:"prepared_on"`

	// Workbook also writes an .xlsx rendition of both tables next to the document.
	Workbook bool `json:"workbook" yaml:"workbook" mapstructure:"workbook"`

	// FailFast stops a batch at the first failed input.
	FailFast bool `json:"fail_fast" yaml:"fail_fast" mapstructure:"fail_fast"`

	// HistoryPath is the SQLite database recording conversions. Empty disables it.
	HistoryPath string `json:"history,omitempty" yaml:"history,omitempty" mapstructure:"history"`
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c ConversionConfig) WithDefaults() ConversionConfig {
	if c.TemplatePath == "" {
		c.TemplatePath = DefaultTemplate
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	if c.RetainParagraphs <= 0 {
		c.RetainParagraphs = DefaultRetainParagraphs
	}
	if c.NamePattern == "" {
		c.NamePattern = DefaultNamePattern
	}
	return c
}
