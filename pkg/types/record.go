// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one lesson plan.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionPartial ConversionStatus = "partial"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionRecord describes one conversion attempt. Records are kept in
// the history database and exported as YAML or JSON.
type ConversionRecord struct {
	// ID is the database row identifier (zero until stored).
	ID int64 `json:"id" yaml:"id"`

	// InputPath is the markdown lesson plan that was converted.
	InputPath string `json:"input_path" yaml:"input_path"`

	// TemplatePath is the template the output was built on.
	TemplatePath string `json:"template_path" yaml:"template_path"`

	// OutputPath is the generated document (empty on failure before naming).
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// ProjectName is the parsed 项目名称 value.
	ProjectName string `json:"project_name,omitempty" yaml:"project_name,omitempty"`

	// Number is the prefix extracted from the input file name.
	Number string `json:"number,omitempty" yaml:"number,omitempty"`

	// Status is converted when the document was written, partial when the
	// template lacked the retained paragraphs, failed otherwise.
	Status ConversionStatus `json:"status" yaml:"status"`

	// Error holds the failure message for failed conversions.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// Overwrote reports that an existing file at OutputPath was replaced.
	Overwrote bool `json:"overwrote,omitempty" yaml:"overwrote,omitempty"`

	// ConvertedAt is when the conversion finished.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
