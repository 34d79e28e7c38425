// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"github.com/songyongshun/ciit-lesson-plan/internal/docx"
	"github.com/songyongshun/ciit-lesson-plan/internal/logging"
)

// LoadTemplate opens the template at path and trims its body after the
// retain-th paragraph. A template with fewer paragraphs is returned
// untouched with TrimResult.Short set.
func LoadTemplate(path string, retain int) (*docx.Document, docx.TrimResult, error) {
	doc, err := docx.Open(path)
	if err != nil {
		return nil, docx.TrimResult{}, err
	}
	res := doc.TrimAfterParagraph(retain)
	if res.Short {
		logging.Logger().Warn("template has fewer paragraphs than retained, keeping whole body",
			"template", path, "paragraphs", res.Paragraphs, "retain", retain)
	} else {
		logging.Logger().Debug("template trimmed", "template", path, "removed", res.Removed)
	}
	return doc, res, nil
}
