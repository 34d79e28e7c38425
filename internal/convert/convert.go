// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns markdown lesson plans into documents built on a
// template. Each input gets a freshly loaded template; nothing is shared
// between conversions.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/songyongshun/ciit-lesson-plan/internal/docx"
	"github.com/songyongshun/ciit-lesson-plan/internal/layout"
	"github.com/songyongshun/ciit-lesson-plan/internal/logging"
	"github.com/songyongshun/ciit-lesson-plan/internal/markdown"
	"github.com/songyongshun/ciit-lesson-plan/internal/naming"
	"github.com/songyongshun/ciit-lesson-plan/internal/xlsx"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// ProjectKey is the section holding the project name used in output names.
const ProjectKey = "项目名称"

const preparedLabel = "制订时间: "

// now is replaced in tests.
var now = time.Now

// Converter converts one markdown lesson plan.
type Converter interface {
	Convert(markdownPath string) (Result, error)
}

// Result describes a finished conversion.
type Result struct {
	InputPath    string
	OutputPath   string
	WorkbookPath string
	Number       string
	ProjectName  string
	Status       types.ConversionStatus
	Overwrote    bool
	Trim         docx.TrimResult
}

// Tables returns the tables every lesson plan contains, in document order.
func Tables() []layout.Table {
	return []layout.Table{layout.MetadataTable(), layout.LessonTable()}
}

// DocxConverter builds lesson-plan documents from a template.
type DocxConverter struct {
	cfg types.ConversionConfig
}

// New returns a converter for cfg with defaults applied.
func New(cfg types.ConversionConfig) *DocxConverter {
	return &DocxConverter{cfg: cfg.WithDefaults()}
}

// ConvertFile converts markdownPath with the default settings and returns
// the path of the written document.
func ConvertFile(templatePath, markdownPath, outputDir string) (string, error) {
	res, err := New(types.ConversionConfig{
		TemplatePath: templatePath,
		OutputDir:    outputDir,
	}).Convert(markdownPath)
	if err != nil {
		return "", err
	}
	return res.OutputPath, nil
}

// Convert loads the template, parses markdownPath, appends both tables and
// the prepared-on line, and saves the document under the configured
// output directory.
func (c *DocxConverter) Convert(markdownPath string) (Result, error) {
	res := Result{InputPath: markdownPath, Status: types.ConversionFailed}

	doc, trim, err := LoadTemplate(c.cfg.TemplatePath, c.cfg.RetainParagraphs)
	if err != nil {
		return res, fmt.Errorf("loading template: %w", err)
	}
	res.Trim = trim

	sections, err := markdown.ReadFile(markdownPath)
	if err != nil {
		return res, err
	}
	logMissing(markdownPath, sections)

	for _, tbl := range Tables() {
		g := docx.NewTable(tbl.Rows, tbl.Cols)
		if err := layout.Render(g, tbl, sections); err != nil {
			return res, fmt.Errorf("building %s table: %w", tbl.Name, err)
		}
		if err := doc.AppendTable(g); err != nil {
			return res, err
		}
	}
	if err := doc.AppendParagraph(docx.Paragraph{}); err != nil {
		return res, err
	}
	if err := doc.AppendParagraph(PreparedParagraph(c.cfg.PreparedOn, now())); err != nil {
		return res, err
	}

	res.ProjectName = sections.Get(ProjectKey)
	res.Number = naming.Number(markdownPath)
	stem, err := naming.Derive(c.cfg.NamePattern, markdownPath, res.ProjectName)
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(c.cfg.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("creating output directory %s: %w", c.cfg.OutputDir, err)
	}
	res.OutputPath = filepath.Join(c.cfg.OutputDir, stem+".docx")
	if _, err := os.Stat(res.OutputPath); err == nil {
		res.Overwrote = true
		logging.Logger().Warn("overwriting existing output", "output", res.OutputPath, "input", markdownPath)
	}
	if err := doc.Save(res.OutputPath); err != nil {
		return res, err
	}

	if c.cfg.Workbook {
		res.WorkbookPath = filepath.Join(c.cfg.OutputDir, stem+".xlsx")
		if err := writeWorkbook(res.WorkbookPath, sections); err != nil {
			return res, err
		}
	}

	res.Status = types.ConversionDone
	if trim.Short {
		res.Status = types.ConversionPartial
	}
	return res, nil
}

// PreparedParagraph is the right-aligned closing line. An empty date is
// derived from t as "YYYY 年 M 月".
func PreparedParagraph(date string, t time.Time) docx.Paragraph {
	if date == "" {
		date = fmt.Sprintf("%d 年 %d 月", t.Year(), int(t.Month()))
	}
	return docx.Paragraph{
		Text:  preparedLabel + date,
		Align: types.AlignRight,
		Font:  &types.Font{Latin: "Calibri", EastAsia: "宋体", SizePt: 10.5},
	}
}

func logMissing(path string, sections markdown.Sections) {
	for _, tbl := range Tables() {
		for _, key := range tbl.Keys() {
			if _, ok := sections.Lookup(key); !ok {
				logging.Logger().Debug("section missing, cell left empty", "input", path, "key", key)
			}
		}
	}
}

func writeWorkbook(path string, sections markdown.Sections) error {
	wb := xlsx.New()
	defer wb.Close()
	for _, tbl := range Tables() {
		sheet, err := wb.AddSheet(tbl.Name, tbl.Rows, tbl.Cols)
		if err != nil {
			return err
		}
		if err := layout.Render(sheet, tbl, sections); err != nil {
			return fmt.Errorf("building %s sheet: %w", tbl.Name, err)
		}
	}
	return wb.SaveAs(path)
}
