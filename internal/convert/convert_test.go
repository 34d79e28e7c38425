// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/songyongshun/ciit-lesson-plan/internal/docx"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

const samplePlan = `# 项目名称
智能小车
# 授课类型
理实一体
# 知识目标
掌握电机驱动原理
## 课前:教学内容
预习资料
## 项目导入:学生活动
分组讨论
### 教学反思:改进
放慢节奏
`

// --- test helpers ---

// writeTemplate saves a template with n numbered paragraphs and one table
// after the last of them.
func writeTemplate(t *testing.T, dir string, n int) string {
	t.Helper()
	doc, err := docx.New()
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= n; i++ {
		if err := doc.AppendParagraph(docx.Paragraph{Text: fmt.Sprintf("模板段落 %d", i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := doc.AppendTable(docx.NewTable(2, 2)); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "template.docx")
	if err := doc.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func fixClock(t *testing.T) {
	t.Helper()
	saved := now
	now = func() time.Time { return time.Date(2025, 9, 15, 10, 0, 0, 0, time.Local) }
	t.Cleanup(func() { now = saved })
}

// --- tests ---

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := writeTemplate(t, dir, 20)

	doc, res, err := LoadTemplate(path, 17)
	if err != nil {
		t.Fatal(err)
	}
	if res.Short {
		t.Error("template should not be short")
	}
	if res.Removed != 4 {
		t.Errorf("removed = %d, want 4 (3 paragraphs and 1 table)", res.Removed)
	}
	ps, err := doc.Paragraphs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ps) != 17 || ps[16].Text != "模板段落 17" {
		t.Errorf("kept %d paragraphs, last %q", len(ps), ps[len(ps)-1].Text)
	}
}

func TestLoadTemplate_Short(t *testing.T) {
	path := writeTemplate(t, t.TempDir(), 5)
	doc, res, err := LoadTemplate(path, 17)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Short || res.Removed != 0 {
		t.Errorf("short template: %+v", res)
	}
	tables, err := doc.Tables()
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 {
		t.Errorf("short template should keep its table, got %d", len(tables))
	}
}

func TestLoadTemplate_Missing(t *testing.T) {
	_, _, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.docx"), 17)
	if err == nil || !strings.Contains(err.Error(), "missing.docx") {
		t.Errorf("error should name the template, got %v", err)
	}
}

func TestConvertFile_EndToEnd(t *testing.T) {
	fixClock(t)
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, 18)
	md := writeFile(t, filepath.Join(dir, "Unit-07.md"), samplePlan)
	outDir := filepath.Join(dir, "out")

	out, err := ConvertFile(tmpl, md, outDir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(outDir, "07-智能小车-教案.docx"); out != want {
		t.Errorf("output = %s, want %s", out, want)
	}

	doc, err := docx.Open(out)
	if err != nil {
		t.Fatal(err)
	}

	var kinds []docx.ElementKind
	for _, el := range doc.Body() {
		kinds = append(kinds, el.Kind)
	}
	n := len(kinds)
	if n != 17+2+2+1 {
		t.Fatalf("body has %d elements: %v", n, kinds)
	}
	wantTail := []docx.ElementKind{docx.KindTable, docx.KindTable, docx.KindParagraph, docx.KindParagraph, docx.KindSectionProperties}
	for i, k := range wantTail {
		if kinds[n-len(wantTail)+i] != k {
			t.Errorf("tail[%d] = %s, want %s", i, kinds[n-len(wantTail)+i], k)
		}
	}

	tables, err := doc.Tables()
	if err != nil {
		t.Fatal(err)
	}
	meta, lesson := tables[0], tables[1]
	if meta.Rows() != 10 || lesson.Rows() != 18 {
		t.Fatalf("table rows = %d, %d", meta.Rows(), lesson.Rows())
	}
	for col := 1; col <= 4; col++ {
		if got := meta.Cell(0, col).Text; got != "智能小车" {
			t.Errorf("meta (0,%d) = %q", col, got)
		}
	}
	if got := meta.Cell(1, 2).Text; got != "理实一体" {
		t.Errorf("meta (1,2) = %q", got)
	}
	if got := lesson.Cell(3, 1).Text; got != "预习资料" {
		t.Errorf("lesson (3,1) = %q", got)
	}
	if got := lesson.Cell(7, 2).Text; got != "分组讨论" {
		t.Errorf("lesson (7,2) = %q", got)
	}
	if got := lesson.Cell(17, 3).Text; got != "放慢节奏" {
		t.Errorf("lesson (17,3) = %q", got)
	}
	if got := lesson.Cell(15, 1).Text; got != "" {
		t.Errorf("missing key should bind empty text, got %q", got)
	}

	ps, err := doc.Paragraphs()
	if err != nil {
		t.Fatal(err)
	}
	last := ps[len(ps)-1]
	if last.Text != "制订时间: 2025 年 9 月" {
		t.Errorf("prepared line = %q", last.Text)
	}
	if last.Align != types.AlignRight || last.Font != "Calibri" || last.EastAsia != "宋体" || last.SizePt != 10.5 {
		t.Errorf("prepared line format = %+v", last)
	}
	if ps[len(ps)-2].Text != "" {
		t.Errorf("expected empty spacer paragraph, got %q", ps[len(ps)-2].Text)
	}
}

func TestConvert_ConfiguredOptions(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, 17)
	md := writeFile(t, filepath.Join(dir, "lesson-.md"), "\ufeff# 授课类型\n讲授\n")

	c := New(types.ConversionConfig{
		TemplatePath: tmpl,
		OutputDir:    dir,
		NamePattern:  `base + "_" + number`,
		PreparedOn:   "2024 年 3 月",
		Workbook:     true,
	})
	res, err := c.Convert(md)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != types.ConversionDone {
		t.Errorf("status = %s", res.Status)
	}
	if res.Number != "1" || res.ProjectName != "" {
		t.Errorf("number %q project %q", res.Number, res.ProjectName)
	}
	if filepath.Base(res.OutputPath) != "lesson-_1.docx" {
		t.Errorf("output = %s", res.OutputPath)
	}

	doc, err := docx.Open(res.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	ps, err := doc.Paragraphs()
	if err != nil {
		t.Fatal(err)
	}
	if got := ps[len(ps)-1].Text; got != "制订时间: 2024 年 3 月" {
		t.Errorf("prepared line = %q", got)
	}

	wb, err := excelize.OpenFile(res.WorkbookPath)
	if err != nil {
		t.Fatal(err)
	}
	defer wb.Close()
	got, err := wb.GetCellValue("metadata", "B2")
	if err != nil {
		t.Fatal(err)
	}
	if got != "讲授" {
		t.Errorf("workbook B2 = %q", got)
	}
}

func TestConvert_ShortTemplateIsPartial(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, 3)
	md := writeFile(t, filepath.Join(dir, "a.md"), samplePlan)

	res, err := New(types.ConversionConfig{TemplatePath: tmpl, OutputDir: dir}).Convert(md)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != types.ConversionPartial || !res.Trim.Short {
		t.Errorf("result = %+v", res)
	}
}

func TestConvert_Overwrite(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, 17)
	md := writeFile(t, filepath.Join(dir, "Unit-01.md"), samplePlan)
	c := New(types.ConversionConfig{TemplatePath: tmpl, OutputDir: dir})

	first, err := c.Convert(md)
	if err != nil {
		t.Fatal(err)
	}
	if first.Overwrote {
		t.Error("first conversion should not overwrite")
	}
	second, err := c.Convert(md)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Overwrote || second.OutputPath != first.OutputPath {
		t.Errorf("second conversion = %+v", second)
	}
}

func TestConvert_Errors(t *testing.T) {
	dir := t.TempDir()
	tmpl := writeTemplate(t, dir, 17)

	tests := []struct {
		name    string
		cfg     types.ConversionConfig
		input   string
		wantMsg string
	}{
		{
			name:    "missing template",
			cfg:     types.ConversionConfig{TemplatePath: filepath.Join(dir, "none.docx"), OutputDir: dir},
			input:   writeFile(t, filepath.Join(dir, "ok.md"), samplePlan),
			wantMsg: "none.docx",
		},
		{
			name:    "missing markdown",
			cfg:     types.ConversionConfig{TemplatePath: tmpl, OutputDir: dir},
			input:   filepath.Join(dir, "absent.md"),
			wantMsg: "absent.md",
		},
		{
			name:    "empty output name",
			cfg:     types.ConversionConfig{TemplatePath: tmpl, OutputDir: dir, NamePattern: `project`},
			input:   writeFile(t, filepath.Join(dir, "noname.md"), "# 授课类型\nx\n"),
			wantMsg: "output name is empty",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(tt.cfg).Convert(tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should contain %q", err, tt.wantMsg)
			}
			if res.Status != types.ConversionFailed {
				t.Errorf("status = %s", res.Status)
			}
		})
	}
}

func TestPreparedParagraph(t *testing.T) {
	p := PreparedParagraph("", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	if p.Text != "制订时间: 2026 年 1 月" {
		t.Errorf("text = %q", p.Text)
	}
	if p := PreparedParagraph("2025 年 9 月", time.Time{}); p.Text != "制订时间: 2025 年 9 月" {
		t.Errorf("text = %q", p.Text)
	}
}

// --- batch ---

// fakeConverter returns canned results per input path.
type fakeConverter struct {
	results map[string]Result
	errors  map[string]error
	calls   []string
}

func (f *fakeConverter) Convert(path string) (Result, error) {
	f.calls = append(f.calls, path)
	if err, ok := f.errors[path]; ok {
		return Result{InputPath: path, Status: types.ConversionFailed}, err
	}
	return f.results[path], nil
}

type memRecorder struct {
	records []types.ConversionRecord
}

func (m *memRecorder) Record(_ context.Context, rec types.ConversionRecord) (types.ConversionRecord, error) {
	rec.ID = int64(len(m.records) + 1)
	m.records = append(m.records, rec)
	return rec, nil
}

func newFake() *fakeConverter {
	return &fakeConverter{
		results: map[string]Result{
			"a.md": {InputPath: "a.md", OutputPath: "out/a.docx", Status: types.ConversionDone},
			"c.md": {InputPath: "c.md", OutputPath: "out/c.docx", Status: types.ConversionPartial},
		},
		errors: map[string]error{"b.md": errors.New("bad markdown")},
	}
}

func TestConvertBatch(t *testing.T) {
	conv := newFake()
	rec := &memRecorder{}
	var log bytes.Buffer

	result := ConvertBatch(context.Background(), conv, []string{"a.md", "b.md", "c.md"}, &log,
		BatchOptions{TemplatePath: "template.docx", Recorder: rec})

	if result.Converted != 1 || result.Failed != 1 || result.Partial != 1 || result.Skipped != 0 {
		t.Errorf("result = %+v", result)
	}
	if !result.HasFailures() || result.Total() != 3 {
		t.Errorf("HasFailures=%v Total=%d", result.HasFailures(), result.Total())
	}

	output := log.String()
	for _, want := range []string{"converted: a.md -> out/a.docx", "failed:    b.md (bad markdown)", "partial:   c.md", "Batch summary:"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	if len(rec.records) != 3 {
		t.Fatalf("recorded %d, want 3", len(rec.records))
	}
	if rec.records[1].Status != types.ConversionFailed || rec.records[1].Error != "bad markdown" {
		t.Errorf("failed record = %+v", rec.records[1])
	}
	if rec.records[0].TemplatePath != "template.docx" {
		t.Errorf("template not recorded: %+v", rec.records[0])
	}
}

func TestConvertBatch_FailFast(t *testing.T) {
	conv := newFake()
	var log bytes.Buffer
	result := ConvertBatch(context.Background(), conv, []string{"b.md", "a.md", "c.md"}, &log,
		BatchOptions{FailFast: true})

	if result.Failed != 1 || result.Skipped != 2 || result.Converted != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(conv.calls) != 1 {
		t.Errorf("converter called %d times, want 1", len(conv.calls))
	}
}

func TestConvertBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	conv := newFake()
	var log bytes.Buffer
	result := ConvertBatch(ctx, conv, []string{"a.md", "c.md"}, &log, BatchOptions{})
	if result.Skipped != 2 || len(conv.calls) != 0 {
		t.Errorf("result = %+v, calls = %v", result, conv.calls)
	}
}

func TestCollectInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.md", "a.MD", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name), "")
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := CollectInputs([]string{"single.md", dir})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"single.md", filepath.Join(dir, "a.MD"), filepath.Join(dir, "b.md")}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %v, want %v", got, want)
	}
}
