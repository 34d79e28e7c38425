//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main contains Mage build targets for lessonplan developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/songyongshun/ciit-lesson-plan/internal/convert"
	"github.com/songyongshun/ciit-lesson-plan/internal/docx"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

const (
	binDir  = "bin"
	binName = "lessonplan"
	cmdPkg  = "./cmd/lessonplan"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Check vets the code and runs the tests.
func Check() error {
	mg.Deps(Test)
	return sh.RunV("go", "vet", "./...")
}

// Template writes a starter template.docx holding the paragraphs that are
// kept ahead of the generated tables.
func Template() error {
	doc, err := docx.New()
	if err != nil {
		return err
	}
	for i := 1; i <= types.DefaultRetainParagraphs; i++ {
		text := ""
		if i == 1 {
			text = "教案"
		}
		if err := doc.AppendParagraph(docx.Paragraph{Text: text, Align: types.AlignCenter}); err != nil {
			return err
		}
	}
	if err := doc.Save(types.DefaultTemplate); err != nil {
		return err
	}
	fmt.Printf("Wrote %s with %d paragraphs\n", types.DefaultTemplate, types.DefaultRetainParagraphs)
	return nil
}

// Sample writes sample.md, a lesson plan skeleton with every heading the
// converter reads.
func Sample() error {
	var b strings.Builder
	for _, tbl := range convert.Tables() {
		for _, key := range tbl.Keys() {
			fmt.Fprintf(&b, "# %s\n\n", key)
		}
	}
	if err := os.WriteFile("sample.md", []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing sample.md: %w", err)
	}
	fmt.Println("Wrote sample.md")
	return nil
}

// Demo converts sample.md with the starter template into demo/.
func Demo() error {
	mg.Deps(Template, Sample)
	out, err := convert.ConvertFile(types.DefaultTemplate, "sample.md", "demo")
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

// Stats prints Go production and test line counts.
func Stats() error {
	prodLines, err := countGoLines(".", false)
	if err != nil {
		return err
	}
	testLines, err := countGoLines(".", true)
	if err != nil {
		return err
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", testLines)
	return nil
}

// countGoLines walks the tree, skipping directories that start with "_"
// or ".", and counts non-blank lines in Go files. If testOnly is true,
// count only _test.go files; otherwise count non-test .go files.
func countGoLines(root string, testOnly bool) (int, error) {
	total := 0
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if name := d.Name(); path != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		if strings.HasSuffix(path, "_test.go") != testOnly {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		for line := range strings.Lines(string(data)) {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
		return nil
	})
	return total, err
}
