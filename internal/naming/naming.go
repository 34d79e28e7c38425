// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming derives output file names for converted lesson plans.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// DefaultNumber is used when the input name yields no number.
const DefaultNumber = "1"

// maxNumberRunes bounds how many trailing characters form the number.
const maxNumberRunes = 2

// ErrEmptyName is returned when a pattern evaluates to an empty string.
var ErrEmptyName = errors.New("output name is empty")

// Stem returns the base name of path without its extension, trimmed.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Number takes up to the last two characters of the stem of path, stopping
// early at a hyphen. "Unit-07.md" gives "07"; "lesson-.md" gives
// DefaultNumber.
func Number(path string) string {
	runes := []rune(Stem(path))
	start := len(runes)
	for start > 0 && len(runes)-start < maxNumberRunes && runes[start-1] != '-' {
		start--
	}
	if start == len(runes) {
		return DefaultNumber
	}
	return string(runes[start:])
}

// programs caches compiled patterns by source text.
var programs sync.Map

func compile(pattern string) (*vm.Program, error) {
	if cached, ok := programs.Load(pattern); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(pattern, expr.Env(env("", "", "")), expr.AsKind(reflect.String))
	if err != nil {
		return nil, err
	}
	programs.Store(pattern, program)
	return program, nil
}

func env(number, project, base string) map[string]any {
	return map[string]any{
		"number":  number,
		"project": project,
		"base":    base,
	}
}

// Derive evaluates pattern with number, project and base (the input stem)
// in scope and returns the resulting file name stem. The name is not
// checked against filesystem rules.
func Derive(pattern, markdownPath, project string) (string, error) {
	program, err := compile(pattern)
	if err != nil {
		return "", fmt.Errorf("compile name pattern %q: %w", pattern, err)
	}
	out, err := expr.Run(program, env(Number(markdownPath), project, Stem(markdownPath)))
	if err != nil {
		return "", fmt.Errorf("evaluate name pattern %q: %w", pattern, err)
	}
	name, _ := out.(string)
	if name == "" {
		return "", fmt.Errorf("pattern %q for %s: %w", pattern, markdownPath, ErrEmptyName)
	}
	return name, nil
}
