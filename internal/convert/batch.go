// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/songyongshun/ciit-lesson-plan/internal/logging"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// Recorder stores conversion outcomes. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) (types.ConversionRecord, error)
}

// BatchOptions controls ConvertBatch.
type BatchOptions struct {
	// TemplatePath is recorded with each outcome.
	TemplatePath string
	// FailFast stops at the first failed input.
	FailFast bool
	// Recorder, when set, receives one record per attempted input.
	Recorder Recorder
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Partial   int
	Failed    int
	// Skipped counts inputs not attempted after a stop.
	Skipped int
}

// Total returns the total number of inputs.
func (r BatchResult) Total() int {
	return r.Converted + r.Partial + r.Failed + r.Skipped
}

// HasFailures reports whether any input failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch converts each path in order, printing per-file status to w
// and returning a summary. A failure does not affect other inputs unless
// FailFast is set. Cancelling ctx stops before the next input.
func ConvertBatch(ctx context.Context, c Converter, paths []string, w io.Writer, opts BatchOptions) BatchResult {
	var result BatchResult
	for i, path := range paths {
		if ctx.Err() != nil {
			result.Skipped += len(paths) - i
			break
		}

		res, err := c.Convert(path)
		rec := types.ConversionRecord{
			InputPath:    path,
			TemplatePath: opts.TemplatePath,
			OutputPath:   res.OutputPath,
			ProjectName:  res.ProjectName,
			Number:       res.Number,
			Overwrote:    res.Overwrote,
			ConvertedAt:  now(),
		}
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			rec.Status, rec.Error = types.ConversionFailed, err.Error()
			result.Failed++
		case res.Status == types.ConversionPartial:
			fmt.Fprintf(w, "partial:   %s -> %s (template has %d paragraphs)\n", path, res.OutputPath, res.Trim.Paragraphs)
			rec.Status = types.ConversionPartial
			result.Partial++
		default:
			fmt.Fprintf(w, "converted: %s -> %s\n", path, res.OutputPath)
			rec.Status = types.ConversionDone
			result.Converted++
		}

		if opts.Recorder != nil {
			if _, rerr := opts.Recorder.Record(ctx, rec); rerr != nil {
				logging.Logger().Warn("recording conversion failed", "input", path, "error", rerr)
			}
		}
		if err != nil && opts.FailFast {
			result.Skipped += len(paths) - i - 1
			break
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d partial, %d failed, %d skipped (total: %d)\n",
		result.Converted, result.Partial, result.Failed, result.Skipped, result.Total())
	return result
}

// CollectInputs expands directory arguments to the markdown files they
// contain, sorted by name. Other arguments are passed through unchanged so
// that unreadable paths surface as conversion failures.
func CollectInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			out = append(out, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading input directory %s: %w", arg, err)
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
				continue
			}
			files = append(files, filepath.Join(arg, e.Name()))
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}
