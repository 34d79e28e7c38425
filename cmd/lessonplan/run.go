// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/songyongshun/ciit-lesson-plan/internal/convert"
	"github.com/songyongshun/ciit-lesson-plan/internal/history"
	"github.com/songyongshun/ciit-lesson-plan/internal/markdown"
)

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if historyOnly(cmd) {
		return runHistory(cmd, cfg.HistoryPath)
	}

	inputs, err := convert.CollectInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no markdown inputs found in %v", args)
	}

	out := cmd.OutOrStdout()
	if dump, _ := cmd.Flags().GetBool("dump-sections"); dump {
		return dumpSections(out, inputs)
	}

	opts := convert.BatchOptions{TemplatePath: cfg.TemplatePath, FailFast: cfg.FailFast}
	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Recorder = store
	}

	result := convert.ConvertBatch(cmd.Context(), convert.New(cfg), inputs, out, opts)
	if result.HasFailures() || result.Skipped > 0 {
		return fmt.Errorf("%d of %d inputs not converted", result.Failed+result.Skipped, result.Total())
	}
	return nil
}

func dumpSections(w io.Writer, inputs []string) error {
	for _, path := range inputs {
		sections, err := markdown.ReadFile(path)
		if err != nil {
			return err
		}
		data, err := sections.YAML()
		if err != nil {
			return fmt.Errorf("encoding sections of %s: %w", path, err)
		}
		fmt.Fprintf(w, "# %s\n%s", path, data)
	}
	return nil
}

func runHistory(cmd *cobra.Command, path string) error {
	if path == "" {
		return fmt.Errorf("--show-history and --export-history need --history")
	}
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if dest, _ := cmd.Flags().GetString("export-history"); dest != "" {
		if err := store.Export(ctx, dest, history.QueryOptions{}); err != nil {
			return fmt.Errorf("exporting history to %s: %w", dest, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported history to %s\n", dest)
	}

	n, _ := cmd.Flags().GetInt("show-history")
	if n <= 0 {
		return nil
	}
	records, err := store.Recent(ctx, history.QueryOptions{MaxResults: n})
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, r := range records {
		fmt.Fprintf(w, "%s  %-9s  %s", r.ConvertedAt.Local().Format("2006-01-02 15:04"), r.Status, r.InputPath)
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "  (%s)", r.Error)
		case r.OutputPath != "":
			fmt.Fprintf(w, " -> %s", r.OutputPath)
		}
		fmt.Fprintln(w)
	}
	return nil
}
