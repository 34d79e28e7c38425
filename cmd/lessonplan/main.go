// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the lessonplan CLI, which converts
// markdown lesson plans into .docx documents built on a template.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/songyongshun/ciit-lesson-plan/internal/logging"
	"github.com/songyongshun/ciit-lesson-plan/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the lessonplan command.
var rootCmd = &cobra.Command{
	Use:     "lessonplan [flags] <input.md|dir>...",
	Short:   "Convert markdown lesson plans into .docx documents",
	Version: version,
	Long: `lessonplan reads lesson plans written as heading-delimited markdown and
writes one .docx document per input. Each document keeps the leading
paragraphs of a template, followed by a course metadata table, a lesson
table and a closing "制订时间" line.

Directories expand to the .md files they contain. Output files are named
{number}-{project}-教案.docx unless --name-pattern says otherwise.`,
	SilenceUsage: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if historyOnly(cmd) {
			return nil
		}
		return cobra.MinimumNArgs(1)(cmd, args)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logging.SetLogger(logging.NewTextLogger(os.Stderr, verbose))
		if used := viper.ConfigFileUsed(); used != "" {
			logging.Logger().Debug("using config file", "path", used)
		}
		return nil
	},
	RunE: runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./lessonplan.yaml or ~/.config/lessonplan/lessonplan.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug detail to stderr")

	f := rootCmd.Flags()
	f.String("template", types.DefaultTemplate, "template .docx whose leading paragraphs frame the output")
	f.String("output-dir", ".", "directory for generated documents")
	f.Int("retain", types.DefaultRetainParagraphs, "number of template paragraphs to keep")
	f.String("name-pattern", types.DefaultNamePattern, "expression for the output file stem (variables: number, project, base)")
	f.String("prepared-on", "", `date text of the closing line, e.g. "2025 年 9 月" (default: current month)`)
	f.Bool("workbook", false, "also write an .xlsx rendition of the tables")
	f.Bool("fail-fast", false, "stop at the first failed input")
	f.String("history", "", "SQLite database recording conversions (disabled when empty)")
	f.Int("show-history", 0, "print the N most recent recorded conversions and exit")
	f.String("export-history", "", "export recorded conversions to a .yaml or .json file and exit")
	f.Bool("dump-sections", false, "print the parsed sections of each input as YAML instead of converting")

	for key, flag := range map[string]string{
		"template":          "template",
		"output_dir":        "output-dir",
		"retain_paragraphs": "retain",
		"name_pattern":      "name-pattern",
		"prepared_on":       "prepared-on",
		"workbook":          "workbook",
		"fail_fast":         "fail-fast",
		"history":           "history",
	} {
		if err := viper.BindPFlag(key, f.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("lessonplan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "lessonplan"))
		}
	}

	viper.SetEnvPrefix("LESSONPLAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "Reading config:", err)
		}
	}
}

// loadConfig resolves the conversion settings from flags, environment and
// config file, in that order of precedence.
func loadConfig() (types.ConversionConfig, error) {
	var cfg types.ConversionConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func historyOnly(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("show-history") || cmd.Flags().Changed("export-history")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
