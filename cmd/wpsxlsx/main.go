// Package main provides the CLI entry point for wpsxlsx.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/config"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/dataset"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/models"
	"github.com/ukaji3/wpsxlsx-go/pkg/wpsxlsx/output"
)

var (
	outputPath    string
	pretty        bool
	includeLinks  bool
	sheetsDir     string
	csvEncoding   string
	imagePrefix   string
	stringsToURLs bool
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}
	logger := cfg.Logger(os.Stderr)
	slog.SetDefault(logger)

	rootCmd := &cobra.Command{
		Use:   "wpsxlsx",
		Short: "Write and inspect xlsx files with cell-embedded images",
		Long: `wpsxlsx converts JSON, YAML and CSV tables into xlsx workbooks whose
pictures are embedded in cells the way WPS Office stores them, and
reads such workbooks back as JSON.`,
		SilenceUsage: true,
	}

	convertCmd := &cobra.Command{
		Use:   "convert [input...]",
		Short: "Convert JSON, YAML or CSV input into an xlsx workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, logger)
		},
	}
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output xlsx path (required)")
	convertCmd.Flags().StringVar(&csvEncoding, "encoding", cfg.CSVEncoding, "CSV encoding: utf-8, gbk, gb18030, latin1")
	convertCmd.Flags().StringVar(&imagePrefix, "image-prefix", cfg.ImagePrefix, "CSV prefix marking image paths")
	convertCmd.Flags().BoolVar(&stringsToURLs, "urls", cfg.StringsToURLs, "Write URL-like strings as hyperlinks")
	_ = convertCmd.MarkFlagRequired("output")

	inspectCmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "List cell values and embedded images as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	inspectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	inspectCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	inspectCmd.Flags().BoolVar(&includeLinks, "links", false, "Include cell hyperlinks")
	inspectCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	rootCmd.AddCommand(convertCmd, inspectCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string, logger *slog.Logger) error {
	loadOpts := dataset.Options{Encoding: csvEncoding, ImagePrefix: imagePrefix}

	var sheets []models.SheetRows
	for _, input := range args {
		loaded, err := dataset.LoadFile(input, loadOpts)
		if err != nil {
			return fmt.Errorf("load %s: %w", input, err)
		}
		sheets = append(sheets, loaded...)
	}

	opts := wpsxlsx.DefaultOptions()
	opts.StringsToURLs = &stringsToURLs
	opts.Logger = logger

	data, err := wpsxlsx.GenerateExcelBinary(sheets, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("Workbook written", "path", outputPath, "sheets", len(sheets))
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	wb, err := wpsxlsx.Inspect(args[0], wpsxlsx.InspectOptions{IncludeLinks: includeLinks})
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	jsonData, err := output.ToJSON(wb, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(wb, sheetsDir); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	return nil
}

func writeSheetFiles(wb *models.WorkbookData, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for sheetName, sheet := range wb.Sheets {
		jsonData, err := output.SheetToJSON(&sheet, pretty)
		if err != nil {
			return err
		}

		filename := filepath.Join(dir, sheetName+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}

	return nil
}
