package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/common"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/core"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/export"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/ingest"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/parser"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/pdftext"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/pipeline"
	"github.com/jet-w/unisa-uniadelaide-payslip-extractor/internal/repository"
)

var (
	dir       string
	out       string
	format    string
	tunesPath string
	inmem     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Process a directory of payslip PDFs and export the datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(cmd.Context())
	},
}

func init() {
	extractCmd.Flags().StringVar(&dir, "dir", "", "directory to process payslips from (required)")
	extractCmd.Flags().StringVar(&out, "out", "", "output file path (defaults next to --dir)")
	extractCmd.Flags().StringVar(&format, "format", "", "output format: xlsx or csv")
	extractCmd.Flags().StringVar(&tunesPath, "tunables", "", "YAML file with extraction tunables")
	extractCmd.Flags().BoolVar(&inmem, "inmem", false, "use an in-memory run-history database")
	_ = extractCmd.MarkFlagRequired("dir")
}

func runExtract(ctx context.Context) error {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if format != "" {
		cfg.Export.Format = format
	}
	if out != "" {
		cfg.Export.OutputPath = out
	} else {
		name := "payslip_details.xlsx"
		if cfg.Export.Format == "csv" {
			name = "payslip_details"
		}
		cfg.Export.OutputPath = filepath.Join(filepath.Dir(dir), name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tunes, err := common.LoadTunables(tunesPath)
	if err != nil {
		return err
	}

	dbPath := cfg.Database.Path
	if inmem {
		dbPath = ":memory:"
	}
	runs, err := repository.Open(ctx, dbPath, logger)
	if err != nil {
		return fmt.Errorf("open run store: %w", err)
	}
	defer func() {
		_ = runs.Close()
	}()

	discoverer := ingest.NewDiscoverer(logger)
	files, stats, err := discoverer.DiscoverDirectory(dir, tunes.SkipHiddenFiles)
	if err != nil {
		return fmt.Errorf("discover %s: %w", dir, err)
	}
	logger.Info("discovery complete",
		"scanned", stats.Scanned, "matched", stats.Matched,
		"succeeded", stats.Succeeded, "failed", stats.Failed)
	if len(files) == 0 {
		fmt.Println("No PDF files found.")
		return nil
	}
	fmt.Printf("Found %d PDF file(s)\n\n", len(files))

	classifier := parser.NewClassifier(tunes.PaymentMarker, tunes.DisbursementBank)
	periods := parser.NewPayPeriodParser(tunes.HeaderDateLayout)
	payments := parser.NewPaymentParser(tunes.PaymentMarker, tunes.WorkDateLayout)
	summaries := parser.NewSummaryParser(tunes.SummaryLookahead, tunes.DisbursementLabel, tunes.DisbursementBank)

	pageProc := pipeline.NewPageProcessor(classifier, periods, payments, summaries, logger)
	docProc := pipeline.NewDocumentProcessor(pageProc, logger)
	source := pdftext.NewExtractor(pdftext.Config{
		Pdftotext: cfg.PDFText.Pdftotext,
		MaxPages:  cfg.PDFText.MaxPages,
		Timeout:   cfg.PDFText.Timeout,
	}, logger)

	coordinator := core.NewCoordinator(logger, source, docProc, runs)
	result, err := coordinator.Run(ctx, files)
	if err != nil {
		return err
	}

	if result.Stats.Payments == 0 && result.Stats.Summaries == 0 {
		fmt.Println("No records extracted.")
		if tunes.FailOnZeroRecords {
			return common.NewAppError("NO_RECORDS", "batch produced zero records", common.ErrInvalidInput)
		}
		printReports(result)
		return nil
	}

	svc := export.NewService(logger)
	written, err := writeOutput(svc, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("Data saved to: %s\n", strings.Join(written, ", "))
	fmt.Printf("- Payment Details: %d records\n", result.Stats.Payments)
	fmt.Printf("- Summary: %d records\n\n", result.Stats.Summaries)

	printReports(result)
	printStatistics(result)
	printSample(result, tunes.ReportSampleRows)
	return nil
}

func writeOutput(svc *export.Service, cfg *common.Config, result *core.BatchResult) ([]string, error) {
	if cfg.Export.Format == "csv" {
		base := strings.TrimSuffix(cfg.Export.OutputPath, filepath.Ext(cfg.Export.OutputPath))
		paymentsPath := base + "_payments.csv"
		summariesPath := base + "_summaries.csv"

		pf, err := os.Create(paymentsPath)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", paymentsPath, err)
		}
		defer func() {
			_ = pf.Close()
		}()
		if err := svc.WritePaymentsCSV(pf, result.Payments); err != nil {
			return nil, err
		}

		sf, err := os.Create(summariesPath)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", summariesPath, err)
		}
		defer func() {
			_ = sf.Close()
		}()
		if err := svc.WriteSummariesCSV(sf, result.Summaries); err != nil {
			return nil, err
		}
		return []string{paymentsPath, summariesPath}, nil
	}

	bytes, err := svc.ExportXLSX(result.Payments, result.Summaries)
	if err != nil {
		return nil, fmt.Errorf("export xlsx: %w", err)
	}
	if err := os.WriteFile(cfg.Export.OutputPath, bytes, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", cfg.Export.OutputPath, err)
	}
	return []string{cfg.Export.OutputPath}, nil
}

func printReports(result *core.BatchResult) {
	fmt.Println("=== Documents ===")
	for _, r := range result.Reports {
		if r.Err != "" {
			fmt.Printf("%-40s FAILED: %s\n", r.SourceFile, r.Err)
			continue
		}
		fmt.Printf("%-40s pages=%-3d payments=%-4d summaries=%-3d soft_errors=%d\n",
			r.SourceFile, r.Pages, r.Payments, r.Summaries, r.SoftErrors)
	}
	fmt.Println()
}

func printStatistics(result *core.BatchResult) {
	s := result.Stats
	fmt.Println("=== Statistics ===")
	fmt.Printf("Total hours worked: %s\n", s.TotalHours.StringFixed(2))
	fmt.Printf("Total income (Gross): $%s\n", s.TotalGross.StringFixed(2))
	fmt.Printf("Total tax: $%s\n", s.TotalTax.StringFixed(2))
	fmt.Printf("Total net income (Nett): $%s\n\n", s.TotalNett.StringFixed(2))
}

func printSample(result *core.BatchResult, n int) {
	if n <= 0 || len(result.Payments) == 0 {
		return
	}
	if n > len(result.Payments) {
		n = len(result.Payments)
	}
	fmt.Printf("=== First %d payment records ===\n", n)
	fmt.Printf("%-32s %4s  %-26s %-10s %8s %8s %10s\n",
		"PDF File", "Page", "Pay Period", "Work Date", "Hours", "Rate", "Amount")
	for _, p := range result.Payments[:n] {
		workDate := ""
		if !p.WorkDate.IsZero() {
			workDate = p.WorkDate.Format("2006-01-02")
		}
		fmt.Printf("%-32s %4d  %-26s %-10s %8s %8s %10s\n",
			p.SourceFile, p.Page, p.Period.String(), workDate,
			p.Hours.StringFixed(2), p.Rate.StringFixed(2), p.Amount.StringFixed(2))
	}
}
