// Package main provides the CLI entry point for qtyaudit.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/config"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/output"
	"github.com/ukaji3/qtyaudit-go/pkg/qtyaudit/pdfsrc"
	"go.uber.org/zap"
)

var (
	pdfDir         string
	outDir         string
	masterPath     string
	configPath     string
	logLevel       string
	groupSynthesis bool
	noXLSX         bool
	jsonOut        bool
	pretty         bool
)

func main() {
	// .env only supplies defaults; a missing file is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "qtyaudit",
		Short: "Reconcile plan drawing quantity tables against the master summary",
		Long: `qtyaudit extracts quantity tables from landscape plan PDFs and checks
them against the master quantity summary (presence, totals and recognized
tree quantities). Results are written as CSV, an extraction log and an
optional xlsx workbook.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger(logLevel)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("QTYAUDIT_CONFIG"), "Keyword dictionary override (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("QTYAUDIT_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")

	for _, mode := range []struct {
		mode  qtyaudit.Mode
		short string
	}{
		{qtyaudit.ModeExtract, "Extract plan and master quantity tables only"},
		{qtyaudit.ModePresence, "Check that every plan item appears in the master"},
		{qtyaudit.ModeTotals, "Compare summed plan quantities with master totals"},
		{qtyaudit.ModeRecognized, "Check recognized tree quantities against remark rules"},
	} {
		rootCmd.AddCommand(modeCommand(mode.mode, mode.short))
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective keyword dictionary as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := loadDictionary()
			if err != nil {
				return err
			}
			data, err := dict.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func modeCommand(mode qtyaudit.Mode, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(mode),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, mode)
		},
	}
	cmd.Flags().StringVar(&pdfDir, "pdf-dir", ".", "Directory holding the drawing PDFs")
	cmd.Flags().StringVar(&outDir, "out-dir", "output", "Directory for output files")
	cmd.Flags().StringVar(&masterPath, "master", "", "Master summary PDF (skips detection)")
	cmd.Flags().BoolVar(&groupSynthesis, "group-synthesis", false, "Add aggregate group rows to totals")
	cmd.Flags().BoolVar(&noXLSX, "no-xlsx", os.Getenv("QTYAUDIT_NO_XLSX") != "", "Skip the detail workbook")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON to stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func run(cmd *cobra.Command, mode qtyaudit.Mode) error {
	dict, err := loadDictionary()
	if err != nil {
		return err
	}

	opts := qtyaudit.Options{
		Mode:           mode,
		PDFDir:         pdfDir,
		OutDir:         outDir,
		Master:         masterPath,
		GroupSynthesis: groupSynthesis,
		RunID:          uuid.NewString(),
	}
	if noXLSX {
		include := false
		opts.IncludeWorkbook = &include
	}

	runner := &qtyaudit.Runner{
		Dict: dict,
		Extractor: &qtyaudit.Extractor{
			Dict:      dict,
			Open:      openPDF,
			Preflight: pdfsrc.Preflight,
		},
		Probe:    pdfsrc.TextProbe{},
		Workbook: output.ExcelWriter{},
	}

	report, err := runner.Run(opts)
	if err != nil {
		return fmt.Errorf("%s failed: %w", mode, err)
	}

	zap.L().Info("run complete",
		zap.String("run_id", report.RunID),
		zap.String("master", report.Master),
		zap.Int("plan_records", len(report.PlanRecords)),
		zap.Int("master_records", len(report.MasterRecords)),
		zap.String("workbook", report.Workbook))

	if jsonOut {
		data, err := output.ToJSON(report, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}
	return nil
}

func openPDF(path string) (qtyaudit.Document, error) {
	doc, err := pdfsrc.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func loadDictionary() (*config.Dictionary, error) {
	if configPath == "" {
		return config.Default()
	}
	return config.Load(configPath)
}

func setupLogger(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
