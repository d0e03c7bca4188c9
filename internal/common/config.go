package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	PDFText  PDFTextConfig
	Export   ExportConfig
}

// DatabaseConfig holds run-history store configuration
type DatabaseConfig struct {
	Path        string
	DialTimeout time.Duration
}

// PDFTextConfig holds PDF text extraction configuration
type PDFTextConfig struct {
	Pdftotext string
	MaxPages  int
	Timeout   time.Duration
}

// ExportConfig holds export sink configuration
type ExportConfig struct {
	Format     string // "xlsx" | "csv"
	OutputPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        getEnv("RUNS_DB_PATH", "payslips.db"),
			DialTimeout: getEnvAsDuration("RUNS_DB_DIAL_TIMEOUT", 3*time.Second),
		},
		PDFText: PDFTextConfig{
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
			MaxPages:  getEnvAsInt("PDFTEXT_MAX_PAGES", 0),
			Timeout:   getEnvAsDuration("PDFTEXT_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			Format:     getEnv("EXPORT_FORMAT", "xlsx"),
			OutputPath: getEnv("EXPORT_OUTPUT", "payslip_details.xlsx"),
		},
	}
}

// Tunables are extraction knobs that can be overridden from a YAML file.
// Defaults match the UniSA/UniAdelaide payslip layout.
type Tunables struct {
	PaymentMarker      string `yaml:"payment_marker"`
	HeaderDateLayout   string `yaml:"header_date_layout"`
	WorkDateLayout     string `yaml:"work_date_layout"`
	DisbursementLabel  string `yaml:"disbursement_label"`
	DisbursementBank   string `yaml:"disbursement_bank"`
	SummaryLookahead   int    `yaml:"summary_lookahead"`
	SkipHiddenFiles    bool   `yaml:"skip_hidden_files"`
	FailOnZeroRecords  bool   `yaml:"fail_on_zero_records"`
	ReportSampleRows   int    `yaml:"report_sample_rows"`
}

// DefaultTunables returns the stock extraction knobs.
func DefaultTunables() Tunables {
	return Tunables{
		PaymentMarker:     "CAS OrdPay (incCASloading)",
		HeaderDateLayout:  "02 Jan 2006",
		WorkDateLayout:    "02Jan06",
		DisbursementLabel: "Disbursement Amount",
		DisbursementBank:  "Commonwealth Bank of Australia",
		SummaryLookahead:  12,
		SkipHiddenFiles:   true,
		ReportSampleRows:  10,
	}
}

// LoadTunables reads a YAML tunables file, applying defaults for absent keys.
// An empty path returns the defaults.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tunables: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse tunables: %w", err)
	}
	if t.PaymentMarker == "" {
		return t, NewAppError("CONFIG_ERROR", "payment_marker must not be empty", ErrInvalidInput)
	}
	if t.SummaryLookahead <= 0 {
		t.SummaryLookahead = DefaultTunables().SummaryLookahead
	}
	return t, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Export.Format != "xlsx" && c.Export.Format != "csv" {
		return NewAppError("CONFIG_ERROR", "EXPORT_FORMAT must be xlsx or csv", ErrInvalidInput)
	}
	if c.Export.OutputPath == "" {
		return NewAppError("CONFIG_ERROR", "EXPORT_OUTPUT is required", ErrInvalidInput)
	}
	return nil
}
