package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "payslip-extract",
	Short: "Extract payment details and pay-period summaries from PDF payslips",
	Long: `payslip-extract scans a directory of PDF payslips, parses the payment
detail lines and pay-period summary blocks out of each page, and exports
two datasets (Payment Details, Summary) to an XLSX workbook or CSV files.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("payslip-extract %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
