package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gorcc/internal/config"
	"github.com/alexiusacademia/gorcc/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global options
	envFile string
	verbose bool

	// cfg is loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gorcc",
	Short: "Reinforced Concrete Column Interaction Tool",
	Long: `gorcc - Go Reinforced Concrete Column Analyzer

A CLI tool for the strength analysis of reinforced concrete columns
based on the National Structural Code of the Philippines (NSCP)
and ACI 318 strain compatibility.

This tool helps structural engineers perform:
  - P-M interaction diagrams for rectangular and circular columns
  - Capacity checks of factored axial load and moment demands
  - Simplified pure axial capacity checks
  - Reinforcement detailing checks (ratio, ties, bar spacing)
  - Factored load combinations

All calculations follow NSCP 2015 (Volume 1) provisions.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if verbose {
			cfg.LogLevel = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gorcc v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Reinforced Concrete Column Analyzer                  ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the strength analysis of reinforced concrete columns")
		fmt.Println("  based on the National Structural Code of the Philippines (NSCP).")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • P-M interaction diagrams (rectangular and circular sections)")
		fmt.Println("    • Demand checks with utilization ratios")
		fmt.Println("    • Factored load combinations for axial load and moment")
		fmt.Println("    • PDF and Excel reports, PNG/SVG diagrams")
		fmt.Println("    • HTTP API with run history")
		fmt.Println()
		fmt.Println("  Use 'gorcc --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Environment file with GORCC_* settings")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
