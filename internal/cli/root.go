// Package cli provides the command-line interface for ajar.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/ajar/internal/config"
)

// Global flags
var (
	jsonOutput bool
	configPath string
	dataFile   string
	stateDir   string
	actorName  string
	quiet      bool
	verbose    bool
)

// Resolved for the running command by the root PersistentPreRunE
var (
	cfg    config.Config
	logger = zap.NewNop()
)

// Output streams, replaced in tests
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ajar",
	Short: "Teaching-material stock and delivery order tracker",
	Long: `Ajar keeps track of teaching-material stock per UPBJJ and of the
delivery orders (DO) that ship material packages to students.

Features:
  - Stock screen: search, filter by kategori/UPBJJ, sort, safety-stock warnings
  - Delivery orders: sequential DO numbers per year, status and journey history
  - Journal: every change is appended to a hashed JSONL journal and replayed
  - SQL: read-only queries over a SQLite mirror of the current state`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, _, err = config.Load(workDir, configPath, config.Flags{
			DataFile: dataFile,
			StateDir: stateDir,
			Actor:    actorName,
		}, os.Environ())
		if err != nil {
			return err
		}

		logger, err = newLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger() (*zap.Logger, error) {
	if quiet {
		return zap.NewNop(), nil
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zcfg.Build()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		HandleError(err)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: .ajar.json if present)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Data source file, .json or .yaml (default: $AJAR_DATA or dataBahanAjar.json)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory for session, journal and SQL mirror (default: $AJAR_STATE_DIR or .ajar)")
	rootCmd.PersistentFlags().StringVar(&actorName, "actor", "", "Override actor for the journal (default: $AJAR_ACTOR or $USER)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug output")
}

// ExitCode is used to communicate exit codes for testing
var ExitCode int

// ExitFunc is the function called to exit the program
// Can be overridden for testing
var ExitFunc = os.Exit

// Exit sets the exit code and calls the exit function
func Exit(code int) {
	ExitCode = code
	ExitFunc(code)
}

// GetJSONOutput returns whether JSON output is enabled
func GetJSONOutput() bool {
	return jsonOutput
}

// IsQuiet returns whether quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}
