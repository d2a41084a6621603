package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	configFile string
	debugLog   bool

	// Buffering flags
	strategy  string
	trim      bool
	stats     bool
	threshold int64
	tempDir   string
)

var ErrAlreadyHandled = errors.New("already handled")

var okLabel = color.New(color.FgGreen)
var errorLabel = color.New(color.FgRed)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "textbuf [flags] [file ...]",
	Short: "textbuf - buffer text through a selectable storage strategy",
	Long: `textbuf reads text from the given files (or standard input) into an
output buffer using the selected storage strategy, then streams the buffered
result to standard output.

Strategies:
  array      flat growable in-memory array
  segmented  zero-copy segment list
  auto       in-memory until the spill threshold, then a temp file

Examples:
  # Buffer a file through the automatic strategy
  textbuf --strategy auto big.txt

  # Trim surrounding whitespace and show buffering statistics
  textbuf --trim --stats notes.txt

  # Spill to a chosen directory after 1024 code units
  textbuf --strategy auto --threshold 1024 --temp-dir /tmp/spool big.txt`,
	Args:             cobra.ArbitraryArgs,
	PersistentPreRun: preRunHandlePersistents,
	RunE:             runBuffer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "", "", "Path to configuration file to override default")
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output statistics in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&debugLog, "debug", "", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&strategy, "strategy", "s", "", "Buffering strategy: array, segmented, or auto")
	rootCmd.Flags().BoolVarP(&trim, "trim", "t", false, "Trim surrounding whitespace from the result")
	rootCmd.Flags().BoolVarP(&stats, "stats", "", false, "Print buffering statistics to stderr")
	rootCmd.Flags().Int64VarP(&threshold, "threshold", "", 0, "Spill threshold in code units for the auto strategy")
	rootCmd.Flags().StringVarP(&tempDir, "temp-dir", "", "", "Directory for spill files")

	rootCmd.AddCommand(newVersionCmd())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SilenceErrors = true // Prevent Cobra from printing the error
	rootCmd.SilenceUsage = true  // Prevent Cobra from printing usage on error

	err := rootCmd.Execute()
	if err != nil {
		if errors.Is(err, ErrAlreadyHandled) {
			os.Exit(1)
		}
		if jsonOutput {
			kv := map[string]string{
				"error": err.Error(),
			}
			printJSON(kv)
		} else {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// preRunHandlePersistents configures logging and loads the optional
// configuration file before command execution.
func preRunHandlePersistents(cmd *cobra.Command, args []string) {
	level := zerolog.WarnLevel
	if debugLog {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()

	// An explicitly named config file must load; the default one is
	// optional.
	if configFile != "" {
		if err := LoadConfig(configFile); err != nil {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	path, err := GetDefaultConfigPath()
	if err != nil {
		return
	}
	if _, err := os.Stat(path); err == nil {
		if err := LoadConfig(path); err != nil {
			errorLabel.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// newVersionCmd creates and returns a new version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of textbuf",
		Run: func(cmd *cobra.Command, args []string) {
			configPath, err := GetDefaultConfigPath()
			if err != nil {
				configPath = "unknown"
			}

			if jsonOutput {
				kv := map[string]string{
					"version":     getCLIVersion(),
					"config_file": configPath,
				}
				printJSON(kv)
			} else {
				cmd.Printf("textbuf %s\n", getCLIVersion())
				cmd.Printf("Config file: %s\n", configPath)
			}
		},
	}
}

// printJSON prints the given map as JSON to stdout
func printJSON(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(jsonData))
}

// getCLIVersion returns the current CLI version
func getCLIVersion() string {
	return "v0.1.0"
}
