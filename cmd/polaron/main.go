// Command polaron inspects variational polaron equation output files:
// convergence reports, coefficient plots, Fermi-surface exports, and
// companion notebooks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "polaron",
		Short: "Viewer for variational polaron calculation files",
		Long: `polaron reads the netCDF files written by variational polaron
calculations and turns them into convergence tables, diagnostic plots,
Fermi-surface exports, and analysis notebooks.

Tables go to stdout; log lines go to stderr.`,
	}

	rootCmd.PersistentFlags().String("config", "", "YAML file with default flag values")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInfoCmd(),
		newScfCmd(),
		newAnkCmd(),
		newBqnuCmd(),
		newConvCmd(),
		newBxsfCmd(),
		newNbCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("polaron version %s\n", version)
		},
	}
}

// newLogger builds the command logger: zap production config on stderr,
// debug level when --verbose is set.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg.Build()
}
