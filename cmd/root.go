package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"mcdevkit/internal/logger"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// errReported marks failures that were already printed where they happened.
var errReported = errors.New("failure already reported")

// rootCmd is the base command for the CLI tool `mcdevkit`.
var rootCmd = &cobra.Command{
	Use:   "mcdevkit",
	Short: "Spin up throwaway Minecraft servers for plugin development",
	Long: `mcdevkit downloads a Minecraft server distribution into a workspace,
accepts the EULA, copies your plugins into place and runs the server
attached to your terminal. Ctrl-C stops it.`,
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun initializes the logger based on the debug flag before any subcommand.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute registers flags and subcommands, then runs the CLI.
// Without a subcommand the help text is printed and the exit code is 0.
// Any failure exits with status 1.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.AddCommand(startCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			logger.Error("[ERROR] %v\n", err)
		}
		os.Exit(1)
	}
}
