// Package cli implements the promptdemo command-line interface using
// Cobra: one subcommand per prompt kind, plus a run command that drives
// a whole YAML question file.
package cli

import (
	"github.com/majorcontext/prompt/internal/log"
	"github.com/spf13/cobra"
)

var (
	verbose  bool
	debugDir string
)

var rootCmd = &cobra.Command{
	Use:   "promptdemo",
	Short: "Interactive terminal prompts, demonstrated",
	Long: `promptdemo exercises the prompt library's core widgets against a
real terminal: confirm, input, and choice prompts individually, or a
whole sequence of them read from a YAML question file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		opts := log.Options{Verbose: verbose, DebugDir: debugDir}
		if debugDir != "" {
			opts.RetentionDays = 7
		}
		if err := log.Init(opts); err != nil {
			cmd.PrintErrf("warning: failed to initialize logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&debugDir, "debug-dir", "", "write daily-rotating debug logs to this directory")
}
