package cli

import (
	"fmt"

	"github.com/majorcontext/prompt/internal/diagnostic"
	"github.com/majorcontext/prompt/prompts"
	"github.com/spf13/cobra"
)

var confirmDefault string

var confirmCmd = &cobra.Command{
	Use:   "confirm <message>",
	Short: "Ask a yes/no question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := prompts.NewConfirm(args[0])
		switch confirmDefault {
		case "":
		case "y", "yes", "true":
			p.WithDefault(true)
		case "n", "no", "false":
			p.WithDefault(false)
		default:
			return fmt.Errorf("--default must be one of y/n/yes/no/true/false")
		}

		answer, err := runPrompt[bool](p)
		if err != nil {
			diagnostic.Errorf("confirm: %v", err)
			return err
		}
		if answer {
			diagnostic.Info(diagnostic.OKTag() + " yes")
		} else {
			diagnostic.Info(diagnostic.FailTag() + " no")
		}
		return nil
	},
}

func init() {
	confirmCmd.Flags().StringVar(&confirmDefault, "default", "", "default answer if Enter is pressed (y/n)")
	rootCmd.AddCommand(confirmCmd)
}
