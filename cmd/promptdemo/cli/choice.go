package cli

import (
	"github.com/majorcontext/prompt/internal/diagnostic"
	"github.com/majorcontext/prompt/prompts"
	"github.com/spf13/cobra"
)

var choiceCmd = &cobra.Command{
	Use:   "choice <message> <option>...",
	Short: "Ask the user to pick one of several options",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, options := args[0], args[1:]

		p := prompts.NewChoice(message, options)
		answer, err := runPrompt[string](p)
		if err != nil {
			diagnostic.Errorf("choice: %v", err)
			return err
		}
		diagnostic.Info(diagnostic.OKTag() + " " + answer)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(choiceCmd)
}
