package cli

import (
	"github.com/majorcontext/prompt/internal/diagnostic"
	"github.com/majorcontext/prompt/prompts"
	"github.com/spf13/cobra"
)

var (
	inputDefault string
	inputMask    string
)

var inputCmd = &cobra.Command{
	Use:   "input <message>",
	Short: "Ask a free-text question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := prompts.NewInput(args[0])
		if inputDefault != "" {
			p.WithDefault(inputDefault)
		}
		if inputMask != "" {
			p.WithMask([]rune(inputMask)[0])
		}

		answer, err := runPrompt[string](p)
		if err != nil {
			diagnostic.Errorf("input: %v", err)
			return err
		}
		diagnostic.Info(diagnostic.OKTag() + " " + answer)
		return nil
	},
}

func init() {
	inputCmd.Flags().StringVar(&inputDefault, "default", "", "default answer if Enter is pressed with no text typed")
	inputCmd.Flags().StringVar(&inputMask, "mask", "", "render typed input as this single character instead of the real value")
	rootCmd.AddCommand(inputCmd)
}
