package cli

import (
	"fmt"
	"strconv"

	"github.com/majorcontext/prompt/config"
	"github.com/majorcontext/prompt/internal/diagnostic"
	"github.com/majorcontext/prompt/prompts"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <questions.yaml>",
	Short: "Walk a YAML question file end to end, prompting for each question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := config.Load(args[0])
		if err != nil {
			diagnostic.Errorf("run: %v", err)
			return err
		}
		if f == nil {
			return fmt.Errorf("run: %s not found", args[0])
		}

		diagnostic.Section("Questions")

		answers := make(map[string]string, len(f.Questions))
		for _, q := range f.Questions {
			answer, err := askQuestion(q)
			if err != nil {
				diagnostic.Errorf("run: question %q: %v", q.Name, err)
				return err
			}
			answers[q.Name] = answer
		}

		diagnostic.Section("Answers")
		for _, q := range f.Questions {
			fmt.Printf("%s %s = %s\n", diagnostic.OKTag(), diagnostic.Bold(q.Name), answers[q.Name])
		}
		return nil
	},
}

// askQuestion builds and runs the prompt matching q.Kind, returning the
// answer rendered as a string for the final summary.
func askQuestion(q config.Question) (string, error) {
	switch q.Kind {
	case config.KindConfirm:
		p := prompts.NewConfirm(q.Message)
		if def, ok := parseBool(q.Default); ok {
			p.WithDefault(def)
		}
		answer, err := runPrompt[bool](p)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(answer), nil

	case config.KindSelect:
		p := prompts.NewChoice(q.Message, q.Choices)
		return runPrompt[string](p)

	default: // config.KindInput
		p := prompts.NewInput(q.Message)
		if q.Default != "" {
			p.WithDefault(q.Default)
		} else if q.Hint != "" {
			p.Header.WithHint(q.Hint)
		}
		return runPrompt[string](p)
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "y", "Y", "yes", "true":
		return true, true
	case "n", "N", "no", "false":
		return false, true
	}
	return false, false
}

func init() {
	rootCmd.AddCommand(runCmd)
}
