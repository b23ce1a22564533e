// Command promptdemo exercises the prompt library end to end: a small
// cobra CLI offering one subcommand per prompt kind plus a run command
// that walks a YAML question file.
package main

import (
	"os"

	"github.com/majorcontext/prompt/cmd/promptdemo/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
