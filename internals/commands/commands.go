package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Command is a cobra command with a Runner that renders errors for the user
type Command struct {
	*cobra.Command
	runner Runner
}

// Runner runs a command
type Runner interface {
	RunE(cmd *cobra.Command, args []string) error
}

// New wires run into cmd. Errors returned by run are printed and exit with code 1
func New(cmd *cobra.Command, run Runner) *Command {
	build := &Command{
		cmd,
		run,
	}
	build.Command.Run = func(cmd *cobra.Command, args []string) {
		err := run.RunE(cmd, args)
		if err != nil {
			fmt.Println(RenderError(err))
			os.Exit(1)
		}
	}

	return build
}

// RenderError renders err for the terminal, using the rich output of CliErrors
func RenderError(err error) string {
	var asCliErr *CliError
	if errors.As(err, &asCliErr) {
		return asCliErr.RichError() + "\n"
	}
	return ErrorBox(err.Error(), "")
}
