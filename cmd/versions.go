package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/lunar"
	"github.com/spf13/cobra"
)

func init() {
	runner := &versionsRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "versions [version]",
		Short:   "Lists the versions (and modules) Lunar Client supports",
		Aliases: []string{"ls", "list"},
		Args:    cobra.MaximumNArgs(1),
		Example: `
  lunarpkg versions
  lunarpkg versions 1.8.9`,
	}, runner)

	rootCmd.AddCommand(cmd.Command)
}

type versionsRunner struct{}

func (v *versionsRunner) RunE(cmd *cobra.Command, args []string) error {
	meta, err := newCatalog().FetchMetadata(context.Background())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		modules, err := meta.SupportedModules(args[0])
		if err == lunar.ErrUnknownVersion {
			return &commands.CliError{
				Text:        fmt.Sprintf("version %s is not supported", args[0]),
				Suggestions: []string{"List all versions with: lunarpkg versions"},
			}
		}
		if err != nil {
			return err
		}
		fmt.Println(commands.StyleTitle.Render("Modules for " + args[0]))
		for _, module := range modules {
			fmt.Println("│ " + module)
		}
		return nil
	}

	fmt.Println(commands.StyleTitle.Render("Supported versions"))
	for _, version := range lunar.SortVersions(meta.SupportedVersions()) {
		modules, _ := meta.SupportedModules(version)
		fmt.Printf("│ %-8s %s\n", version, gchalk.Gray(strings.Join(modules, ", ")))
	}
	return nil
}
