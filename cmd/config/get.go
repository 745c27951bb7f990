package config

import (
	"fmt"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:   "get [key]",
		Short: "Gets a global config value (or all of them)",
		Args:  cobra.MaximumNArgs(1),
	}, &getRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type getRunner struct{}

func (i *getRunner) RunE(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("Printing all config entries:")
		for _, entry := range entries {
			fmt.Printf("  %s: %v %s\n", strcase.KebabCase(entry.key), viper.Get(entry.key), gchalk.Gray(entry.help))
		}
		return nil
	}

	entry, err := lookup(args[0])
	if err != nil {
		return err
	}

	fmt.Println("Printing config entry:")
	fmt.Printf("  %s: %v\n", strcase.KebabCase(entry.key), viper.Get(entry.key))

	return nil
}
