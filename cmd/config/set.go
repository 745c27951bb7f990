package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/globals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
)

func init() {
	cmd := commands.New(&cobra.Command{
		Use:     "set <key> <value>",
		Short:   "Sets a global config value",
		Args:    cobra.ExactArgs(2),
		Example: "  lunarpkg config set java /usr/lib/jvm/java-17-openjdk/bin/java",
	}, &setRunner{})

	SubCmd.AddCommand(cmd.Command)
}

type setRunner struct{}

func (i *setRunner) RunE(cmd *cobra.Command, args []string) error {
	entry, err := lookup(args[0])
	if err != nil {
		return err
	}

	newValue, err := parseValue(entry, args[1])
	if err != nil {
		return err
	}

	previousValue := viper.Get(entry.key)
	previousStringValue := fmt.Sprintf("%v", previousValue)
	if previousValue == nil {
		previousStringValue = "(unset)"
	}
	viper.Set(entry.key, newValue)

	fmt.Printf(
		"Changing config entry:\n  %s: %s → %v\n",
		strcase.KebabCase(entry.key),
		gchalk.Strikethrough(previousStringValue),
		gchalk.Bold(fmt.Sprintf("%v", newValue)),
	)

	if err := os.MkdirAll(globals.ConfigDir, os.ModePerm); err != nil {
		return err
	}
	return viper.WriteConfigAs(filepath.Join(globals.ConfigDir, "config.toml"))
}

func parseValue(entry configEntry, value string) (interface{}, error) {
	switch entry.kind {
	case configKindBool:
		return parseBool(value)
	case configKindString:
		return value, nil
	case configKindInt:
		return strconv.Atoi(value)
	case configKindFloat:
		return strconv.ParseFloat(value, 64)
	default:
		return nil, fmt.Errorf("what? uncovered config values type")
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}
