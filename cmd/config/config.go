package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stoewer/go-strcase"
	"golang.org/x/exp/slices"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindFloat
)

type configEntry struct {
	key  string
	kind int
	help string
}

var entries = []configEntry{
	{"installDir", configKindString, "Directory Lunar Client files are installed to"},
	{"gameDir", configKindString, "Minecraft directory (saves, resource packs, options)"},
	{"texturesDir", configKindString, "Directory for Lunar Client textures"},
	{"java", configKindString, "Java executable to use"},
	{"branch", configKindString, "Lunar Client branch"},
	{"module", configKindString, "Lunar Client module"},
	{"width", configKindInt, "Window width"},
	{"height", configKindInt, "Window height"},
	{"downloadConcurrency", configKindInt, "Number of parallel downloads"},
	{"downloadRateLimit", configKindFloat, "Max download requests per second (0 = unlimited)"},
	{"verboseLogging", configKindBool, "Always print debug logs"},
	{"nonInteractive", configKindBool, "Never show prompts or spinners"},
}

// config maps the lowercased key to its entry
var config = func() map[string]configEntry {
	m := make(map[string]configEntry, len(entries))
	for _, e := range entries {
		m[strings.ToLower(e.key)] = e
	}
	return m
}()

// SubCmd is the "config" command
var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
	Long:  "Manage global config options. Keys can be written in camelCase or kebab-case (install-dir).",
}

// lookup finds the entry for key ("install-dir", "install_dir" or "installDir")
func lookup(key string) (configEntry, error) {
	normalized := strings.ToLower(strcase.LowerCamelCase(key))
	entry, ok := config[normalized]
	if !ok {
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, strcase.KebabCase(e.key))
		}
		slices.Sort(keys)
		return configEntry{}, fmt.Errorf("config key \"%s\" does not exist. Valid keys: %s", key, strings.Join(keys, ", "))
	}
	return entry, nil
}
