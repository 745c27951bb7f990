package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/cmd/config"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/globals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	disableColors bool
	verbose       bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lunarpkg",
	Short: "Launch Lunar Client from the command line",
	Long:  "Downloads, verifies and launches Lunar Client without the official launcher",

	Example: `
  lunarpkg versions
  lunarpkg install 1.8.9
  lunarpkg launch 1.8.9 --server mc.hypixel.net`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = globals.Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(commands.RenderError(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&disableColors, "no-color", "", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "", false, "print debug logs")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/lunarpkg/config.toml)")

	rootCmd.AddCommand(config.SubCmd)
}

// setDefaults sets the config defaults. Directories match the ones of the official launcher
func setDefaults(home string) {
	lunarDir := filepath.Join(home, ".lunarclient")
	viper.SetDefault("installDir", filepath.Join(lunarDir, "offline", "multiver"))
	viper.SetDefault("texturesDir", filepath.Join(lunarDir, "textures"))
	viper.SetDefault("gameDir", filepath.Join(home, ".minecraft"))
	viper.SetDefault("java", "")
	viper.SetDefault("branch", "master")
	viper.SetDefault("module", "lunar")
	viper.SetDefault("width", 854)
	viper.SetDefault("height", 480)
	viper.SetDefault("downloadConcurrency", 16)
	viper.SetDefault("downloadRateLimit", 0)
	viper.SetDefault("verboseLogging", false)
	viper.SetDefault("nonInteractive", false)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if disableColors || os.Getenv("CI") != "" {
		gchalk.SetLevel(gchalk.LevelNone)
		commands.EmojiEnabled = false
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	setDefaults(home)

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(home, ".config")
	}
	globals.ConfigDir = filepath.Join(configDir, "lunarpkg")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(globals.ConfigDir)
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	// LUNARPKG_INSTALLDIR etc.
	viper.SetEnvPrefix("lunarpkg")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	configErr := viper.ReadInConfig()

	if !verbose && !viper.GetBool("verboseLogging") {
		log.SetOutput(io.Discard)
	}
	if configErr == nil {
		log.Println("[INFO] Using config file:", viper.ConfigFileUsed())
	}
}
