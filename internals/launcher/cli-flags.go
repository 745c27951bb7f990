package launcher

import (
	"github.com/minepkg/lunarpkg/internals/launchcmd"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LaunchFlags are cli flags used to overwrite launch behavior
type LaunchFlags struct {
	// Version is set from the positional argument, not a flag
	Version     string
	Branch      string
	Module      string
	Java        string
	JVMArgs     []string
	ProgramArgs []string
	Agents      []string
	Server      string
	Width       int
	Height      int
	Ram         int
	Force       bool
	Textures    bool
}

// CmdLaunchFlags registers the shared launch flags on cmd
func CmdLaunchFlags(cmd *cobra.Command) *LaunchFlags {
	flags := LaunchFlags{}
	cmd.Flags().StringVar(&flags.Branch, "branch", "", "Lunar Client branch")
	cmd.Flags().StringVar(&flags.Module, "module", "", "Lunar Client module")
	cmd.Flags().StringVar(&flags.Java, "java", "", "Path to the java executable")
	cmd.Flags().StringArrayVar(&flags.JVMArgs, "jvm-arg", nil, "Additional JVM flag (can be repeated)")
	cmd.Flags().StringArrayVar(&flags.ProgramArgs, "program-arg", nil, "Additional program argument, passed through unchanged (can be repeated)")
	cmd.Flags().StringArrayVar(&flags.Agents, "agent", nil, "Java agent as path or path=options (can be repeated)")
	cmd.Flags().StringVar(&flags.Server, "server", "", "Server to join after startup")
	cmd.Flags().IntVar(&flags.Width, "width", 0, "Window width")
	cmd.Flags().IntVar(&flags.Height, "height", 0, "Window height")
	cmd.Flags().IntVar(&flags.Ram, "ram", 0, "Amount of RAM in MiB to use (0 picks a default)")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Verify the sha1 of all files and replace outdated ones")
	cmd.Flags().BoolVar(&flags.Textures, "textures", true, "Also download textures")

	return &flags
}

// Options returns the launch options for the flags, unset flags are taken from the config
func (f *LaunchFlags) Options() (launchcmd.Options, error) {
	opts := launchcmd.Options{
		Version:      f.Version,
		Branch:       or(f.Branch, viper.GetString("branch")),
		Module:       or(f.Module, viper.GetString("module")),
		InstallDir:   viper.GetString("installDir"),
		Java:         or(f.Java, viper.GetString("java")),
		JVMArgs:      f.JVMArgs,
		ProgramArgs:  f.ProgramArgs,
		Width:        f.Width,
		Height:       f.Height,
		GameDir:      viper.GetString("gameDir"),
		TexturesDir:  viper.GetString("texturesDir"),
		Server:       f.Server,
		SetupNatives: true,
	}
	opts.JVMArgs = withHeapFlag(opts.JVMArgs, f.Ram)
	if opts.Width == 0 {
		opts.Width = viper.GetInt("width")
	}
	if opts.Height == 0 {
		opts.Height = viper.GetInt("height")
	}

	for _, raw := range f.Agents {
		agent, err := launchcmd.ParseJavaAgent(raw)
		if err != nil {
			return opts, err
		}
		opts.Agents = append(opts.Agents, agent)
	}
	return opts, nil
}

func or(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
