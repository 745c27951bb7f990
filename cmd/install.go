package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/launcher"
	"github.com/spf13/cobra"
)

func init() {
	runner := &installRunner{}
	cmd := commands.New(&cobra.Command{
		Use:   "install [version]",
		Short: "Downloads Lunar Client without launching it",
		Long: `Downloads (or updates) all files needed to launch the given version and
extracts the natives. Use --force to check every file against its sha1.`,
		Aliases: []string{"i", "sync"},
		Args:    cobra.MaximumNArgs(1),
		Example: `
  lunarpkg install 1.8.9
  lunarpkg install 1.8.9 --force`,
	}, runner)

	runner.flags = launcher.CmdLaunchFlags(cmd.Command)

	rootCmd.AddCommand(cmd.Command)
}

type installRunner struct {
	flags *launcher.LaunchFlags
}

func (i *installRunner) RunE(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalog := newCatalog()
	version, err := resolveVersion(ctx, catalog, args)
	if err != nil {
		return err
	}
	i.flags.Version = version

	opts, err := i.flags.Options()
	if err != nil {
		return err
	}
	opts.Module = resolveModule(ctx, catalog, opts.Version, opts.Module)

	lunarLauncher := launcher.New(catalog, newSynchronizer(), opts)
	lunarLauncher.ForceUpdate = i.flags.Force
	lunarLauncher.SyncTextures = i.flags.Textures
	lunarLauncher.NonInteractive = nonInteractive()

	if err := lunarLauncher.Prepare(ctx); err != nil {
		return err
	}

	// building the command extracts the natives (and re-downloads a broken archive)
	if _, err := lunarLauncher.BuildCmd(ctx); err != nil {
		return err
	}

	fmt.Println("│")
	fmt.Printf("┕ %s%s is ready to launch (natives in %s)\n", commands.Emoji("✅ "), opts.Version, opts.NativesDir())
	return nil
}
