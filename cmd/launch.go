package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/launchcmd"
	"github.com/minepkg/lunarpkg/internals/launcher"
	"github.com/minepkg/lunarpkg/internals/utils"
	"github.com/spf13/cobra"
)

func init() {
	runner := &launchRunner{}
	cmd := commands.New(&cobra.Command{
		Use:     "launch [version]",
		Short:   "Launch Lunar Client",
		Long:    "Downloads missing files and launches Lunar Client for the given Minecraft version",
		Aliases: []string{"run", "start", "play"},
		Args:    cobra.MaximumNArgs(1),
		Example: `
  lunarpkg launch 1.8.9
  lunarpkg launch 1.20.1 --module fabric --server mc.hypixel.net
  lunarpkg launch 1.8.9 --jvm-arg -XX:+UseG1GC --agent ./cosmetics.jar`,
	}, runner)

	cmd.Flags().BoolVar(&runner.printCmd, "print", false, "Only print the launch command")
	runner.flags = launcher.CmdLaunchFlags(cmd.Command)

	rootCmd.AddCommand(cmd.Command)
}

type launchRunner struct {
	flags    *launcher.LaunchFlags
	printCmd bool
}

func (l *launchRunner) RunE(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	catalog := newCatalog()
	version, err := resolveVersion(ctx, catalog, args)
	if err != nil {
		return err
	}
	l.flags.Version = version

	opts, err := l.flags.Options()
	if err != nil {
		return err
	}
	opts.Module = resolveModule(ctx, catalog, opts.Version, opts.Module)

	lunarLauncher := launcher.New(catalog, newSynchronizer(), opts)
	lunarLauncher.ForceUpdate = l.flags.Force
	lunarLauncher.SyncTextures = l.flags.Textures
	lunarLauncher.NonInteractive = nonInteractive()
	if !lunarLauncher.NonInteractive {
		lunarLauncher.ConfirmPartial = func(failed []string) bool {
			return utils.Confirm(fmt.Sprintf("%d optional files are missing. Launch anyway?", len(failed)), true)
		}
	}

	if _, err := lunarLauncher.ResolveJava(); err != nil && !l.printCmd {
		return err
	}

	if err := lunarLauncher.Prepare(ctx); err != nil {
		return err
	}

	if opts.Server != "" {
		pingServer(opts.Server)
	}

	if l.printCmd {
		builtCmd, err := lunarLauncher.BuildCmd(ctx)
		if err != nil {
			return err
		}
		fmt.Println(launchcmd.String(builtCmd.Args))
		return nil
	}

	// the child handles ctrl-c itself, we only wait for it to exit
	stop()
	return lunarLauncher.Run(context.Background())
}

// pingServer warns if the server to join does not answer
func pingServer(address string) {
	status, err := launcher.PingServer(address)
	if err != nil {
		fmt.Println("│ " + gchalk.Yellow("Server "+address+" did not answer: "+err.Error()))
		return
	}
	motd := strings.TrimSpace(status.Description)
	fmt.Printf("│ Server %s %s\n", address, gchalk.Gray(fmt.Sprintf("(%d/%d players) %s", status.Online, status.Max, motd)))
}
