package launcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/internals/artifacts"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/launchcmd"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
	"github.com/shirou/gopsutil/v3/process"
)

// BuildCmd builds the launch command. A corrupt natives archive is downloaded
// again once before giving up. `Prepare` has to be called first
func (l *Launcher) BuildCmd(ctx context.Context) (*exec.Cmd, error) {
	if l.Manifest == nil {
		return nil, errors.New("launch manifest missing, call Prepare first")
	}

	args, err := launchcmd.Build(l.Options, l.Manifest)

	var archiveErr *artifacts.ArchiveError
	if errors.As(err, &archiveErr) {
		log.Printf("[WARN] %s, downloading it again", archiveErr)
		fmt.Fprintln(l.out(), "│ "+gchalk.Yellow("natives archive is corrupt, downloading it again"))
		if err := l.refetchNatives(ctx); err != nil {
			return nil, err
		}
		args, err = launchcmd.Build(l.Options, l.Manifest)
	}
	if err != nil {
		return nil, err
	}

	argv := launchcmd.Argv(args)
	log.Println("[INFO] launch command: " + launchcmd.String(args))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = l.Options.GameDir
	cmd.Env = append(os.Environ(), "PWD="+l.Options.GameDir)
	cmd.Stdin = os.Stdin
	cmd.Stdout = l.out()
	cmd.Stderr = l.errOut()
	return cmd, nil
}

// refetchNatives deletes the natives archive and downloads it again
func (l *Launcher) refetchNatives(ctx context.Context) error {
	natives, ok := l.Manifest.Natives()
	if !ok {
		return &commands.CliError{
			Text: "the natives archive is corrupt and the manifest does not declare one to download",
			Help: "Delete " + launchcmd.NativesArchive(l.Options.InstallDir, l.Manifest) + " and try again",
		}
	}

	archive := launchcmd.NativesArchive(l.Options.InstallDir, l.Manifest)
	if err := os.Remove(archive); err != nil && !os.IsNotExist(err) {
		return err
	}

	table := lunarmanifest.ArtifactTable{natives.Name: natives.Info()}
	result, err := l.Synchronizer.Sync(ctx, l.Options.InstallDir, table, true)
	if err != nil {
		return err
	}
	if !result.OK() {
		return missingError(result, result.FailedNames())
	}
	return nil
}

// Run will launch the client and block until it is stopped
func (l *Launcher) Run(ctx context.Context) error {
	fmt.Fprintln(l.out(), "│")
	fmt.Fprintln(
		l.out(),
		lipgloss.JoinHorizontal(
			0.5,
			gchalk.Hex("#7a563b")("│"+"\n"+"┕"),
			commands.StyleLunar.Render(commands.Emoji("🌙 ")+"Launching Lunar Client"),
		),
	)

	cmd, err := l.BuildCmd(ctx)
	if err != nil {
		return err
	}
	l.Cmd = cmd

	runtime.GC()
	if err := cmd.Start(); err != nil {
		return &commands.CliError{
			Text: "could not start java",
			Help: err.Error(),
			Suggestions: []string{
				"Make sure java is installed or pass the path with --java",
			},
			Err: err,
		}
	}

	stop := l.terminateOnInterrupt(ctx, cmd)
	err = cmd.Wait()
	stop()

	code := cmd.ProcessState.ExitCode()
	// 130 is what we get after ctrl-c
	if code == 0 || code == 130 {
		fmt.Fprintf(l.out(), "\nLunar Client was stopped normally (exit code %d).\n", code)
		return nil
	}

	return &commands.CliError{
		Text: fmt.Sprintf("Lunar Client crashed (exit code %d)", code),
		Help: "Check the logs in " + l.Options.GameDir,
		Err:  err,
	}
}

// terminateOnInterrupt stops the client when we get interrupted or ctx is done
func (l *Launcher) terminateOnInterrupt(ctx context.Context, cmd *exec.Cmd) func() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case <-c:
			fmt.Fprintln(l.out(), "Caught interrupt, stopping Lunar Client")
		case <-ctx.Done():
		case <-done:
			return
		}
		p, err := process.NewProcess(int32(cmd.Process.Pid))
		if err != nil {
			log.Printf("[WARN] could not find client process: %s", err)
			return
		}
		if err := p.Terminate(); err != nil {
			log.Printf("[WARN] could not terminate client: %s", err)
		}
	}()

	return func() {
		signal.Stop(c)
		close(done)
	}
}
