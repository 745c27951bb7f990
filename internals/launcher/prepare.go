package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/lunarpkg/internals/artifacts"
	"github.com/minepkg/lunarpkg/internals/commands"
	"github.com/minepkg/lunarpkg/internals/lunar"
	"github.com/minepkg/lunarpkg/internals/utils"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
)

// ErrLaunchAborted is returned if the user did not want to launch with missing files
var ErrLaunchAborted = &commands.CliError{Text: "launch aborted"}

// Prepare fetches the launch manifest and makes sure all artifacts
// are downloaded. The launch can not continue if this fails
func (l *Launcher) Prepare(ctx context.Context) error {
	l.printIntro()

	if err := l.ensureDirs(); err != nil {
		return err
	}

	if err := l.prepareManifest(ctx); err != nil {
		return err
	}

	if err := l.prepareArtifacts(ctx); err != nil {
		return err
	}

	if l.SyncTextures {
		l.prepareTextures(ctx)
	}

	l.printOutro()
	return nil
}

// ensureDirs creates the install, game & textures dirs
func (l *Launcher) ensureDirs() error {
	for _, dir := range []string{l.Options.InstallDir, l.Options.GameDir, l.Options.TexturesDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return &commands.CliError{
				Text: fmt.Sprintf("could not create directory %s", dir),
				Help: err.Error(),
				Err:  err,
			}
		}
	}
	return nil
}

func (l *Launcher) prepareManifest(ctx context.Context) error {
	opts := l.Options
	fmt.Fprint(l.out(), commands.StylePipe.Render(gchalk.BgGray("Manifest")))

	man, err := l.Catalog.FetchVersionManifest(ctx, opts.Version, opts.Branch, opts.Module)
	if err != nil {
		fmt.Fprintln(l.out())
		return manifestError(err)
	}
	fmt.Fprintln(l.out())
	l.Manifest = man

	classPath := len(man.ArtifactsOfKind(lunarmanifest.KindClassPath))
	external := len(man.ArtifactsOfKind(lunarmanifest.KindExternalFile))
	fmt.Fprintf(l.out(), "│ %d artifacts %s\n", len(man.Artifacts), gchalk.Gray(fmt.Sprintf("(%d classpath, %d external)", classPath, external)))
	if !man.IchorEnabled {
		fmt.Fprintln(l.out(), "│ "+gchalk.Gray("ichor disabled"))
	}
	fmt.Fprintln(l.out(), "│")
	return nil
}

func manifestError(err error) error {
	var upstreamErr *lunar.UpstreamError
	var schemaErr *lunar.SchemaError
	switch {
	case errors.As(err, &upstreamErr):
		return &commands.CliError{
			Text: "could not fetch the launch manifest",
			Help: upstreamErr.Error(),
			Suggestions: []string{
				"Check your internet connection and try again",
				"Make sure the version, branch and module exist (lunarpkg versions)",
			},
			Err: err,
		}
	case errors.As(err, &schemaErr):
		return &commands.CliError{
			Text: "the launch manifest has an unexpected format",
			Help: schemaErr.Error(),
			Err:  err,
		}
	}
	return err
}

// prepareArtifacts syncs the artifacts and decides whether we can launch
func (l *Launcher) prepareArtifacts(ctx context.Context) error {
	table := l.Manifest.Table()
	fmt.Fprint(l.out(), commands.StylePipe.Render(gchalk.BgGray("Artifacts")))
	switch {
	case l.ForceUpdate:
		fmt.Fprint(l.out(), gchalk.Gray("(verifying)"))
	case !artifacts.HasFullInstall(l.Options.InstallDir, table):
		fmt.Fprint(l.out(), gchalk.Gray("(installing)"))
	}
	fmt.Fprintln(l.out())

	result, err := l.sync(ctx, "Downloading artifacts", l.Options.InstallDir, table, l.ForceUpdate)
	if err != nil {
		return err
	}
	l.Result = result
	l.printResult(result)

	if missing := result.MissingClassPath(table); len(missing) != 0 {
		return missingError(result, missing)
	}

	if !result.OK() {
		failed := result.FailedNames()
		for _, name := range failed {
			fmt.Fprintln(l.out(), "│ "+gchalk.Yellow("could not download "+name+": "+result.Failed[name].Error()))
		}
		if l.ConfirmPartial != nil && !l.ConfirmPartial(failed) {
			return ErrLaunchAborted
		}
	}
	fmt.Fprintln(l.out(), "│")
	return nil
}

func missingError(result *artifacts.Result, missing []string) error {
	reasons := make([]string, 0, len(missing))
	for _, name := range missing {
		reasons = append(reasons, name+": "+result.Failed[name].Error())
	}
	return &commands.CliError{
		Text: fmt.Sprintf("%d required files could not be downloaded: %s", len(missing), strings.Join(missing, ", ")),
		Help: strings.Join(reasons, "\n"),
		Suggestions: []string{
			"Try again in a few minutes",
			"Run with --force to verify all files",
		},
	}
}

// prepareTextures downloads textures. Failures are only warnings
func (l *Launcher) prepareTextures(ctx context.Context) {
	fmt.Fprintln(l.out(), commands.StylePipe.Render(gchalk.BgGray("Textures")))

	table, err := l.Catalog.FetchTexturesIndex(ctx, l.Manifest)
	if err != nil {
		fmt.Fprintln(l.out(), "│ "+gchalk.Yellow("could not fetch texture index: "+err.Error()))
		fmt.Fprintln(l.out(), "│")
		return
	}

	result, err := l.sync(ctx, "Downloading textures", l.Options.TexturesDir, table, false)
	if err != nil {
		fmt.Fprintln(l.out(), "│ "+gchalk.Yellow("could not sync textures: "+err.Error()))
		fmt.Fprintln(l.out(), "│")
		return
	}
	l.printResult(result)
	if !result.OK() {
		fmt.Fprintln(l.out(), "│ "+gchalk.Yellow(fmt.Sprintf("%d textures could not be downloaded", len(result.Failed))))
	}
	fmt.Fprintln(l.out(), "│")
}

func (l *Launcher) sync(ctx context.Context, msg string, dir string, table lunarmanifest.ArtifactTable, update bool) (*artifacts.Result, error) {
	spinner := NewMaybeSpinner(!l.NonInteractive, l.out())
	spinner.Start(msg)
	defer spinner.Stop()

	syncer := *l.Synchronizer
	syncer.OnProgress = func(p int) {
		spinner.Update(fmt.Sprintf("%s (%d%%)", msg, p))
	}
	return syncer.Sync(ctx, dir, table, update)
}

func (l *Launcher) printResult(result *artifacts.Result) {
	fmt.Fprintf(
		l.out(),
		"│ %s downloaded %s, %s up to date\n",
		utils.HumanInteger(len(result.Downloaded)),
		gchalk.Gray("("+utils.HumanBytes(result.Bytes)+")"),
		utils.HumanInteger(len(result.Skipped)),
	)
}

func (l *Launcher) printIntro() {
	opts := l.Options
	fmt.Fprintln(l.out(), commands.StyleTitle.Render("Lunar Client "+opts.Version))
	fmt.Fprintln(l.out(), "│")
	fmt.Fprintln(l.out(), "│ Version: "+utils.PrettyVersion(opts.Version, opts.Branch, opts.Module))
	fmt.Fprintln(l.out(), "│ Install directory: "+opts.InstallDir)
	fmt.Fprintln(l.out(), "│ Game directory: "+opts.GameDir)
	fmt.Fprintln(l.out(), "│")
}

func (l *Launcher) printOutro() {
	java := l.Options.Java
	if java == "" {
		java = "java (system)"
	}
	fmt.Fprintln(l.out(), "│ Java "+java)
}
