// Package launcher prepares and launches the Lunar client with CLI output
package launcher

import (
	"io"
	"os"
	"os/exec"

	"github.com/minepkg/lunarpkg/internals/artifacts"
	"github.com/minepkg/lunarpkg/internals/launchcmd"
	"github.com/minepkg/lunarpkg/internals/lunar"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
)

// Launcher can launch the Lunar client with CLI output
type Launcher struct {
	// Catalog is used to fetch the launch manifest and texture index
	Catalog *lunar.Client
	// Synchronizer downloads artifacts and textures
	Synchronizer *artifacts.Synchronizer

	// Options are passed to the launch command builder
	Options launchcmd.Options

	// ForceUpdate checks the sha1 of every existing file and replaces outdated ones
	ForceUpdate bool
	// SyncTextures also downloads the texture index
	SyncTextures bool
	// NonInteractive determines if fancy spinners or prompts should be displayed
	NonInteractive bool
	// ConfirmPartial is asked whether to launch even though optional files are missing.
	// The launch continues if this is nil
	ConfirmPartial func(failed []string) bool

	// Manifest is the launch manifest. it should be set after calling `Prepare`
	Manifest *lunarmanifest.VersionManifest
	// Result is the artifact sync result. it should be set after calling `Prepare`
	Result *artifacts.Result

	Cmd *exec.Cmd

	// Stdout receives all output (defaults to os.Stdout)
	Stdout io.Writer
	// Stderr receives the client's error output (defaults to os.Stderr)
	Stderr io.Writer
}

// New returns a launcher using catalog and syncer
func New(catalog *lunar.Client, syncer *artifacts.Synchronizer, opts launchcmd.Options) *Launcher {
	return &Launcher{
		Catalog:      catalog,
		Synchronizer: syncer,
		Options:      opts,
	}
}

func (l *Launcher) out() io.Writer {
	if l.Stdout != nil {
		return l.Stdout
	}
	return os.Stdout
}

func (l *Launcher) errOut() io.Writer {
	if l.Stderr != nil {
		return l.Stderr
	}
	return os.Stderr
}
