// Package launchcmd builds the argument list used to start the Lunar client.
package launchcmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minepkg/lunarpkg/internals/artifacts"
	"github.com/minepkg/lunarpkg/internals/lunar"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
)

// DefaultMainClass is used if the launch manifest does not declare a main class
var DefaultMainClass = "com.moonsworth.lunar.genesis.Genesis"

// DefaultNativesArchive is used if the manifest does not declare a NATIVES artifact
const DefaultNativesArchive = "natives.zip"

// nativesPathFlags may contain the natives placeholder as their value
var nativesPathFlags = []string{
	"-Djna.boot.library.path=",
	"-Djava.library.path=",
}

// MissingMainClassError is returned when neither the manifest nor DefaultMainClass
// provide a main class
type MissingMainClassError struct {
	Version string
}

func (e *MissingMainClassError) Error() string {
	return fmt.Sprintf("no main class available to launch %s", e.Version)
}

// Options are user supplied launch settings
type Options struct {
	Version string
	Branch  string
	Module  string
	// InstallDir contains all artifacts and the natives directory
	InstallDir string
	// Java is the java executable. defaults to "java"
	Java        string
	JVMArgs     []string
	ProgramArgs []string
	Width       int
	Height      int
	GameDir     string
	TexturesDir string
	// Server is joined after startup if set
	Server string
	Agents []JavaAgent
	// SetupNatives extracts the natives archive before the args are returned
	SetupNatives bool
}

// NativesDir returns the directory natives are extracted to
func (o *Options) NativesDir() string {
	return o.InstallDir + "/" + artifacts.NativesDir
}

// artifactPath joins with "/" on every platform, the client expects exactly that
func (o *Options) artifactPath(name string) string {
	return o.InstallDir + "/" + name
}

// Build returns the launch arguments, java executable first.
// Every element is a group of arguments the way the client expects them:
// JVM flags are a single blob, flag and value share an element.
// Use Argv or String to get something executable
func Build(opts Options, man *lunarmanifest.VersionManifest) ([]string, error) {
	java := opts.Java
	if java == "" {
		java = "java"
	}
	args := []string{java}

	if jvm := jvmArgs(&opts, man); len(jvm) != 0 {
		args = append(args, strings.Join(jvm, " "))
	}

	for _, agent := range opts.Agents {
		args = append(args, agent.JVMArgs())
	}

	classPath := man.ArtifactsOfKind(lunarmanifest.KindClassPath)
	cp := make([]string, 0, len(classPath))
	ichorClassPath := make([]string, 0, len(classPath))
	for _, a := range classPath {
		cp = append(cp, opts.artifactPath(a.Name)+";")
		ichorClassPath = append(ichorClassPath, a.Name+",")
	}
	args = append(args, "-cp "+strings.Join(cp, ""))

	mainClass := man.MainClass
	if mainClass == "" {
		mainClass = DefaultMainClass
	}
	if mainClass == "" {
		return nil, &MissingMainClassError{Version: man.Version}
	}
	args = append(args, mainClass)

	args = append(args,
		"--version "+man.Version,
		"--accessToken 0",
		"--userProperties {}",
		"--launcherVersion "+lunar.LauncherVersion,
		"--hwid PUBLIC-HWID",
		"--installationId INSTALL-ID",
		"--workingDirectory "+opts.InstallDir,
		"--classpathDir "+opts.InstallDir,
		"--width "+strconv.Itoa(opts.Width),
		"--height "+strconv.Itoa(opts.Height),
		"--gameDir "+opts.GameDir,
		"--texturesDir "+opts.TexturesDir,
	)
	if opts.Server != "" {
		args = append(args, "--server "+opts.Server)
	}

	args = append(args, "--assetIndex "+man.AssetIndexBasis())

	if man.IchorEnabled {
		externalFiles := man.ArtifactsOfKind(lunarmanifest.KindExternalFile)
		ichorFiles := make([]string, 0, len(externalFiles))
		for _, a := range externalFiles {
			ichorFiles = append(ichorFiles, a.Name+",")
		}
		args = append(args,
			"--ichorClassPath "+strings.Join(ichorClassPath, ""),
			"--ichorExternalFiles "+strings.Join(ichorFiles, ""),
		)
	}

	// program args are passed through as one string, callers join them themselves
	if len(opts.ProgramArgs) != 0 {
		args = append(args, strings.Join(opts.ProgramArgs, ""))
	}

	if opts.SetupNatives {
		if err := SetupNatives(opts.InstallDir, man); err != nil {
			return nil, err
		}
	}

	return args, nil
}

// SetupNatives extracts the natives archive of man into installDir/natives.
// Extraction is skipped if man declares no natives and the fallback archive does not exist
func SetupNatives(installDir string, man *lunarmanifest.VersionManifest) error {
	archive := NativesArchive(installDir, man)
	if _, declared := man.Natives(); !declared {
		if _, err := os.Stat(archive); errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] %s declares no natives and %s does not exist, skipping extraction", man.Identifier(), archive)
			return nil
		}
	}
	return artifacts.ExtractNatives(archive, filepath.Join(installDir, artifacts.NativesDir))
}

// NativesArchive returns the path of the natives archive of man inside installDir
func NativesArchive(installDir string, man *lunarmanifest.VersionManifest) string {
	archive := DefaultNativesArchive
	if natives, ok := man.Natives(); ok {
		archive = natives.Name
	}
	return filepath.Join(installDir, filepath.FromSlash(archive))
}

func jvmArgs(opts *Options, man *lunarmanifest.VersionManifest) []string {
	jvm := make([]string, 0, len(opts.JVMArgs)+len(man.JVMExtraArgs))
	jvm = append(jvm, opts.JVMArgs...)
	for _, arg := range man.JVMExtraArgs {
		jvm = append(jvm, rewriteNativesPath(arg, opts.NativesDir()))
	}
	return jvm
}

func rewriteNativesPath(arg string, nativesDir string) string {
	for _, flag := range nativesPathFlags {
		if arg == flag+lunarmanifest.NativesPlaceholder {
			return flag + nativesDir
		}
	}
	return arg
}

// String joins args into a single command line
func String(args []string) string {
	return strings.Join(args, " ")
}

// Argv splits args into single arguments on whitespace, just like the client's own
// launcher does with the command line. Paths containing spaces are not supported
func Argv(args []string) []string {
	return strings.Fields(String(args))
}
