package launchcmd

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/minepkg/lunarpkg/internals/artifacts"
	"github.com/minepkg/lunarpkg/pkg/lunarmanifest"
)

func testManifest() *lunarmanifest.VersionManifest {
	return &lunarmanifest.VersionManifest{
		Version:      "1.8.9",
		Branch:       "master",
		Module:       "lunar",
		MainClass:    "com.moonsworth.lunar.genesis.Genesis",
		JVMExtraArgs: []string{"-Xss2M", "-Djna.boot.library.path=natives"},
		IchorEnabled: true,
		Artifacts: []lunarmanifest.Artifact{
			{Name: "a.jar", Kind: lunarmanifest.KindClassPath},
			{Name: "x.dat", Kind: lunarmanifest.KindExternalFile},
			{Name: "b.jar", Kind: lunarmanifest.KindClassPath},
			{Name: "natives-windows.zip", Kind: lunarmanifest.KindNatives},
			{Name: "y.dat", Kind: lunarmanifest.KindExternalFile},
		},
	}
}

func testOptions() Options {
	return Options{
		Version:     "1.8.9",
		Branch:      "master",
		Module:      "lunar",
		InstallDir:  "/x",
		Java:        "/usr/bin/java",
		JVMArgs:     []string{"-Xmx2G"},
		Width:       854,
		Height:      480,
		GameDir:     "/game",
		TexturesDir: "/textures",
	}
}

func TestBuild(t *testing.T) {
	args, err := Build(testOptions(), testManifest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"/usr/bin/java",
		"-Xmx2G -Xss2M -Djna.boot.library.path=/x/natives",
		"-cp /x/a.jar;/x/b.jar;",
		"com.moonsworth.lunar.genesis.Genesis",
		"--version 1.8.9",
		"--accessToken 0",
		"--userProperties {}",
		"--launcherVersion 2.15.1",
		"--hwid PUBLIC-HWID",
		"--installationId INSTALL-ID",
		"--workingDirectory /x",
		"--classpathDir /x",
		"--width 854",
		"--height 480",
		"--gameDir /game",
		"--texturesDir /textures",
		"--assetIndex 1.8",
		"--ichorClassPath a.jar,b.jar,",
		"--ichorExternalFiles x.dat,y.dat,",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildIchor(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
	}{
		{"enabled", true},
		{"disabled", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			man := testManifest()
			man.IchorEnabled = tt.enabled
			args, err := Build(testOptions(), man)
			if err != nil {
				t.Fatal(err)
			}
			cmdline := String(args)
			for _, flag := range []string{"--ichorClassPath", "--ichorExternalFiles"} {
				if strings.Contains(cmdline, flag) != tt.enabled {
					t.Fatalf("expected %s present = %v in %q", flag, tt.enabled, cmdline)
				}
			}
		})
	}
}

func TestBuildOptionalGroups(t *testing.T) {
	opts := testOptions()
	opts.JVMArgs = nil
	opts.Java = ""
	opts.Server = "mc.hypixel.net"
	opts.Agents = []JavaAgent{{Path: "/agents/a.jar"}, {Path: "/agents/b.jar", Options: "debug=true"}}
	opts.ProgramArgs = []string{"--foo ", "bar"}

	man := testManifest()
	man.JVMExtraArgs = nil
	man.MainClass = ""
	man.IchorEnabled = false

	args, err := Build(opts, man)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"java",
		"-javaagent:/agents/a.jar",
		"-javaagent:/agents/b.jar=debug=true",
		"-cp /x/a.jar;/x/b.jar;",
		DefaultMainClass,
	}
	if diff := cmp.Diff(want, args[:len(want)]); diff != "" {
		t.Fatalf("leading args mismatch (-want +got):\n%s", diff)
	}

	tail := args[len(args)-3:]
	wantTail := []string{"--server mc.hypixel.net", "--assetIndex 1.8", "--foo bar"}
	if diff := cmp.Diff(wantTail, tail); diff != "" {
		t.Fatalf("trailing args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmptyClassPath(t *testing.T) {
	man := testManifest()
	man.Artifacts = nil
	args, err := Build(testOptions(), man)
	if err != nil {
		t.Fatal(err)
	}
	if args[2] != "-cp " {
		t.Fatalf("expected empty classpath, got %q", args[2])
	}
}

func TestBuildMissingMainClass(t *testing.T) {
	fallback := DefaultMainClass
	DefaultMainClass = ""
	defer func() { DefaultMainClass = fallback }()

	man := testManifest()
	man.MainClass = ""
	_, err := Build(testOptions(), man)

	var mainErr *MissingMainClassError
	if !errors.As(err, &mainErr) {
		t.Fatalf("expected MissingMainClassError, got %v", err)
	}
}

func TestRewriteNativesPath(t *testing.T) {
	tests := []struct {
		arg  string
		want string
	}{
		{"-Djna.boot.library.path=natives", "-Djna.boot.library.path=/x/natives"},
		{"-Djava.library.path=natives", "-Djava.library.path=/x/natives"},
		{"-Djava.library.path=/somewhere/else", "-Djava.library.path=/somewhere/else"},
		{"natives", "natives"},
		{"-Xss2M", "-Xss2M"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			if got := rewriteNativesPath(tt.arg, "/x/natives"); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestArgv(t *testing.T) {
	args := []string{"java", "-Xmx2G -Xss2M", "-cp /x/a.jar;", "Main", "--width 854"}
	want := []string{"java", "-Xmx2G", "-Xss2M", "-cp", "/x/a.jar;", "Main", "--width", "854"}
	if diff := cmp.Diff(want, Argv(args)); diff != "" {
		t.Fatalf("argv mismatch (-want +got):\n%s", diff)
	}
	if got := String(args); got != "java -Xmx2G -Xss2M -cp /x/a.jar; Main --width 854" {
		t.Fatalf("unexpected command line %q", got)
	}
}

func TestBuildSetupNatives(t *testing.T) {
	dir := t.TempDir()

	f, err := os.Create(filepath.Join(dir, "natives-windows.zip"))
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	entry, _ := w.Create("lwjgl64.dll")
	entry.Write([]byte("lwjgl"))
	w.Close()
	f.Close()

	opts := testOptions()
	opts.InstallDir = dir
	opts.SetupNatives = true
	if _, err := Build(opts, testManifest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, artifacts.NativesDir, "lwjgl64.dll")); err != nil {
		t.Fatalf("expected natives to be extracted: %v", err)
	}
}

func TestBuildSetupNativesCorrupt(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, DefaultNativesArchive), []byte("garbage"), 0644)

	man := testManifest()
	man.Artifacts = man.Artifacts[:3]

	opts := testOptions()
	opts.InstallDir = dir
	opts.SetupNatives = true
	_, err := Build(opts, man)

	var archiveErr *artifacts.ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("expected ArchiveError, got %v", err)
	}
}

func TestBuildWithoutNatives(t *testing.T) {
	dir := t.TempDir()

	man := testManifest()
	man.Artifacts = man.Artifacts[:3]

	opts := testOptions()
	opts.InstallDir = dir
	opts.SetupNatives = true
	args, err := Build(opts, man)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) == 0 {
		t.Fatal("expected launch args")
	}
	if _, err := os.Stat(filepath.Join(dir, artifacts.NativesDir)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no natives dir, got %v", err)
	}
}

func TestBuildDeclaredNativesMissing(t *testing.T) {
	opts := testOptions()
	opts.InstallDir = t.TempDir()
	opts.SetupNatives = true
	_, err := Build(opts, testManifest())

	var archiveErr *artifacts.ArchiveError
	if !errors.As(err, &archiveErr) {
		t.Fatalf("expected ArchiveError, got %v", err)
	}
}

func TestParseJavaAgent(t *testing.T) {
	tests := []struct {
		in      string
		want    JavaAgent
		wantErr bool
	}{
		{"agent.jar", JavaAgent{Path: "agent.jar"}, false},
		{"agent.jar=a=b", JavaAgent{Path: "agent.jar", Options: "a=b"}, false},
		{"", JavaAgent{}, true},
		{"=opts", JavaAgent{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseJavaAgent(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func ExampleJavaAgent_JVMArgs() {
	agent := JavaAgent{Path: "/agents/cosmetics.jar", Options: "unlock"}
	fmt.Println(agent.JVMArgs())
	// Output: -javaagent:/agents/cosmetics.jar=unlock
}
