package launcher

import (
	"fmt"
	"os/exec"

	"github.com/minepkg/lunarpkg/internals/commands"
)

// ResolveJava looks up the configured java executable and stores the absolute path
// in the launch options
func (l *Launcher) ResolveJava() (string, error) {
	java := l.Options.Java
	if java == "" {
		java = "java"
	}

	path, err := exec.LookPath(java)
	if err != nil {
		return "", &commands.CliError{
			Text: fmt.Sprintf("java executable %q not found", java),
			Help: "Lunar Client needs a Java 17 runtime (or newer) to start.",
			Suggestions: []string{
				"Install Java 17 and make sure it is in your PATH",
				"Pass the path to java with --java",
			},
			Err: err,
		}
	}

	l.Options.Java = path
	return path, nil
}
