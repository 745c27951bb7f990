package utils

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/mattn/go-isatty"
)

// IsInteractive returns true if stdout is a terminal
func IsInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// OpenBrowser opens the given url in a browser
func OpenBrowser(url string) {
	var err error

	fmt.Println("Opening ", url)

	// 15 seconds timeout to open the browser
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch runtime.GOOS {
	case "linux":
		err = exec.CommandContext(ctx, "xdg-open", url).Run()
	case "windows":
		err = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url).Run()
	case "darwin":
		err = exec.CommandContext(ctx, "open", url).Run()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	if err != nil {
		fmt.Println("Could not open browser, please open the following url manually:")
		fmt.Println(url)
	}
}
