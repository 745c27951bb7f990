package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
)

// Logger loggs pretty stuff to the console
type Logger struct {
	Out       io.Writer
	emojis    bool
	indention int
}

// helper for indention
func (l *Logger) println(a string) {
	fmt.Fprintln(l.Out, strings.Repeat(" ", l.indention)+a)
}

func (l *Logger) sprintEmoji(e string) string {
	if l.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan line
func (l *Logger) Headline(s string) {
	l.println(gchalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (l *Logger) Info(s string) {
	l.println(s)
}

// Log prints a gray line
func (l *Logger) Log(s string) {
	l.println(gchalk.Gray(s))
}

// Warn will print a warning
func (l *Logger) Warn(s string) {
	l.println(l.sprintEmoji("⚠️ ") + gchalk.WithYellow().Bold(s))
}

// Success prints a green line
func (l *Logger) Success(s string) {
	l.println(l.sprintEmoji("✔") + gchalk.Green(s))
}

// Indent returns a logger that indents every line by n more spaces
func (l *Logger) Indent(n int) *Logger {
	logger := *l
	logger.indention += n
	return &logger
}

// NewTask returns a new Task logger
func (l *Logger) NewTask(end int) *Task {
	logger := *l
	return &Task{&logger, 0, end}
}

// New returns a new Logger writing to stdout
func New() *Logger {
	emojis := runtime.GOOS != "windows"

	// disable color for CI
	if os.Getenv("CI") != "" {
		emojis = false
		gchalk.SetLevel(gchalk.LevelNone)
	}
	return &Logger{Out: os.Stdout, emojis: emojis}
}

// Task logs but with progress
type Task struct {
	*Logger
	current int
	end     int
}

// Step prints progress
func (l *Task) Step(e string, s string) {
	l.current++
	text := gchalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		l.current,
		l.end,
		l.sprintEmoji(e),
		s,
	))

	// step headlines have no indentation
	fmt.Fprintln(l.Out, text)
}
