package log

import (
	"fmt"
	"io"
	"os"
)

type logLevel int

const (
	SilentLevel logLevel = iota
	MajorLevel
	MinorLevel
	DebugLevel
)

var (
	out   io.Writer = os.Stdout
	level logLevel
)

func (t logLevel) String() string {
	switch t {
	case MajorLevel:
		return "Major"
	case MinorLevel:
		return "Minor"
	case DebugLevel:
		return "Debug"
	}

	return "Silent"
}

// SetOut redirects all logging output to the supplied io.Writer. The default is
// os.Stdout. The writer must never be nil.
func SetOut(w io.Writer) {
	if w == nil {
		panic("log.SetOut() called with a nil io.Writer")
	}
	out = w
}

// Out returns the current output writer for callers, such as the query logger, which
// write directly regardless of level. Never returns nil.
func Out() io.Writer {
	return out
}

// SetLevel sets the current logging level.
func SetLevel(l logLevel) {
	level = l
}

// Level returns the current logging level.
func Level() logLevel {
	return level
}

// IfMajor returns true if Major output is currently written. The If* functions exist for
// callers who want to avoid constructing expensive log arguments which would then be
// discarded.
func IfMajor() bool {
	return level >= MajorLevel
}

func IfMinor() bool {
	return level >= MinorLevel
}

func IfDebug() bool {
	return level >= DebugLevel
}

// Major is a fmt.Print style logger which only generates output when the level is
// MajorLevel or above. A trailing newline is always appended.
func Major(a ...interface{}) {
	if level >= MajorLevel {
		write(fmt.Sprint(a...), "")
	}
}

// Majorf is the fmt.Printf flavour of Major.
func Majorf(format string, a ...interface{}) {
	if level >= MajorLevel {
		write(fmt.Sprintf(format, a...), "")
	}
}

// Minor logs details associated with a Major event. Output is indented slightly to make
// the association visible when scanning the log.
func Minor(a ...interface{}) {
	if level >= MinorLevel {
		write(fmt.Sprint(a...), "  ")
	}
}

func Minorf(format string, a ...interface{}) {
	if level >= MinorLevel {
		write(fmt.Sprintf(format, a...), "  ")
	}
}

// Debug is for developers.
func Debug(a ...interface{}) {
	if level >= DebugLevel {
		write(fmt.Sprint(a...), "   Dbg:")
	}
}

func Debugf(format string, a ...interface{}) {
	if level >= DebugLevel {
		write(fmt.Sprintf(format, a...), "   Dbg:")
	}
}

func write(s, prefix string) {
	for len(s) > 0 && s[len(s)-1] == '\n' { // Chomp trailing newlines, we add our own
		s = s[:len(s)-1]
	}
	fmt.Fprint(out, prefix, s, "\n")
}
