package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type LogLevel int

const (
	VERBOSE LogLevel = iota
	DEBUG
	INFO
	SUCCESS
	WARNING
	ERROR
	FATAL
)

func (level LogLevel) String() string {
	return []string{"V", "D", "I", "✓", "!", "!!", "PANIC"}[level]
}

func (level LogLevel) Color() *color.Color {
	return []*color.Color{
		color.New(color.FgWhite, color.Italic),
		color.New(color.FgWhite, color.Italic),
		color.New(color.FgWhite),
		color.New(color.FgHiGreen),
		color.New(color.FgYellow, color.Underline),
		color.New(color.FgHiRed, color.Bold),
		color.New(color.FgHiRed, color.Bold, color.Underline),
	}[level]
}

// Logger is a named logging handle. Each instance prefixes its output
// with the name it was constructed with (see Get), which allows log
// output from the various services to be distinguished easily.
type Logger interface {
	Emit(LogLevel, string, ...any)
	Verbosef(string, ...any)
	Debugf(string, ...any)
	Infof(string, ...any)
	Warnf(string, ...any)
	Errorf(string, ...any)
	Fatalf(string, ...any)
}

type loggerImpl struct {
	name string
}

func (l *loggerImpl) Emit(level LogLevel, message string, interpolations ...any) {
	coreLogger.emit(level, l.name, message, interpolations...)
}

func (l *loggerImpl) Verbosef(message string, interpolations ...any) {
	l.Emit(VERBOSE, message, interpolations...)
}

func (l *loggerImpl) Debugf(message string, interpolations ...any) {
	l.Emit(DEBUG, message, interpolations...)
}

func (l *loggerImpl) Infof(message string, interpolations ...any) {
	l.Emit(INFO, message, interpolations...)
}

func (l *loggerImpl) Warnf(message string, interpolations ...any) {
	l.Emit(WARNING, message, interpolations...)
}

func (l *loggerImpl) Errorf(message string, interpolations ...any) {
	l.Emit(ERROR, message, interpolations...)
}

// Fatalf emits the message at the FATAL level and then panics. The
// expectation is that a FATAL log is only used when the process cannot
// meaningfully continue.
func (l *loggerImpl) Fatalf(message string, interpolations ...any) {
	l.Emit(FATAL, message, interpolations...)
	panic(fmt.Sprintf(message, interpolations...))
}

type loggerMgr struct {
	sync.Mutex
	minLevel   LogLevel
	nameOffset int
	sink       io.Writer
}

var coreLogger = &loggerMgr{minLevel: INFO, sink: os.Stdout}

// Get returns a named Logger. Loggers are cheap handles and can be
// constructed freely (typically one per package, as a package-level var).
func Get(name string) Logger {
	return &loggerImpl{name: name}
}

// SetMinLoggingLevel adjusts the level below which all emitted
// logs are discarded.
func SetMinLoggingLevel(level LogLevel) {
	coreLogger.Lock()
	defer coreLogger.Unlock()

	coreLogger.minLevel = level
}

// SetSink redirects all logger output to the given writer. Color
// formatting is retained; mainly useful for capturing output in tests.
func SetSink(sink io.Writer) {
	coreLogger.Lock()
	defer coreLogger.Unlock()

	coreLogger.sink = sink
}

func (mgr *loggerMgr) emit(level LogLevel, name string, message string, interpolations ...any) {
	mgr.Lock()
	defer mgr.Unlock()

	if level < mgr.minLevel {
		return
	}

	// Pad the name so the message column stays aligned as wider
	// logger names come through.
	if len(name) > mgr.nameOffset {
		mgr.nameOffset = len(name)
	}
	padding := strings.Repeat(" ", mgr.nameOffset-len(name))

	msg := fmt.Sprintf("[%s] %s(%s) %s", name, padding, level, fmt.Sprintf(message, interpolations...))
	level.Color().Fprint(mgr.sink, msg)
}
