package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

// StdErrLogger writes leveled lines through the standard log package.
type StdErrLogger struct {
	logLevel LogLevel
	out      *log.Logger
}

// NewStdErrLogger creates a logger writing to stderr at the given level.
func NewStdErrLogger(level LogLevel) *StdErrLogger {
	return NewWriterLogger(os.Stderr, level)
}

// NewWriterLogger creates a logger writing to w, mostly useful in tests.
func NewWriterLogger(w io.Writer, level LogLevel) *StdErrLogger {
	return &StdErrLogger{
		logLevel: level,
		out:      log.New(w, "", log.LstdFlags),
	}
}

func (l *StdErrLogger) Printf(level LogLevel, format string, a ...interface{}) {
	txt := logLevelPrefix[level] + ": " + fmt.Sprintf(format, a...)
	l.out.Println(txt)
}
func (l *StdErrLogger) Debugf(format string, a ...interface{}) {
	if l.logLevel <= LogDebug {
		l.Printf(LogDebug, format, a...)
	}
}
func (l *StdErrLogger) Infof(format string, a ...interface{}) {
	if l.logLevel <= LogInfo {
		l.Printf(LogInfo, format, a...)
	}
}
func (l *StdErrLogger) Warnf(format string, a ...interface{}) {
	if l.logLevel <= LogWarn {
		l.Printf(LogWarn, format, a...)
	}
}
func (l *StdErrLogger) Errorf(format string, a ...interface{}) {
	l.Printf(LogError, format, a...)
}

func (l *StdErrLogger) SetLogLevel(level LogLevel) {
	l.logLevel = level
}
func (l *StdErrLogger) GetLogLevel() LogLevel {
	return l.logLevel
}
