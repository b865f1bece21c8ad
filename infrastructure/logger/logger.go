package logger

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"
)

// Logger is a subsystem logger for a logging Backend.
type Logger struct {
	lvl       Level // lvl is an atomic, must be kept first for alignment
	tag       string
	b         *Backend
	writeChan chan<- logEntry
}

type logEntry struct {
	log   []byte
	level Level
}

// Trace formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelTrace.
func (l *Logger) Trace(args ...interface{}) {
	l.print(LevelTrace, args...)
}

// Tracef formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.printf(LevelTrace, format, args...)
}

// Debug formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelDebug.
func (l *Logger) Debug(args ...interface{}) {
	l.print(LevelDebug, args...)
}

// Debugf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

// Info formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelInfo.
func (l *Logger) Info(args ...interface{}) {
	l.print(LevelInfo, args...)
}

// Infof formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Warn formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelWarn.
func (l *Logger) Warn(args ...interface{}) {
	l.print(LevelWarn, args...)
}

// Warnf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

// Error formats message using the default formats for its operands, prepends
// the prefix as necessary, and writes to log with LevelError.
func (l *Logger) Error(args ...interface{}) {
	l.print(LevelError, args...)
}

// Errorf formats message according to format specifier, prepends the prefix
// as necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

// Critical formats message using the default formats for its operands,
// prepends the prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Critical(args ...interface{}) {
	l.print(LevelCritical, args...)
}

// Criticalf formats message according to format specifier, prepends the
// prefix as necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.printf(LevelCritical, format, args...)
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.lvl)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(logLevel Level) {
	atomic.StoreUint32((*uint32)(&l.lvl), uint32(logLevel))
}

func (l *Logger) printf(lvl Level, format string, args ...interface{}) {
	if lvl < l.Level() {
		return
	}
	l.write(lvl, fmt.Sprintf(format, args...))
}

func (l *Logger) print(lvl Level, args ...interface{}) {
	if lvl < l.Level() {
		return
	}
	l.write(lvl, fmt.Sprint(args...))
}

// write formats the log entry and hands it to the backend. When the backend
// write goroutine is not running yet (early startup, tests) entries go
// straight to stderr so they are not silently dropped.
func (l *Logger) write(lvl Level, msg string) {
	buf := &bytes.Buffer{}
	formatHeader(buf, l.b.flag, time.Now(), lvl, l.tag)
	buf.WriteString(msg)
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		buf.WriteByte('\n')
	}
	if !l.b.IsRunning() {
		_, _ = os.Stderr.Write(buf.Bytes())
		return
	}
	l.writeChan <- logEntry{log: buf.Bytes(), level: lvl}
}

// formatHeader writes the log header: timestamp, level tag, subsystem tag
// and, when the relevant flags are set, the callsite file and line.
func formatHeader(buf *bytes.Buffer, flag uint32, t time.Time, lvl Level, tag string) {
	buf.WriteString(t.Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(lvl.String())
	buf.WriteString("] ")
	buf.WriteString(tag)
	if flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		file, line := callsite(flag)
		buf.WriteString(" ")
		buf.WriteString(file)
		buf.WriteString(":")
		fmt.Fprintf(buf, "%d", line)
	}
	buf.WriteString(": ")
}

// callsite returns the file name and line number of the callsite to the
// subsystem logger.
func callsite(flag uint32) (string, int) {
	// Up through write, printf/print and the exported method.
	file, line, ok := caller(5)
	if !ok {
		return "???", 0
	}
	if flag&LogFlagShortFile != 0 {
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if os.IsPathSeparator(file[i]) {
				short = file[i+1:]
				break
			}
		}
		file = short
	}
	return file, line
}

func caller(skip int) (string, int, bool) {
	_, file, line, ok := runtime.Caller(skip)
	return file, line, ok
}
