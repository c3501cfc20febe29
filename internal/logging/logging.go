package logging

import (
	"fmt"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. Callers should use the helper
// functions below so call sites stay terse.
var L = clog.New(os.Stderr)

// SetVerbose lowers the logger to debug level so Debugf calls emit
// output. With enabled false the level returns to info.
func SetVerbose(enabled bool) {
	if enabled {
		L.SetLevel(clog.DebugLevel)
	} else {
		L.SetLevel(clog.InfoLevel)
	}
}

// SetQuiet raises the logger to error level, silencing info and
// warning output. A no-op when enabled is false so it can be applied
// after SetVerbose without clobbering it.
func SetQuiet(enabled bool) {
	if enabled {
		L.SetLevel(clog.ErrorLevel)
	}
}

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
