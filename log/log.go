// Package log provides the package-level logger used across bitwire.
// It wraps beego's logs package the way the rest of this codebase
// family does, rather than reaching for the standard library's log
// package.
package log

import (
	"github.com/astaxie/beego/logs"
)

var logger = logs.NewLogger()

func init() {
	logger.EnableFuncCallDepth(true)
	logger.SetLogFuncCallDepth(3)
}

// SetLevel adjusts the minimum severity that reaches the configured
// logger backends. Valid levels match beego/logs' Level* constants.
func SetLevel(level int) {
	logger.SetLevel(level)
}

// Closure defers formatting a log line until the logger has decided
// the line will actually be emitted, avoiding the cost of building a
// debug dump on every frame when debug logging is disabled.
type Closure func() string

func (c Closure) String() string {
	return c()
}

func NewClosure(fn func() string) Closure {
	return Closure(fn)
}

func Trace(format string, v ...interface{}) {
	logger.Trace(format, v...)
}

func Debug(format string, v ...interface{}) {
	logger.Debug(format, v...)
}

func Info(format string, v ...interface{}) {
	logger.Info(format, v...)
}

func Warn(format string, v ...interface{}) {
	logger.Warn(format, v...)
}

func Error(format string, v ...interface{}) {
	logger.Error(format, v...)
}
