// Package monitoring carries the package-level progress logger used by the
// validation engine.
package monitoring

import "log"

// Logf emits progress output. It defaults to log.Printf; replace it with
// SetLogger to redirect, or Mute to silence it (the -quiet flag and tests).
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. A nil argument installs a no-op
// logger, equivalent to Mute.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Mute()
		return
	}
	Logf = f
}

// Mute silences progress output.
func Mute() {
	Logf = func(string, ...interface{}) {}
}

// Reset restores the default log.Printf logger.
func Reset() {
	Logf = log.Printf
}
