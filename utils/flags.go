package utils

import (
	"flag"
	"strings"
)

// LogLevel returns the value of the -log-level flag, defaulting to info
// when the flag has not been registered (tests).
func LogLevel() string {
	f := flag.Lookup("log-level")
	if f == nil {
		return "info"
	}
	return strings.ToLower(f.Value.(flag.Getter).Get().(string))
}

// DryRun reports whether the -dry-run flag was passed.
func DryRun() bool {
	f := flag.Lookup("dry-run")
	if f == nil {
		return false
	}
	return f.Value.(flag.Getter).Get().(bool)
}
