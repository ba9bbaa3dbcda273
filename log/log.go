// Package log gates plain leveled logging on the -log-level flag for the
// packages that run before a structured log context exists (input
// resolution, local file handling).
package log

import (
	log "github.com/sirupsen/logrus"
	"github.com/ws1importer/ws1importer/utils"
)

var severities = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

// enabled reports whether a message of the given severity passes the
// configured -log-level. Unknown configured values behave like info.
func enabled(severity string) bool {
	threshold, ok := severities[utils.LogLevel()]
	if !ok {
		threshold = severities["info"]
	}
	return severities[severity] >= threshold
}

func Debug(msg ...interface{}) {
	if enabled("debug") {
		log.Debug(msg...)
	}
}

func Debugf(format string, msg ...interface{}) {
	if enabled("debug") {
		log.Debugf(format, msg...)
	}
}

func Info(msg ...interface{}) {
	if enabled("info") {
		log.Info(msg...)
	}
}

func Infof(format string, msg ...interface{}) {
	if enabled("info") {
		log.Infof(format, msg...)
	}
}

func Warn(msg ...interface{}) {
	if enabled("warn") {
		log.Warn(msg...)
	}
}

func Warnf(format string, msg ...interface{}) {
	if enabled("warn") {
		log.Warnf(format, msg...)
	}
}

func Error(msg ...interface{}) {
	log.Error(msg...)
}

func Errorf(format string, msg ...interface{}) {
	log.Errorf(format, msg...)
}
