package importer

import (
	log "github.com/sirupsen/logrus"
)

// LogHolder carries the structured context of an importer log line.
type LogHolder struct {
	RunID      string
	AppName    string
	AppVersion string
	AppID      string
	SmartGroup string
	Message    string
}

func processFields(logholder LogHolder) *log.Entry {
	logger := log.WithFields(log.Fields{})
	if logholder.RunID != "" {
		logger = logger.WithFields(
			log.Fields{
				"run_id": logholder.RunID,
			})
	}

	if logholder.AppName != "" {
		logger = logger.WithFields(
			log.Fields{
				"app_name": logholder.AppName,
			})
	}

	if logholder.AppVersion != "" {
		logger = logger.WithFields(
			log.Fields{
				"app_version": logholder.AppVersion,
			})
	}

	if logholder.AppID != "" {
		logger = logger.WithFields(
			log.Fields{
				"app_id": logholder.AppID,
			})
	}

	if logholder.SmartGroup != "" {
		logger = logger.WithFields(
			log.Fields{
				"smart_group": logholder.SmartGroup,
			})
	}

	return logger
}

func DebugLogger(logholder LogHolder) {
	logger := processFields(logholder)
	logger.Debug(logholder.Message)
}

func InfoLogger(logholder LogHolder) {
	logger := processFields(logholder)
	logger.Info(logholder.Message)
}

func WarnLogger(logholder LogHolder) {
	logger := processFields(logholder)
	logger.Warn(logholder.Message)
}

func ErrorLogger(logholder LogHolder) {
	logger := processFields(logholder)
	logger.Error(logholder.Message)
}
