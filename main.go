package main

import (
	"collab-notifier/cmd"
	"collab-notifier/infrastructure/logger"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	cmd.Execute()
}
