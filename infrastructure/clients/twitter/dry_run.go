package twitter

import (
	"context"

	"collab-notifier/infrastructure/logger"

	"github.com/google/uuid"
)

// DryRunPublisher logs messages instead of posting them.
type DryRunPublisher struct{}

func NewDryRunPublisher() DryRunPublisher {
	return DryRunPublisher{}
}

func (DryRunPublisher) Publish(_ context.Context, message string) (string, error) {
	id := "dry-run-" + uuid.NewString()
	logger.GetLogger().WithFields(map[string]interface{}{"id": id, "message": message}).Info("Dry run, tweet not posted")
	return id, nil
}
