package pubsub

import (
	"context"
	"errors"
	"fmt"

	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"cloud.google.com/go/pubsub"
	"github.com/google/uuid"
)

const eventIDAttribute = "eventId"

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, errors.New("pubsub project id is not configured")
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return client, nil
}

// EventBus carries pipeline events over Google Cloud Pub/Sub.
type EventBus struct {
	client *pubsub.Client
}

func NewEventBus(client *pubsub.Client) repository.IEventBus {
	return &EventBus{client: client}
}

func (b *EventBus) Publish(ctx context.Context, topicName string, payload []byte) (string, error) {
	if b.client == nil {
		return "", errors.New("pubsub client is not configured")
	}
	topic, err := b.topic(ctx, topicName)
	if err != nil {
		return "", err
	}
	defer topic.Stop()

	msg := &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{eventIDAttribute: uuid.NewString()},
	}
	serverID, err := topic.Publish(ctx, msg).Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", topicName, err)
	}

	logger.GetLogger().WithFields(map[string]interface{}{"topic": topicName, "serverId": serverID}).Info("Message published")
	return serverID, nil
}

// topic returns topicName, creating it if it doesn't exist.
func (b *EventBus) topic(ctx context.Context, topicName string) (*pubsub.Topic, error) {
	topic := b.client.Topic(topicName)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check topic %s: %w", topicName, err)
	}
	if exists {
		return topic, nil
	}
	logger.GetLogger().WithField("topic", topicName).Info("Topic doesn't exist - creating it")
	created, err := b.client.CreateTopic(ctx, topicName)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic %s: %w", topicName, err)
	}
	return created, nil
}

// Receive acknowledges messages the handler accepts and nacks the rest so
// Pub/Sub redelivers them.
func (b *EventBus) Receive(ctx context.Context, subID string, handler repository.MessageHandler) error {
	if b.client == nil {
		return errors.New("pubsub client is not configured")
	}
	logger.GetLogger().WithField("subscription", subID).Info("PubSub receiver starting")

	err := b.client.Subscription(subID).Receive(ctx, func(ctx context.Context, m *pubsub.Message) {
		if err := handler(ctx, m.Data); err != nil {
			logger.GetLogger().WithFields(map[string]interface{}{
				"error":        err,
				"subscription": subID,
				"messageId":    m.ID,
			}).Error("Message handling failed")
			m.Nack()
			return
		}
		m.Ack()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("pubsub receive on %s: %w", subID, err)
	}
	return nil
}
