package servicebus

import (
	"context"
	"errors"
	"fmt"

	"collab-notifier/domain/repository"
	"collab-notifier/infrastructure/logger"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"github.com/google/uuid"
)

const receiveBatchSize = 10

// NewServiceBus connects to namespace (e.g. "<name>.servicebus.windows.net")
// with the default Azure credential chain.
func NewServiceBus(_ context.Context, namespace string) (*azservicebus.Client, error) {
	if namespace == "" {
		return nil, errors.New("service bus namespace is not configured")
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure credential: %w", err)
	}
	client, err := azservicebus.NewClient(namespace, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create service bus client: %w", err)
	}
	return client, nil
}

// EventBus carries pipeline events over Azure Service Bus queues. Topic and
// subscription names are queue names.
type EventBus struct {
	client *azservicebus.Client
}

func NewEventBus(client *azservicebus.Client) repository.IEventBus {
	return &EventBus{client: client}
}

func (b *EventBus) Publish(ctx context.Context, queue string, payload []byte) (string, error) {
	if b.client == nil {
		return "", errors.New("service bus client is not configured")
	}
	sender, err := b.client.NewSender(queue, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create sender for %s: %w", queue, err)
	}
	defer func(sender *azservicebus.Sender) {
		if err := sender.Close(context.Background()); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing sender.")
		}
	}(sender)

	messageID := uuid.NewString()
	err = sender.SendMessage(ctx, &azservicebus.Message{
		Body:      payload,
		MessageID: &messageID,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("failed to send message to %s: %w", queue, err)
	}
	logger.GetLogger().WithFields(map[string]interface{}{"queue": queue, "messageId": messageID}).Info("Message published")
	return messageID, nil
}

// Receive completes messages the handler accepts and abandons the rest.
func (b *EventBus) Receive(ctx context.Context, queue string, handler repository.MessageHandler) error {
	if b.client == nil {
		return errors.New("service bus client is not configured")
	}
	receiver, err := b.client.NewReceiverForQueue(queue, nil)
	if err != nil {
		return fmt.Errorf("failed to create receiver for %s: %w", queue, err)
	}
	defer func(receiver *azservicebus.Receiver) {
		if err := receiver.Close(context.Background()); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while closing receiver.")
		}
	}(receiver)

	logger.GetLogger().WithField("queue", queue).Info("Service Bus receiver starting")
	for {
		messages, err := receiver.ReceiveMessages(ctx, receiveBatchSize, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to receive from %s: %w", queue, err)
		}
		for _, message := range messages {
			b.settle(ctx, receiver, message, handler(ctx, message.Body))
		}
	}
}

func (b *EventBus) settle(ctx context.Context, receiver *azservicebus.Receiver, message *azservicebus.ReceivedMessage, handleErr error) {
	if handleErr != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":     handleErr,
			"messageId": message.MessageID,
		}).Error("Message handling failed")
		if err := receiver.AbandonMessage(ctx, message, nil); err != nil {
			logger.GetLogger().WithField("error", err).Error("Error while abandoning message.")
		}
		return
	}
	if err := receiver.CompleteMessage(ctx, message, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while completing message.")
	}
}
