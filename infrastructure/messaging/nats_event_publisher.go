package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"taskhub/domain/ports"
	"taskhub/infrastructure/nats"
)

// NATSEventPublisher pushes task events onto the JetStream event stream.
type NATSEventPublisher struct {
	client *nats.Client
}

func NewNATSEventPublisher(client *nats.Client) ports.EventPublisher {
	return &NATSEventPublisher{client: client}
}

func (p *NATSEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal task event: %w", err)
	}

	subject := nats.SubjectPrefix + event.Type
	return p.client.Publish(ctx, subject, data)
}
