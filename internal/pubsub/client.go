package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

func New(projectID string) PubSubClient {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		teardown: teardown,
	}
}

// SendMessage publishes a simulation event (requests, pool and championship
// completions) as a msgpack payload on the event's topic.
func (c *client) SendMessage(topic string, data any) error {
	ctx := context.Background()
	payload, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("Failed to marshal event payload", "error", err, "event", topic)
		return err
	}
	result := c.client.Topic(topic).Publish(ctx, &pubsub.Message{Data: payload})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish event", "error", err, "event", topic)
		return err
	}
	log.Info("Published event", "event", topic, "serverID", serverID)
	return nil
}

// ProcessMessage decodes an event payload delivered by a push subscription.
func (c *client) ProcessMessage(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("Failed to unmarshal event payload", "error", err)
		return err
	}
	return nil
}
