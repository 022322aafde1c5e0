package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Publisher is what services need from a producer.
type Publisher interface {
	PublishObjectAsync(key []byte, obj any)
}

type Producer struct {
	topic  string
	client *kgo.Client
}

func NewProducer(brokers []string, topic string) (*Producer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer %s: %w", topic, err)
	}

	slog.Info("kafka producer initialized", "topic", topic, "brokers", brokers)
	return &Producer{topic: topic, client: client}, nil
}

func (p *Producer) Topic() string {
	return p.topic
}

func (p *Producer) Close() {
	p.client.Close()
}

func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	msg := &kgo.Record{
		Topic: p.topic,
		Key:   key,
		Value: value,
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	results := p.client.ProduceSync(ctx, msg)
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("kafka publish %s: %w", p.topic, r.Err)
		}
	}

	slog.Debug("kafka published", "topic", p.topic, "key", string(key))
	return nil
}

// PublishObjectAsync marshals obj to JSON and publishes it in the background.
// Errors are only logged: events are best-effort.
func (p *Producer) PublishObjectAsync(key []byte, obj any) {
	go func() {
		value, err := json.Marshal(obj)
		if err != nil {
			slog.Error("kafka marshal failed", "topic", p.topic, "error", err)
			return
		}

		if err := p.Publish(context.Background(), key, value); err != nil {
			slog.Error("kafka async publish failed", "topic", p.topic, "key", string(key), "error", err)
		}
	}()
}
