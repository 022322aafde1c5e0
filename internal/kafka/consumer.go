package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

type Handler func(ctx context.Context, key, value []byte)

type Consumer struct {
	client *kgo.Client
	topic  string
	done   chan struct{}
}

func NewConsumer(brokers []string, topic, group string) (*Consumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(group),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer %s/%s: %w", topic, group, err)
	}

	slog.Info("kafka consumer initialized", "topic", topic, "group", group)
	return &Consumer{client: client, topic: topic, done: make(chan struct{})}, nil
}

// Start polls in a goroutine until ctx is cancelled or Stop is called.
func (c *Consumer) Start(ctx context.Context, handler Handler) {
	go func() {
		defer close(c.done)
		for {
			fetches := c.client.PollFetches(ctx)
			if fetches.IsClientClosed() || ctx.Err() != nil {
				slog.Info("kafka consumer stopped", "topic", c.topic)
				return
			}
			fetches.EachError(func(topic string, partition int32, err error) {
				if errors.Is(err, context.Canceled) {
					return
				}
				slog.Error("kafka fetch error", "topic", topic, "partition", partition, "error", err)
			})
			fetches.EachRecord(func(record *kgo.Record) {
				handler(ctx, record.Key, record.Value)
			})
		}
	}()
}

// Stop closes the client; safe to call whether or not Start ran.
func (c *Consumer) Stop() {
	c.client.Close()
}

// Done is closed when the polling goroutine exits.
func (c *Consumer) Done() <-chan struct{} {
	return c.done
}
