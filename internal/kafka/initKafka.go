package kafka

import (
	"weather-info/internal/config"
)

type KafkaBundle struct {
	CityProducer *Producer
	UserProducer *Producer
	CityConsumer *Consumer
}

// InitKafka returns nil when no brokers are configured.
func InitKafka(cfg *config.Config) (*KafkaBundle, error) {
	if !cfg.KafkaEnabled() {
		return nil, nil
	}

	cityProducer, err := NewProducer(cfg.KafkaBrokers, cfg.CityTopic)
	if err != nil {
		return nil, err
	}
	userProducer, err := NewProducer(cfg.KafkaBrokers, cfg.UserTopic)
	if err != nil {
		cityProducer.Close()
		return nil, err
	}
	cityConsumer, err := NewConsumer(cfg.KafkaBrokers, cfg.CityTopic, cfg.CityGroup)
	if err != nil {
		cityProducer.Close()
		userProducer.Close()
		return nil, err
	}

	return &KafkaBundle{
		CityProducer: cityProducer,
		UserProducer: userProducer,
		CityConsumer: cityConsumer,
	}, nil
}

func (b *KafkaBundle) Close() {
	if b == nil {
		return
	}
	b.CityConsumer.Stop()
	b.CityProducer.Close()
	b.UserProducer.Close()
}
