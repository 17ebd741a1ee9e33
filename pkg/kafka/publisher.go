// Package kafka publishes store change events to a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/vriksha-lab/backend/pkg/pubsub"
)

const sourceHeader = "source"

type publisher struct {
	clientID string
	producer sarama.SyncProducer
}

// NewPublisher connects a synchronous producer. Publish returns once the
// partition leader stored the message.
func NewPublisher(clientID string, brokerAddrs []string) (pubsub.Publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = 3
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, fmt.Errorf("cannot connect kafka %v: %w", brokerAddrs, err)
	}

	return &publisher{clientID: clientID, producer: producer}, nil
}

func (p *publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: time.Now(),
		Headers: []sarama.RecordHeader{
			{Key: []byte(sourceHeader), Value: []byte(p.clientID)},
		},
	}
	if len(pack.Key) > 0 {
		m.Key = sarama.ByteEncoder(pack.Key)
	}

	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("cannot publish to %s: %w", topic, err)
	}
	return nil
}
