// Package events publishes catalog change notifications for downstream consumers
// such as CDN purgers and search indexers.
package events

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

type Type string

const (
	CatalogCreated Type = "catalog.created"
	CatalogUpdated Type = "catalog.updated"
	CatalogDeleted Type = "catalog.deleted"
	AssetUploaded  Type = "asset.uploaded"
)

// Event describes one change to a catalog record or image asset
type Event struct {
	Type   Type      `json:"type"`
	Entity string    `json:"entity"`
	ID     int64     `json:"id,omitempty"`
	URLs   []string  `json:"urls,omitempty"`
	At     time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer used for publishing
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(brokers []string, topic string) Publisher {
	return &kafkaPublisher{writer: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}}
}

func NewPublisherWithWriter(writer MessageWriter) Publisher {
	return &kafkaPublisher{writer: writer}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	// keyed by record so updates to one record stay ordered within a partition
	key := event.Entity + ":" + strconv.FormatInt(event.ID, 10)
	return p.writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: value})
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type logPublisher struct{}

// NewLogPublisher is used when no brokers are configured
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, event Event) error {
	log.Printf("DEBUG: event %s %s id=%d", event.Type, event.Entity, event.ID)
	return nil
}

func (logPublisher) Close() error { return nil }
