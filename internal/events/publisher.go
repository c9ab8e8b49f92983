// Package events publishes account lifecycle events to downstream
// consumers. The Kafka publisher is the production backend; the memory
// publisher serves development and tests.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"worldsmith/internal/account"
)

// signedInEnvelope is the wire shape of a sign-in event.
type signedInEnvelope struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	At        time.Time `json:"at"`
}

const signedInType = "account.signed_in"

// KafkaPublisher produces sign-in events to a Kafka topic, keyed by user so
// one user's events stay ordered.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event account.UserSignedIn) error {
	payload, err := json.Marshal(signedInEnvelope{
		Type:      signedInType,
		SessionID: event.SessionID.String(),
		UserID:    event.UserID.String(),
		At:        event.At,
	})
	if err != nil {
		return fmt.Errorf("marshal sign-in event: %w", err)
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.UserID.String()),
		Value: payload,
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce sign-in event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}

// MemoryPublisher records events for development and tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []account.UserSignedIn
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(ctx context.Context, event account.UserSignedIn) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *MemoryPublisher) Events() []account.UserSignedIn {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]account.UserSignedIn(nil), p.events...)
}
