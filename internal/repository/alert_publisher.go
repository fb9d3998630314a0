package repository

import (
	"context"
	"fmt"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	pkgkafka "FinSight/pkg/kafka"
)

// KafkaAlertPublisher publishes fraud alerts to a Kafka topic, keyed by user
// so alerts for one account stay ordered.
type KafkaAlertPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAlertPublisher(producer *pkgkafka.Producer, topic string) *KafkaAlertPublisher {
	return &KafkaAlertPublisher{producer: producer, topic: topic}
}

func (p *KafkaAlertPublisher) Publish(ctx context.Context, alert *models.FraudAlert) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(alert.UserID), alert); err != nil {
		return fmt.Errorf("publish fraud alert: %w", err)
	}
	return nil
}

func (p *KafkaAlertPublisher) Close() error {
	return p.producer.Close()
}

var _ domrepo.AlertPublisher = (*KafkaAlertPublisher)(nil)
