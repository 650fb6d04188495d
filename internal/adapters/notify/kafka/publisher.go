// Package kafka publishes financial alerts to a Kafka topic for downstream
// consumers (dashboards, mail digests).
package kafka

import (
	"context"
	"encoding/json"

	"github.com/gestium-IO/gestium-enterprise/internal/core/domain"
	portssvc "github.com/gestium-IO/gestium-enterprise/internal/core/ports/services"
	"github.com/segmentio/kafka-go"
)

type alertEvent struct {
	CompanyID string                `json:"companyId"`
	Alert     domain.FinancialAlert `json:"alert"`
}

// Publisher writes one message per alert, keyed by company so a partition
// preserves per-company ordering.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates an alert publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

var _ portssvc.AlertNotifier = (*Publisher)(nil)

// Push implements portssvc.AlertNotifier.
func (p *Publisher) Push(ctx context.Context, companyID string, alert domain.FinancialAlert) error {
	data, err := json.Marshal(alertEvent{CompanyID: companyID, Alert: alert})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(companyID),
		Value: data,
	})
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
