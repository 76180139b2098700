// Package kafka publishes divergence alerts to a Kafka topic for downstream
// consumers (field-team notifications, audit trail). Publishing is optional:
// the pipeline runs without a sink when no brokers are configured.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/vivmon/viveiro-dashboard/internal/config"
	"github.com/vivmon/viveiro-dashboard/internal/domain"
)

// AlertWriter produces divergence alerts to the configured alert topic.
// It implements pipeline.AlertSink.
type AlertWriter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewAlertWriter creates a Kafka producer for the alert topic.
func NewAlertWriter(cfg *config.Config, logger *slog.Logger) *AlertWriter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &AlertWriter{writer: w, logger: logger}
}

// Publish serializes and writes all alerts in a single WriteMessages call.
func (w *AlertWriter) Publish(ctx context.Context, alerts []domain.DivergenceAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(alerts))
	for i := range alerts {
		msg, err := serializeAlert(alerts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *AlertWriter) Close() error {
	return w.writer.Close()
}

// serializeAlert marshals a DivergenceAlert into a Kafka message keyed by
// unit code so alerts for the same unit land on one partition.
func serializeAlert(alert domain.DivergenceAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize divergence alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.Code),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "occurrence", Value: []byte(alert.Occurrence)},
		},
	}, nil
}
