// Package messaging publica los eventos de transferencias en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	otelkafka "github.com/Trendyol/otel-kafka-konsumer"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/pos-inventario/internal/application/transfer"
	"github.com/jhoicas/pos-inventario/pkg/config"
)

var _ transfer.EventPublisher = (*KafkaPublisher)(nil)

// messageWriter lo que se usa del writer instrumentado (WriteMessage singular propaga la traza).
type messageWriter interface {
	WriteMessage(ctx context.Context, msg kafka.Message) error
	Close() error
}

// KafkaPublisher publica transfer.Event en el tópico configurado, con clave = ID de transferencia.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher crea el writer de kafka-go envuelto con trazas OpenTelemetry.
func NewKafkaPublisher(cfg config.KafkaConfig, clientID string, tp trace.TracerProvider) (*KafkaPublisher, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("kafka: sin brokers configurados")
	}
	base := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.TransferTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	writer, err := otelkafka.NewWriter(base,
		otelkafka.WithTracerProvider(tp),
		otelkafka.WithPropagator(propagation.TraceContext{}),
		otelkafka.WithAttributes(
			[]attribute.KeyValue{
				semconv.MessagingDestinationNameKey.String(cfg.TransferTopic),
				attribute.String("messaging.kafka.client_id", clientID),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka: writer: %w", err)
	}
	return newKafkaPublisher(writer, cfg.TransferTopic), nil
}

func newKafkaPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

// PublishTransfer serializa el evento en JSON y lo escribe. Misma transferencia, misma partición.
func (p *KafkaPublisher) PublishTransfer(ctx context.Context, ev transfer.Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.TransferID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(ev.Type)},
			{Key: "event-id", Value: []byte(ev.EventID)},
		},
	}
	if err := p.writer.WriteMessage(ctx, msg); err != nil {
		return fmt.Errorf("kafka: publicar en %s: %w", p.topic, err)
	}
	return nil
}

// Close cierra el writer (vacía lo pendiente).
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
