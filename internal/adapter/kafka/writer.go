package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/agri-dashboard-service/internal/config"
	"github.com/couchcryptid/agri-dashboard-service/internal/domain"
)

// Writer publishes normalized records to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// message is the wire form of one published record.
type message struct {
	Dataset domain.DatasetType `json:"dataset"`
	domain.Record
}

// MarshalJSON flattens the dataset name into the record's own JSON object.
func (m message) MarshalJSON() ([]byte, error) {
	rec, err := json.Marshal(m.Record)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rec, &fields); err != nil {
		return nil, err
	}
	ds, err := json.Marshal(m.Dataset)
	if err != nil {
		return nil, err
	}
	fields["dataset"] = ds
	return json.Marshal(fields)
}

// Publish serializes every record of a dataset and writes them in a single
// WriteMessages call.
func (w *Writer) Publish(ctx context.Context, dt domain.DatasetType, records []domain.Record, loadedAt time.Time) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(dt, records[i], loadedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %s records: %w", dt, err)
	}
	w.logger.Debug("dataset published", "dataset", dt, "records", len(records), "topic", w.writer.Topic)
	return nil
}

// Close flushes pending messages and closes the producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// MessageKey identifies a record across loads: dataset|country code|year.
func MessageKey(dt domain.DatasetType, r domain.Record) string {
	return string(dt) + "|" + r.CountryCode + "|" + strconv.Itoa(r.Year)
}

// serializeToMessage marshals a record into a Kafka message.
func serializeToMessage(dt domain.DatasetType, r domain.Record, loadedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(message{Dataset: dt, Record: r})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize %s record: %w", dt, err)
	}
	return kafkago.Message{
		Key:   []byte(MessageKey(dt, r)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset", Value: []byte(dt)},
			{Key: "loaded_at", Value: []byte(loadedAt.Format(time.RFC3339))},
		},
	}, nil
}
