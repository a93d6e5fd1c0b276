// Copyright 2021 Dalarub & Ettrich GmbH - All Rights Reserved
// Unauthorized copying of this file, via any medium is strictly prohibited
// Proprietary and confidential
// info@dalarub.com
//

/*
Package notify publishes resource events of jobly, e.g. when a company is
created or a user applied for a job.

Events are best effort: the backend logs a failed notification but never fails
the request which caused it.
*/
package notify

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/relabs-tech/jobly/core"
	"github.com/segmentio/kafka-go"
)

// Event is a change of a resource
type Event struct {
	// Resource is the kind of resource, e.g. "company" or "job"
	Resource string `json:"resource"`
	// Operation is the operation which changed the resource
	Operation core.Operation `json:"operation"`
	// Key identifies the resource, e.g. the company handle or the job id
	Key string `json:"key"`
	// Payload is the resource after the change. It is empty for deletions.
	Payload interface{} `json:"payload,omitempty"`
	// Timestamp is the time the event was raised
	Timestamp time.Time `json:"timestamp"`
}

// Notifier receives events
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// messageWriter is the part of kafka.Writer used by KafkaNotifier
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DefaultTimeout bounds a single Notify call
const DefaultTimeout = 2 * time.Second

// KafkaNotifier publishes events as JSON messages to a kafka topic. Messages are
// keyed with "<resource>/<key>", so all events of one resource end up in the
// same partition in order.
type KafkaNotifier struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaNotifier returns a notifier which writes to topic on brokers.
// Every event is flushed on its own, the writer does not wait for a batch to fill.
func NewKafkaNotifier(brokers []string, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer:  newWriter(brokers, topic),
		timeout: DefaultTimeout,
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchSize:              1,
		BatchTimeout:           5 * time.Millisecond,
		MaxAttempts:            3,
		WriteTimeout:           time.Second,
	}
}

// Message returns the kafka message for event
func Message(event Event) (kafka.Message, error) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, errors.Wrapf(err, "cannot marshal %s event", event.Resource)
	}
	return kafka.Message{
		Key:   []byte(event.Resource + "/" + event.Key),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "operation", Value: []byte(event.Operation)},
		},
	}, nil
}

// Notify implements Notifier. It gives up after the notifier's timeout.
func (n *KafkaNotifier) Notify(ctx context.Context, event Event) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}
	if err = n.writer.WriteMessages(ctx, msg); err != nil {
		return errors.Wrap(err, "cannot publish event")
	}
	return nil
}

// Close flushes pending messages and closes the writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
