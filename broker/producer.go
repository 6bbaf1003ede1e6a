package broker

import (
	"fmt"
	"log"

	"dueday/dueday/config"

	"github.com/nats-io/nats.go"
)

const (
	UserSubject = "dueday.events.user"
	TaskSubject = "dueday.events.task"
)

var conn *nats.Conn

// InitProducer connects to the NATS server. The caller decides whether a
// failure is fatal; the rest of the application works without a broker.
func InitProducer(cfg config.Config) error {
	var err error
	conn, err = nats.Connect(cfg.NatsURL,
		nats.Name("dueday-api"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to NATS: %w", err)
	}
	log.Printf("Connected to NATS at %s", cfg.NatsURL)
	return nil
}

// SubjectForEntity maps an outbox entity to its broker subject.
func SubjectForEntity(entity string) string {
	switch entity {
	case "user":
		return UserSubject
	default:
		return TaskSubject
	}
}

func PublishMessage(subject string, key string, value []byte) error {
	if conn == nil {
		return fmt.Errorf("NATS producer is not initialized")
	}

	msg := nats.NewMsg(subject)
	msg.Header.Set("Event-Id", key)
	msg.Data = value

	if err := conn.PublishMsg(msg); err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", subject, err)
	}
	return nil
}

func CloseProducer() {
	if conn != nil {
		conn.Drain()
		conn = nil
	}
}
