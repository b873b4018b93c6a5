package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"mds-registry-api/internal/infrastructure/mq"
)

// EventPublisher must not block.
type EventPublisher interface {
	Publish(e mq.Event) bool
}

type RabbitMQ interface {
	EventPublisher
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
	Close() error
}
