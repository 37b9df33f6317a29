package messaging

import (
	"context"

	"github.com/sonobay/sonobay-indexer/internal/domain"
)

// Publisher defines the interface for publishing mirror notifications
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// Publish publishes a notification to the message broker.
	// An empty ID or Timestamp is filled by the publisher.
	Publish(ctx context.Context, notification domain.Notification) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every notification
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, domain.Notification) error { return nil }

func (noopPublisher) Close() {}
