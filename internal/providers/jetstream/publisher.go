package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/sonobay/sonobay-indexer/internal/adapter"
	"github.com/sonobay/sonobay-indexer/internal/domain"
	"github.com/sonobay/sonobay-indexer/internal/logger"
	"github.com/sonobay/sonobay-indexer/internal/messaging"
)

// SubjectPrefix prefixes every notification subject
const SubjectPrefix = "sonobay"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

type publisher struct {
	nc    adapter.NatsConn
	js    adapter.JetStream
	json  adapter.JSON
	clock adapter.Clock
}

// NewPublisher connects to NATS, ensures the notification stream and returns a publisher
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON, clock adapter.Clock) (messaging.Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	if err := js.EnsureStream(ctx, cfg.StreamName, []string{SubjectPrefix + ".>"}); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &publisher{
		nc:    nc,
		js:    js,
		json:  jsonAdapter,
		clock: clock,
	}, nil
}

// Publish publishes a notification to NATS JetStream.
// The JetStream message id is derived from the change itself, so a replayed
// event inside the stream's duplicate window is dropped by the server.
func (p *publisher) Publish(ctx context.Context, notification domain.Notification) error {
	if notification.ID == "" {
		notification.ID = ulid.Make().String()
	}
	if notification.Timestamp.IsZero() {
		notification.Timestamp = p.clock.Now().UTC()
	}

	logger.DebugCtx(ctx, "Publishing notification", zap.Any("notification", notification))

	data, err := p.json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if _, err := p.js.Publish(ctx, Subject(notification.Type), data, MessageID(notification)); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// MessageID returns the JetStream deduplication id of a notification:
// the chain event for listings, the token for token changes
func MessageID(n domain.Notification) string {
	if n.TxHash != "" {
		return fmt.Sprintf("%s:%s:%d", n.Type, n.TxHash, n.LogIndex)
	}
	return fmt.Sprintf("%s:%d", n.Type, n.TokenID)
}

// Subject returns the NATS subject of a notification type, e.g. sonobay.midi.indexed
func Subject(t domain.NotificationType) string {
	return fmt.Sprintf("%s.%s", SubjectPrefix, t)
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
