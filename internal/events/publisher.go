// Package events publishes completed dialogue turns to NATS for downstream
// consumers (analytics, training data collection).
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/yukishop/nlp-service/internal/model"
	"github.com/yukishop/nlp-service/pkg/logger"
)

// Publisher publishes dialogue responses fire-and-forget. Publishing is
// best-effort: failures are logged and never affect the request path.
type Publisher struct {
	conn    *nats.Conn
	subject string
	logger  *logger.Logger
}

// Connect establishes a NATS connection for event publishing.
func Connect(url, subject, serviceName string, log *logger.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name(serviceName),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{conn: conn, subject: subject, logger: log}, nil
}

// Publish emits one dialogue response.
func (p *Publisher) Publish(ctx context.Context, resp *model.DialogueResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		p.logger.Warn("failed to marshal dialogue event", zap.Error(err))
		return
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		p.logger.Warn("failed to publish dialogue event",
			zap.String("subject", p.subject),
			zap.Error(err),
		)
	}
}

// IsConnected reports whether the NATS connection is up.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
