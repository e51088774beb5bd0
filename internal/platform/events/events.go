// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package events publishes catalog change notifications to NATS.

Every successful create, update or delete in the catalog emits one event on a
catalog.<entity>.<action> subject. Publishing is fire-and-forget: a failure is
logged and never reaches the HTTP caller. A nil [*Publisher] is a valid no-op,
which is what the server uses when NATS_URL is empty.
*/
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/taibuivan/anicat/internal/platform/ctxutil"
)

// # Connection

// Options configures the NATS connection.
type Options struct {
	URL           string
	Name          string
	MaxReconnects int
	ReconnectWait time.Duration
}

// Connect dials NATS with a bounded reconnect policy. The initial dial is not
// retried so startup fails fast on a bad URL.
func Connect(opts Options, logger *slog.Logger) (*nats.Conn, error) {
	if opts.MaxReconnects == 0 {
		opts.MaxReconnects = 5
	}
	if opts.ReconnectWait == 0 {
		opts.ReconnectWait = 2 * time.Second
	}

	conn, err := nats.Connect(opts.URL,
		nats.Name(opts.Name),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.RetryOnFailedConnect(false),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats_disconnected", slog.Any("error", err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats_reconnected", slog.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("events: connect %s (max_reconnects=%d, wait=%s): %w",
			opts.URL, opts.MaxReconnects, opts.ReconnectWait, err)
	}

	logger.Info("nats_connected", slog.String("url", conn.ConnectedUrl()))
	return conn, nil
}

// # Publishing

// Conn is the subset of [*nats.Conn] used by [Publisher].
type Conn interface {
	Publish(subject string, data []byte) error
}

// Envelope is the JSON body of every catalog event.
type Envelope struct {
	EventID    string    `json:"eventId"`
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// Publisher sends catalog events. The zero value and a nil pointer do nothing.
type Publisher struct {
	conn   Conn
	logger *slog.Logger
}

// NewPublisher wraps an established connection.
func NewPublisher(conn Conn, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// Publish emits data on subject. Errors are swallowed and logged with the
// request logger found in ctx, so they carry the request_id. Outside a request
// the publisher's own logger is used.
func (p *Publisher) Publish(ctx context.Context, subject string, data any) {
	if p == nil || p.conn == nil {
		return
	}

	logger, ok := ctxutil.LookupLogger(ctx)
	if !ok {
		logger = p.logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	payload, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		Event:      subject,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		logger.WarnContext(ctx, "event_marshal_failed", slog.String("subject", subject), slog.Any("error", err))
		return
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		logger.WarnContext(ctx, "event_publish_failed", slog.String("subject", subject), slog.Any("error", err))
	}
}
