// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package events_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/anicat/internal/platform/ctxutil"
	"github.com/taibuivan/anicat/internal/platform/events"
)

type recordingConn struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return c.err
}

/*
TestPublisher_Publish verifies the envelope written to the connection.
*/
func TestPublisher_Publish(t *testing.T) {
	conn := &recordingConn{}
	publisher := events.NewPublisher(conn, slog.New(slog.NewTextHandler(io.Discard, nil)))

	publisher.Publish(context.Background(), "catalog.genre.created", map[string]string{"name": "Action"})

	require.Len(t, conn.subjects, 1)
	assert.Equal(t, "catalog.genre.created", conn.subjects[0])

	var envelope struct {
		EventID string            `json:"eventId"`
		Event   string            `json:"event"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(conn.payloads[0], &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "catalog.genre.created", envelope.Event)
	assert.Equal(t, "Action", envelope.Data["name"])
}

/*
TestPublisher_Failures covers the no-op and error-swallowing paths.
*/
func TestPublisher_Failures(t *testing.T) {
	t.Run("nil_publisher", func(t *testing.T) {
		var publisher *events.Publisher
		assert.NotPanics(t, func() {
			publisher.Publish(context.Background(), "catalog.anime.deleted", nil)
		})
	})

	t.Run("publish_error_is_swallowed", func(t *testing.T) {
		conn := &recordingConn{err: errors.New("connection closed")}
		publisher := events.NewPublisher(conn, nil)

		assert.NotPanics(t, func() {
			publisher.Publish(context.Background(), "catalog.anime.deleted", map[string]string{"id": "x"})
		})
		assert.Len(t, conn.subjects, 1)
	})

	t.Run("unmarshalable_payload", func(t *testing.T) {
		conn := &recordingConn{}
		publisher := events.NewPublisher(conn, nil)

		publisher.Publish(context.Background(), "catalog.anime.created", make(chan int))
		assert.Empty(t, conn.subjects)
	})
}

/*
TestPublisher_FailureLogger logs failures with the request logger when the
context carries one, and with the publisher logger otherwise.
*/
func TestPublisher_FailureLogger(t *testing.T) {
	var requestLog, publisherLog bytes.Buffer
	requestLogger := slog.New(slog.NewJSONHandler(&requestLog, nil)).With(slog.String("request_id", "req-42"))
	publisher := events.NewPublisher(&recordingConn{err: errors.New("connection closed")}, slog.New(slog.NewJSONHandler(&publisherLog, nil)))

	publisher.Publish(ctxutil.WithLogger(context.Background(), requestLogger), "catalog.season.deleted", map[string]string{"id": "s1"})

	assert.Contains(t, requestLog.String(), "event_publish_failed")
	assert.Contains(t, requestLog.String(), "req-42")
	assert.Empty(t, publisherLog.String())

	publisher.Publish(context.Background(), "catalog.season.deleted", map[string]string{"id": "s1"})
	assert.Contains(t, publisherLog.String(), "event_publish_failed")
}
