// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package firehose

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/atproto-go/sdk/lib/atperror"
	"nhooyr.io/websocket"
)

// Transport is the narrow capability FirehoseClient needs from a
// WebSocket connection: connect, read one message, close. A default
// implementation over nhooyr.io/websocket is provided by
// [NewWebSocketTransport]; tests substitute a fake.
type Transport interface {
	Connect(ctx context.Context, url string) error
	ReadMessage(ctx context.Context) (binary bool, data []byte, err error)
	Close() error
}

// websocketTransport is the default Transport, backed by a
// nhooyr.io/websocket connection.
type websocketTransport struct {
	conn *websocket.Conn
}

// NewWebSocketTransport returns the default Transport.
func NewWebSocketTransport() Transport {
	return &websocketTransport{}
}

func (t *websocketTransport) Connect(ctx context.Context, rawURL string) error {
	conn, _, err := websocket.Dial(ctx, rawURL, nil)
	if err != nil {
		return atperror.Wrap(atperror.KindNetworkError, "dialing firehose websocket", err)
	}
	t.conn = conn
	return nil
}

func (t *websocketTransport) ReadMessage(ctx context.Context) (bool, []byte, error) {
	typ, data, err := t.conn.Read(ctx)
	if err != nil {
		return false, nil, atperror.Wrap(atperror.KindConnectionClosed, "reading firehose message", err)
	}
	return typ == websocket.MessageBinary, data, nil
}

func (t *websocketTransport) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close(websocket.StatusNormalClosure, "")
}

// FirehoseClient subscribes to a relay's com.atproto.sync.subscribeRepos
// stream and yields decoded events.
type FirehoseClient struct {
	relayURL string

	mu        sync.Mutex
	transport Transport
}

// NewFirehoseClient returns a FirehoseClient targeting relayURL (e.g.
// "wss://bsky.network") using the given Transport.
func NewFirehoseClient(relayURL string, transport Transport) *FirehoseClient {
	return &FirehoseClient{relayURL: relayURL, transport: transport}
}

// SubscribeRepos connects to the relay and streams decoded events
// until ctx is cancelled or the transport fails. Individual frame-
// decoding errors are dropped silently; the stream continues. A
// transport-level error is sent on the error channel and both
// channels are then closed.
func (c *FirehoseClient) SubscribeRepos(ctx context.Context, cursor *int64) (<-chan Event, <-chan error) {
	events := make(chan Event)
	errs := make(chan error, 1)

	go func() {
		defer close(events)
		defer close(errs)

		subscribeURL, err := c.buildSubscribeURL(cursor)
		if err != nil {
			errs <- err
			return
		}

		c.mu.Lock()
		transport := c.transport
		c.mu.Unlock()

		if err := transport.Connect(ctx, subscribeURL); err != nil {
			errs <- err
			return
		}
		defer transport.Close()

		for {
			binary, data, err := transport.ReadMessage(ctx)
			if err != nil {
				select {
				case errs <- err:
				case <-ctx.Done():
				}
				return
			}
			if !binary {
				continue
			}

			event, err := DecodeFrame(data)
			if err != nil {
				continue
			}

			select {
			case events <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, errs
}

// Disconnect closes the underlying transport with a normal-closure
// code, causing any in-flight SubscribeRepos loop to exit on its next
// read.
func (c *FirehoseClient) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.transport.Close()
}

func (c *FirehoseClient) buildSubscribeURL(cursor *int64) (string, error) {
	base := strings.TrimSuffix(c.relayURL, "/") + "/xrpc/com.atproto.sync.subscribeRepos"
	if cursor == nil {
		return base, nil
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", atperror.Wrap(atperror.KindInvalidURL, "parsing relay URL", err)
	}
	query := parsed.Query()
	query.Set("cursor", strconv.FormatInt(*cursor, 10))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
