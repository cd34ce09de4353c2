// Package websocket maintains the persistent channel to the game server. It
// delivers inbound pushes in arrival order over a single channel and
// synthesizes connect/disconnect messages so the session sees connectivity
// changes in the same serialized stream as everything else.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/greenfelt/holdemsync/internal/apperror"
)

const (
	inboxBuffer    = 64
	writeTimeout   = 3 * time.Second
	initialBackoff = time.Second
	maxBackoff     = 30 * time.Second
)

type Client struct {
	logger    *slog.Logger
	serverURL string
	inbox     chan Message

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewClient(logger *slog.Logger, serverURL string) *Client {
	return &Client{
		logger:    logger.With("component", "ws-client"),
		serverURL: serverURL,
		inbox:     make(chan Message, inboxBuffer),
	}
}

// Inbox - inbound pushes in arrival order, including the synthesized
// connect/disconnect markers.
func (that *Client) Inbox() <-chan Message { return that.inbox }

// Run - dials, reads until failure, reconnects with capped exponential
// backoff. Returns when the context is canceled. The inbox is closed on the
// way out so the session loop drains cleanly.
func (that *Client) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")
	defer close(that.inbox)

	backoff := initialBackoff

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		conn, _, err := websocket.Dial(ctx, that.serverURL, nil)
		if err != nil {
			log.Error("failed to dial game server", "url", that.serverURL, "error", err)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}

			backoff = min(backoff*2, maxBackoff)
			continue
		}

		backoff = initialBackoff
		that.setConn(conn)
		log.Info("connected to game server", "url", that.serverURL)
		that.deliver(ctx, Message{Action: ActionConnect})

		readErr := that.readLoop(ctx, conn)
		that.setConn(nil)
		_ = conn.Close(websocket.StatusNormalClosure, "bye")

		if ctx.Err() != nil {
			return nil
		}

		log.Error("connection lost", "error", readErr)
		that.deliver(ctx, Message{Action: ActionDisconnect})
	}
}

// Send - one envelope out over the current connection.
func (that *Client) Send(ctx context.Context, action string, payload any) error {
	conn := that.currentConn()
	if conn == nil {
		return apperror.ErrDisconnected
	}

	msg := Message{Action: action}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		msg.Payload = raw
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err = conn.Write(writeCtx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Client) readLoop(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "readLoop")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return errors.New("server closed the connection")
			}
			return err
		}

		var msg Message
		if err = json.Unmarshal(data, &msg); err != nil {
			log.Error("failed to unmarshal push message", "error", err)
			continue
		}

		if msg.Action == "" {
			log.Error("push message without an action tag")
			continue
		}

		that.deliver(ctx, msg)
	}
}

func (that *Client) deliver(ctx context.Context, msg Message) {
	select {
	case that.inbox <- msg:
	case <-ctx.Done():
	}
}

func (that *Client) setConn(conn *websocket.Conn) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.conn = conn
}

func (that *Client) currentConn() *websocket.Conn {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn
}
