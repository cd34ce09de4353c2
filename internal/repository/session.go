package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Session - this client's identity across restarts. Purely informational:
// resynchronization always re-requests the full snapshot, a session never
// lets us skip that.
type Session struct {
	ID            string    `json:"id"`
	PlayerID      string    `json:"player_id"`
	LastSeenRound int       `json:"last_seen_round"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewSession - fresh identity for a player seat.
func NewSession(playerID string) *Session {
	return &Session{
		ID:       uuid.NewString(),
		PlayerID: playerID,
	}
}

type SessionRepository interface {
	Save(ctx context.Context, session *Session) error
	GetByPlayerID(ctx context.Context, playerID string) (*Session, error)
}

type dbSession struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) SessionRepository {
	return &dbSession{
		client: client,
	}
}

func (that *dbSession) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = time.Now().UTC()

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	sessionKey := "session:" + session.PlayerID
	if err = that.client.Set(ctx, sessionKey, sessionJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByPlayerID(ctx context.Context, playerID string) (*Session, error) {
	sessionKey := "session:" + playerID

	response, err := that.client.Get(ctx, sessionKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session Session
	if err = json.Unmarshal([]byte(response), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}
