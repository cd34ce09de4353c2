package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/greenfelt/holdemsync/internal/entity"
)

// historyKeep - hand records retained per session.
const historyKeep = 100

// HandRecord - one finished round as this client saw it.
type HandRecord struct {
	RoundNumber int                 `json:"round_number"`
	Winners     []entity.WinnerData `json:"winners"`
	PotSize     int                 `json:"pot_size"`
	RecordedAt  time.Time           `json:"recorded_at"`
}

// RecordFromResult - builds a hand record out of an end-of-round summary.
func RecordFromResult(result *entity.RoundResult) HandRecord {
	return HandRecord{
		RoundNumber: result.FinalSnapshot.RoundNumber,
		Winners:     result.WinnersData,
		PotSize:     result.FinalSnapshot.PotSize,
		RecordedAt:  time.Now().UTC(),
	}
}

type HistoryRepository interface {
	Append(ctx context.Context, sessionID string, record HandRecord) error
	Recent(ctx context.Context, sessionID string, limit int) ([]HandRecord, error)
}

type dbHistory struct {
	client *redis.Client
}

func NewHistoryRepository(client *redis.Client) HistoryRepository {
	return &dbHistory{
		client: client,
	}
}

func (that *dbHistory) Append(ctx context.Context, sessionID string, record HandRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal hand record: %w", err)
	}

	historyKey := "history:" + sessionID

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, historyKey, recordJSON)
	pipe.LTrim(ctx, historyKey, 0, historyKeep-1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append hand record: %w", err)
	}

	return nil
}

// Recent - newest first, at most limit records.
func (that *dbHistory) Recent(ctx context.Context, sessionID string, limit int) ([]HandRecord, error) {
	if limit <= 0 || limit > historyKeep {
		limit = historyKeep
	}

	historyKey := "history:" + sessionID

	raw, err := that.client.LRange(ctx, historyKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read hand history: %w", err)
	}

	records := make([]HandRecord, 0, len(raw))
	for _, item := range raw {
		var record HandRecord
		if err = json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hand record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}
