package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/testing/suite"
)

func TestHistoryRepository_AppendAndRecent(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage)

	// Given: two finished rounds for one session
	first := RecordFromResult(&entity.RoundResult{
		WinnersData:   []entity.WinnerData{{PlayerID: "Player1", AmountWon: 90, HandName: "Two Pair"}},
		FinalSnapshot: entity.GameSnapshot{RoundNumber: 1, PotSize: 90},
	})
	second := RecordFromResult(&entity.RoundResult{
		WinnersData:   []entity.WinnerData{{PlayerID: "TightBot-1", AmountWon: 120}},
		FinalSnapshot: entity.GameSnapshot{RoundNumber: 2, PotSize: 120},
	})

	// When: appending both and reading them back
	require.NoError(t, historyRepo.Append(ctx, "session-1", first))
	require.NoError(t, historyRepo.Append(ctx, "session-1", second))

	records, err := historyRepo.Recent(ctx, "session-1", 10)

	// Then: newest first, with winners intact
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].RoundNumber)
	assert.Equal(t, 1, records[1].RoundNumber)
	require.Len(t, records[1].Winners, 1)
	assert.Equal(t, "Two Pair", records[1].Winners[0].HandName)
}

func TestHistoryRepository_TrimsOldRecords(t *testing.T) {
	ctx, st := suite.New(t)

	historyRepo := NewHistoryRepository(st.Storage)

	// Given: more rounds than the retention window keeps
	for i := 1; i <= historyKeep+5; i++ {
		record := RecordFromResult(&entity.RoundResult{
			FinalSnapshot: entity.GameSnapshot{RoundNumber: i},
		})
		require.NoError(t, historyRepo.Append(ctx, "session-1", record))
	}

	// When: reading everything back
	records, err := historyRepo.Recent(ctx, "session-1", 0)

	// Then: only the newest historyKeep records survive
	require.NoError(t, err)
	require.Len(t, records, historyKeep)
	assert.Equal(t, historyKeep+5, records[0].RoundNumber)
}

func TestSessionRepository_SaveAndGet(t *testing.T) {
	t.Run("Round-trips a session", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		// Given: a fresh session for the local player
		session := NewSession("Player1")
		session.LastSeenRound = 7

		// When: saving and loading it back
		require.NoError(t, sessionRepo.Save(ctx, session))
		loaded, err := sessionRepo.GetByPlayerID(ctx, "Player1")

		// Then: identity and progress survive
		require.NoError(t, err)
		assert.Equal(t, session.ID, loaded.ID)
		assert.Equal(t, 7, loaded.LastSeenRound)
		assert.False(t, loaded.UpdatedAt.IsZero())
	})

	t.Run("Missing sessions are reported as such", func(t *testing.T) {
		ctx, st := suite.New(t)

		sessionRepo := NewSessionRepository(st.Storage)

		_, err := sessionRepo.GetByPlayerID(ctx, "nobody")

		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
