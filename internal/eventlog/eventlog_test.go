package eventlog

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfelt/holdemsync/internal/entity"
)

func gameEvent(t *testing.T, eventType string, data any) entity.GameEvent {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	return entity.GameEvent{Type: eventType, Data: raw}
}

func TestLog_FIFOEviction(t *testing.T) {
	// Given: a log filled to its capacity of 30
	log := NewLog(DefaultCapacity)
	for i := 0; i < 30; i++ {
		log.Push(KindInfo, fmt.Sprintf("entry %d", i))
	}
	require.Equal(t, 30, log.Len())

	// When: inserting a 31st entry
	log.Push(KindInfo, "entry 30")

	// Then: the oldest entry is evicted and the length stays at 30
	entries := log.Entries()
	require.Len(t, entries, 30)
	assert.Equal(t, "entry 1", entries[0].Text)
	assert.Equal(t, "entry 30", entries[29].Text)
}

func TestFormatEvent_PlayerActions(t *testing.T) {
	cases := []struct {
		name string
		data entity.PlayerActionEvent
		want string
	}{
		{
			name: "fold renders without an amount",
			data: entity.PlayerActionEvent{PlayerID: "Player1", ActionType: "fold"},
			want: "Player1 FOLD",
		},
		{
			name: "call renders with the amount",
			data: entity.PlayerActionEvent{PlayerID: "TightBot-1", ActionType: "call", Amount: 30},
			want: "TightBot-1 CALL 30",
		},
		{
			name: "bet renders with the amount",
			data: entity.PlayerActionEvent{PlayerID: "Player1", ActionType: "bet", Amount: 60},
			want: "Player1 BET 60",
		},
		{
			name: "raise renders as a total",
			data: entity.PlayerActionEvent{PlayerID: "Player1", ActionType: "raise", Amount: 100},
			want: "Player1 RAISE to 100",
		},
		{
			name: "small blind posting",
			data: entity.PlayerActionEvent{PlayerID: "RandomBot-1", ActionType: "small_blind", Amount: 10},
			want: "RandomBot-1 posts small blind (10)",
		},
		{
			name: "big blind posting",
			data: entity.PlayerActionEvent{PlayerID: "RandomBot-2", ActionType: "big_blind", Amount: 20},
			want: "RandomBot-2 posts big blind (20)",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line, ok := FormatEvent(gameEvent(t, entity.EventPlayerAction, tc.data))

			require.True(t, ok)
			assert.Equal(t, tc.want, line)
		})
	}
}

func TestFormatEvent_OtherTags(t *testing.T) {
	t.Run("Community cards join the dealt cards", func(t *testing.T) {
		event := gameEvent(t, entity.EventCommunityCards, entity.CommunityCardsEvent{
			Phase: "flop",
			Cards: []string{"A♥", "K♦", "2♣"},
		})

		line, ok := FormatEvent(event)

		require.True(t, ok)
		assert.Equal(t, "Community cards (flop): A♥ K♦ 2♣", line)
	})

	t.Run("Phase start names the phase", func(t *testing.T) {
		line, ok := FormatEvent(gameEvent(t, entity.EventPhaseStart, entity.PhaseStartEvent{Phase: "river"}))

		require.True(t, ok)
		assert.Equal(t, "Starting phase: river", line)
	})

	t.Run("Game start counts the players", func(t *testing.T) {
		line, ok := FormatEvent(gameEvent(t, entity.EventGameStart, entity.GameStartEvent{NumPlayers: 4}))

		require.True(t, ok)
		assert.Equal(t, "Game started with 4 players.", line)
	})
}

func TestLog_UnknownTagsNeverAppear(t *testing.T) {
	// Given: an event tag this client does not know
	log := NewLog(DefaultCapacity)
	event := gameEvent(t, "side_pot_created", map[string]int{"pot": 120})

	// When: feeding it through the formatter
	kept := log.PushEvent(event)

	// Then: it is silently filtered, not logged and not an error
	assert.False(t, kept)
	assert.Equal(t, 0, log.Len())
}
