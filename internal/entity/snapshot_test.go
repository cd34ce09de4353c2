package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSeatSnapshot() *GameSnapshot {
	return &GameSnapshot{
		RoundNumber:         3,
		GamePhase:           PhaseFlop,
		CommunityCards:      []Card{{Rank: "A", Suit: "♥"}, {Rank: "K", Suit: "♦"}, {Rank: "2", Suit: "♣"}},
		PotSize:             90,
		CurrentBetToMatch:   50,
		CurrentPlayerTurnID: "Player1",
		Players: []PlayerView{
			{PlayerID: "Player1", Stack: 950, CurrentBet: 20},
			{PlayerID: "TightBot-1", Stack: 900, CurrentBet: 50},
		},
	}
}

func TestGameSnapshot_AmountToCall(t *testing.T) {
	t.Run("Derives the difference to the bet to match", func(t *testing.T) {
		// Given: a snapshot with 50 to match and 20 already posted
		snapshot := twoSeatSnapshot()

		// When: deriving the amount to call for the local player
		amount := snapshot.AmountToCall("Player1")

		// Then: the player owes exactly the difference
		assert.Equal(t, 30, amount)
	})

	t.Run("Clamps a negative difference to zero", func(t *testing.T) {
		// Given: a player who already posted more than the bet to match
		snapshot := twoSeatSnapshot()
		snapshot.Players[0].CurrentBet = 80

		// When: deriving the amount to call
		amount := snapshot.AmountToCall("Player1")

		// Then: the amount never goes negative
		assert.Equal(t, 0, amount)
	})

	t.Run("Falls back to the full bet for an unknown player", func(t *testing.T) {
		snapshot := twoSeatSnapshot()

		amount := snapshot.AmountToCall("nobody")

		assert.Equal(t, 50, amount)
	})
}

func TestGameSnapshot_Validate(t *testing.T) {
	t.Run("Accepts a consistent snapshot", func(t *testing.T) {
		snapshot := twoSeatSnapshot()

		require.NoError(t, snapshot.Validate())
	})

	t.Run("Rejects a turn id that matches no seat", func(t *testing.T) {
		// Given: a snapshot whose acting player is not seated
		snapshot := twoSeatSnapshot()
		snapshot.CurrentPlayerTurnID = "ghost"

		// Then: validation names the inconsistency
		assert.Error(t, snapshot.Validate())
	})

	t.Run("Accepts an absent turn id", func(t *testing.T) {
		snapshot := twoSeatSnapshot()
		snapshot.CurrentPlayerTurnID = ""

		assert.NoError(t, snapshot.Validate())
	})

	t.Run("Rejects an impossible community card count", func(t *testing.T) {
		// Given: two community cards, which no street ever shows
		snapshot := twoSeatSnapshot()
		snapshot.CommunityCards = snapshot.CommunityCards[:2]

		assert.Error(t, snapshot.Validate())
	})
}

func TestGameSnapshot_IsEmpty(t *testing.T) {
	t.Run("Nil and seatless snapshots are empty", func(t *testing.T) {
		var missing *GameSnapshot

		assert.True(t, missing.IsEmpty())
		assert.True(t, (&GameSnapshot{}).IsEmpty())
	})

	t.Run("A seated snapshot is not empty", func(t *testing.T) {
		assert.False(t, twoSeatSnapshot().IsEmpty())
	})
}

func TestGameSnapshot_DecodesServerPayload(t *testing.T) {
	// Given: a game_state payload as the server serializes it, including the
	// HIDDEN hole-card sentinel and a null turn id
	payload := `{
		"round_number": 1,
		"game_phase": "preflop",
		"community_cards": [],
		"pot_size": 30,
		"current_bet_to_match": 20,
		"current_player_turn_id": null,
		"is_game_over": false,
		"players": [
			{"player_id": "Player1", "stack": 990, "current_bet": 10, "is_sb": true,
			 "hole_cards": [{"rank": "A", "suit": "♠"}, {"rank": "A", "suit": "♦"}]},
			{"player_id": "RandomBot-1", "stack": 980, "current_bet": 20, "is_bb": true,
			 "hole_cards": ["HIDDEN", "HIDDEN"]},
			{"player_id": "TightBot-1", "stack": 1000, "current_bet": 0, "is_folded": true,
			 "hole_cards": null}
		]
	}`

	// When: decoding it
	var snapshot GameSnapshot
	require.NoError(t, json.Unmarshal([]byte(payload), &snapshot))

	// Then: real cards, hidden cards and a folded empty hand all come through
	require.Len(t, snapshot.Players, 3)
	assert.Equal(t, "A♠", snapshot.Players[0].HoleCards[0].String())
	assert.True(t, snapshot.Players[1].HasHiddenHand())
	assert.Equal(t, "??", snapshot.Players[1].HoleCards[0].String())
	assert.Empty(t, snapshot.Players[2].HoleCards)
	assert.Empty(t, snapshot.CurrentPlayerTurnID)
}

func TestCard_RoundTrip(t *testing.T) {
	t.Run("Hidden cards marshal back to the sentinel", func(t *testing.T) {
		data, err := json.Marshal(HiddenCard())

		require.NoError(t, err)
		assert.JSONEq(t, `"HIDDEN"`, string(data))
	})

	t.Run("Unexpected tokens are an error", func(t *testing.T) {
		var card Card

		assert.Error(t, json.Unmarshal([]byte(`"FACEDOWN"`), &card))
	})
}
