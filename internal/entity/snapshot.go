package entity

import (
	"fmt"
)

const (
	PhasePreflop  = "preflop"
	PhaseFlop     = "flop"
	PhaseTurn     = "turn"
	PhaseRiver    = "river"
	PhaseShowdown = "showdown"
	PhaseGameOver = "game_over"
)

// PlayerView - one seat of the table as the server projects it for this client.
type PlayerView struct {
	PlayerID   string `json:"player_id"`
	Stack      int    `json:"stack"`
	CurrentBet int    `json:"current_bet"`
	IsFolded   bool   `json:"is_folded"`
	IsAllIn    bool   `json:"is_all_in"`
	IsDealer   bool   `json:"is_dealer"`
	IsSB       bool   `json:"is_sb"`
	IsBB       bool   `json:"is_bb"`
	HoleCards  []Card `json:"hole_cards"`
}

// HasHiddenHand - true when the seat holds a concealed hand.
func (that *PlayerView) HasHiddenHand() bool {
	for _, card := range that.HoleCards {
		if card.Hidden {
			return true
		}
	}

	return false
}

// GameSnapshot - a complete, self-consistent description of the table at one
// instant. Snapshots are immutable once decoded and are replaced wholesale on
// the next push; nothing in this client ever merges two of them.
type GameSnapshot struct {
	RoundNumber         int          `json:"round_number"`
	GamePhase           string       `json:"game_phase"`
	CommunityCards      []Card       `json:"community_cards"`
	PotSize             int          `json:"pot_size"`
	CurrentBetToMatch   int          `json:"current_bet_to_match"`
	CurrentPlayerTurnID string       `json:"current_player_turn_id"`
	IsGameOver          bool         `json:"is_game_over"`
	Players             []PlayerView `json:"players"`
}

// IsEmpty - reports whether the payload carried no usable state. The server
// serializes a vanished game as an empty object; consumers must treat that as
// "skip this cycle", never as a crash.
func (that *GameSnapshot) IsEmpty() bool {
	return that == nil || len(that.Players) == 0
}

// FindPlayer - looks a seat up by id in snapshot order.
func (that *GameSnapshot) FindPlayer(playerID string) (*PlayerView, bool) {
	for i := range that.Players {
		if that.Players[i].PlayerID == playerID {
			return &that.Players[i], true
		}
	}

	return nil, false
}

// AmountToCall - chips the given player still owes to match the current bet,
// clamped so a player who already over-posted never sees a negative call.
func (that *GameSnapshot) AmountToCall(playerID string) int {
	player, ok := that.FindPlayer(playerID)
	if !ok {
		return that.CurrentBetToMatch
	}

	amount := that.CurrentBetToMatch - player.CurrentBet
	if amount < 0 {
		amount = 0
	}

	return amount
}

// Validate - structural diagnostics only. A failing snapshot is still stored
// and skipped by consumers; this exists so the session can log what was wrong.
func (that *GameSnapshot) Validate() error {
	switch len(that.CommunityCards) {
	case 0, 3, 4, 5:
	default:
		return fmt.Errorf("community cards length %d is not in {0,3,4,5}", len(that.CommunityCards))
	}

	if that.CurrentPlayerTurnID == "" {
		return nil
	}

	matches := 0
	for i := range that.Players {
		if that.Players[i].PlayerID == that.CurrentPlayerTurnID {
			matches++
		}
	}

	if matches != 1 {
		return fmt.Errorf("current_player_turn_id %q matches %d players, want exactly 1", that.CurrentPlayerTurnID, matches)
	}

	return nil
}
