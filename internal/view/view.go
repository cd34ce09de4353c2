// Package view is a pure projection from a snapshot plus derived turn state
// to a display description. It owns no state: the player list is rebuilt from
// scratch on every call, so stale partial updates cannot exist.
package view

import (
	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/internal/turn"
)

// PlayerRow - one seat, ready for display.
type PlayerRow struct {
	PlayerID   string   `json:"player_id"`
	Stack      int      `json:"stack"`
	CurrentBet int      `json:"current_bet"`
	Badges     []string `json:"badges,omitempty"`
	IsFolded   bool     `json:"is_folded,omitempty"`
	IsAllIn    bool     `json:"is_all_in,omitempty"`
	IsLocal    bool     `json:"is_local,omitempty"`
	IsActing   bool     `json:"is_acting,omitempty"`
	HoleCards  []string `json:"hole_cards,omitempty"`
}

// ActionPrompt - what the local player may do right now.
type ActionPrompt struct {
	AmountToCall int          `json:"amount_to_call"`
	Offers       []turn.Offer `json:"offers"`
}

// View - the full display description for one render cycle.
type View struct {
	Connected      bool          `json:"connected"`
	RoundNumber    int           `json:"round_number"`
	GamePhase      string        `json:"game_phase"`
	CommunityCards []string      `json:"community_cards"`
	PotSize        int           `json:"pot_size"`
	BetToMatch     int           `json:"bet_to_match"`
	TurnBanner     string        `json:"turn_banner"`
	Players        []PlayerRow   `json:"players"`
	Prompt         *ActionPrompt `json:"prompt,omitempty"`
}

// Render - projects a snapshot and the coordinator's derived state. Returns
// false for an empty or absent snapshot: the whole render cycle is skipped,
// never an error.
func Render(snapshot *entity.GameSnapshot, localPlayerID string, coordinator *turn.Coordinator) (View, bool) {
	if snapshot.IsEmpty() {
		return View{}, false
	}

	v := View{
		RoundNumber:    snapshot.RoundNumber,
		GamePhase:      snapshot.GamePhase,
		CommunityCards: cardStrings(snapshot.CommunityCards),
		PotSize:        snapshot.PotSize,
		BetToMatch:     snapshot.CurrentBetToMatch,
		TurnBanner:     turnBanner(snapshot, localPlayerID, coordinator),
		Players:        make([]PlayerRow, 0, len(snapshot.Players)),
	}

	for i := range snapshot.Players {
		v.Players = append(v.Players, playerRow(&snapshot.Players[i], snapshot, localPlayerID))
	}

	if coordinator != nil && coordinator.State() == turn.StateAwaitingAction {
		v.Prompt = &ActionPrompt{
			AmountToCall: coordinator.AmountToCall(),
			Offers:       coordinator.Offers(),
		}
	}

	return v, true
}

// turnBanner - mutually exclusive cases. The coordinator outranks the
// snapshot's turn id: action requests arrive after the snapshot they refer
// to, so its notion of whose turn it is is at least as fresh.
func turnBanner(snapshot *entity.GameSnapshot, localPlayerID string, coordinator *turn.Coordinator) string {
	switch {
	case snapshot.IsGameOver:
		return "Game over."
	case coordinator != nil && coordinator.State() == turn.StateAwaitingAction:
		return "It's your turn."
	case coordinator != nil && coordinator.WaitingOn() != "":
		return "Waiting for " + coordinator.WaitingOn() + "..."
	case snapshot.CurrentPlayerTurnID == localPlayerID && localPlayerID != "":
		return "It's your turn."
	case snapshot.CurrentPlayerTurnID != "":
		return "Waiting for " + snapshot.CurrentPlayerTurnID + "..."
	default:
		return ""
	}
}

func playerRow(player *entity.PlayerView, snapshot *entity.GameSnapshot, localPlayerID string) PlayerRow {
	row := PlayerRow{
		PlayerID:   player.PlayerID,
		Stack:      player.Stack,
		CurrentBet: player.CurrentBet,
		IsFolded:   player.IsFolded,
		IsAllIn:    player.IsAllIn,
		IsLocal:    player.PlayerID == localPlayerID,
		IsActing:   player.PlayerID == snapshot.CurrentPlayerTurnID,
		HoleCards:  cardStrings(player.HoleCards),
	}

	if player.IsDealer {
		row.Badges = append(row.Badges, "D")
	}
	if player.IsSB {
		row.Badges = append(row.Badges, "SB")
	}
	if player.IsBB {
		row.Badges = append(row.Badges, "BB")
	}

	return row
}

func cardStrings(cards []entity.Card) []string {
	if len(cards) == 0 {
		return nil
	}

	out := make([]string, 0, len(cards))
	for _, card := range cards {
		out = append(out, card.String())
	}

	return out
}
