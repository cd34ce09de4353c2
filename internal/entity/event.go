package entity

import "encoding/json"

// Event tags the formatter recognizes. Anything else on the wire is dropped
// silently; new server-side event types must never break old clients.
const (
	EventPlayerAction   = "player_action"
	EventCommunityCards = "community_cards_dealt"
	EventPhaseStart     = "phase_start"
	EventGameStart      = "game_start"
)

// Blind postings arrive as player_action events with these pseudo action types.
const (
	ActionSmallBlind = "small_blind"
	ActionBigBlind   = "big_blind"
)

// GameEvent - a discrete game occurrence pushed alongside a snapshot. The
// payload stays raw until a consumer that knows the tag decodes it.
type GameEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// PlayerActionEvent - data payload for the player_action tag.
type PlayerActionEvent struct {
	PlayerID   string `json:"player_id"`
	ActionType string `json:"action_type"`
	Amount     int    `json:"amount"`
}

// CommunityCardsEvent - data payload for the community_cards_dealt tag. Cards
// arrive pre-rendered as strings here, unlike the structured snapshot cards.
type CommunityCardsEvent struct {
	Phase string   `json:"phase"`
	Cards []string `json:"cards"`
}

// PhaseStartEvent - data payload for the phase_start tag.
type PhaseStartEvent struct {
	Phase string `json:"phase"`
}

// GameStartEvent - data payload for the game_start tag.
type GameStartEvent struct {
	NumPlayers int `json:"num_players"`
}
