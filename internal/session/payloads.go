package session

import "github.com/greenfelt/holdemsync/internal/entity"

// gameUpdatePayload - snapshot replacement plus an optional event to log.
type gameUpdatePayload struct {
	GameState *entity.GameSnapshot `json:"game_state"`
	Event     *entity.GameEvent    `json:"event,omitempty"`
}

// actionRequestPayload - drives the turn coordinator.
type actionRequestPayload struct {
	PlayerIDToAct      string                `json:"player_id_to_act"`
	AllowedActions     entity.AllowedActions `json:"allowed_actions"`
	GameStateForPlayer *entity.GameSnapshot  `json:"game_state_for_player"`
}

// bannerPayload - log-only round banner.
type bannerPayload struct {
	Message     string `json:"message"`
	RoundNumber int    `json:"round_number"`
}

// showMessagePayload - free-form operator message, log-only.
type showMessagePayload struct {
	Message string `json:"message"`
}
