package websocket

import "encoding/json"

// Inbound push actions (server -> client).
const (
	ActionConnect       = "connect"
	ActionDisconnect    = "disconnect"
	ActionGameUpdate    = "game_update"
	ActionRequestAction = "request_player_action"
	ActionRoundBanner   = "round_start_banner"
	ActionRoundResults  = "round_results"
	ActionShowMessage   = "show_message"
)

// Outbound actions (client -> server).
const (
	// ActionRequestInitialState - zero-payload request for the full current
	// snapshot; the whole resynchronization strategy after a gap.
	ActionRequestInitialState = "request_initial_state"
)

// Message - the wire envelope. Every push carries an action tag and a raw
// payload that stays undecoded until the handler for that tag looks at it.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}
