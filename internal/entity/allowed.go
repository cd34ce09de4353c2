package entity

// BetBounds - opening-bet limits as the server states them.
type BetBounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Valid - bounds must be non-decreasing; anything else is a data-integrity
// fault on the server side, not a rendering decision for us to paper over.
func (that *BetBounds) Valid() bool {
	return that.Min <= that.Max
}

// RaiseBounds - raise limits expressed as total bet after the raise. The
// server also sends min_raise_amount but the client never needs it.
type RaiseBounds struct {
	MinRaiseAmount int `json:"min_raise_amount,omitempty"`
	MinTotalBet    int `json:"min_total_bet"`
	MaxTotalBet    int `json:"max_total_bet"`
}

func (that *RaiseBounds) Valid() bool {
	return that.MinTotalBet <= that.MaxTotalBet
}

// AllowedActions - the legal action envelope attached to an action request.
// Presence of a field is what offers the action; this client never invents
// bounds the payload did not state.
type AllowedActions struct {
	Fold  bool         `json:"fold,omitempty"`
	Check bool         `json:"check,omitempty"`
	Call  *int         `json:"call,omitempty"`
	Bet   *BetBounds   `json:"bet,omitempty"`
	Raise *RaiseBounds `json:"raise,omitempty"`
}
