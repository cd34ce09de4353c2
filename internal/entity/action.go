package entity

import (
	"fmt"

	"github.com/greenfelt/holdemsync/internal/apperror"
)

// ActionType - the closed set of actions this client can ever submit. Keeping
// it a parsed enum means a misspelled wire string fails at construction time
// instead of silently hitting a wrong branch later.
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionBet   ActionType = "bet"
	ActionRaise ActionType = "raise"
)

// ParseActionType - maps a wire string onto the enum.
func ParseActionType(raw string) (ActionType, error) {
	switch ActionType(raw) {
	case ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise:
		return ActionType(raw), nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrUnknownAction, raw)
	}
}

// TakesAmount - only bet and raise carry a player-chosen amount.
func (that ActionType) TakesAmount() bool {
	return that == ActionBet || that == ActionRaise
}

func (that ActionType) String() string {
	return string(that)
}

// Action - a chosen action ready for submission.
type Action struct {
	PlayerID string     `json:"player_id"`
	Type     ActionType `json:"action_type"`
	Amount   int        `json:"amount"`
}

// Normalized - returns a copy with the amount forced to zero for action types
// that do not take one. A blank or garbage amount entry is therefore harmless.
func (that Action) Normalized() Action {
	if !that.Type.TakesAmount() {
		that.Amount = 0
	}

	return that
}
