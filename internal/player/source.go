// Package player supplies the local decision makers: an interactive console
// prompt and a baseline auto-play policy for unattended runs.
package player

import (
	"context"
	"errors"

	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/internal/turn"
)

var (
	ErrNoOffers    = errors.New("the server offered no actions")
	ErrInputClosed = errors.New("input stream closed")
)

// Choice - a picked action type plus the entered amount. The submitter
// normalizes the amount away for action types that do not take one.
type Choice struct {
	Type   entity.ActionType
	Amount int
}

// Source - anything that can choose an action from the offered list. Sources
// receive immutable derived state and must not mutate anything.
type Source interface {
	Choose(ctx context.Context, offers []turn.Offer, amountToCall int) (Choice, error)
}

// AutoSource - fixed baseline policy: check when it is free, call when the
// stack covers it, otherwise fold. Enough to keep a seat warm unattended.
type AutoSource struct{}

func NewAutoSource() *AutoSource {
	return &AutoSource{}
}

func (that *AutoSource) Choose(_ context.Context, offers []turn.Offer, _ int) (Choice, error) {
	var canFold, canCall bool
	for _, offer := range offers {
		switch offer.Type {
		case entity.ActionCheck:
			return Choice{Type: entity.ActionCheck}, nil
		case entity.ActionCall:
			canCall = true
		case entity.ActionFold:
			canFold = true
		}
	}

	if canCall {
		return Choice{Type: entity.ActionCall}, nil
	}

	if canFold {
		return Choice{Type: entity.ActionFold}, nil
	}

	return Choice{}, ErrNoOffers
}
