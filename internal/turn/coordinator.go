// Package turn decides whether, and with which options, the local player may
// act. It is the only stateful gate between inbound action requests and the
// outbound submission call.
package turn

import (
	"errors"
	"fmt"

	"github.com/greenfelt/holdemsync/internal/apperror"
	"github.com/greenfelt/holdemsync/internal/entity"
)

// State - the coordinator's phase.
type State string

const (
	// StateIdle - no pending local action; possibly waiting on someone else.
	StateIdle State = "idle"
	// StateAwaitingAction - the local player must choose an action.
	StateAwaitingAction State = "awaiting_action"
	// StateSubmitted - an action went out; waiting for authoritative confirmation.
	StateSubmitted State = "submitted"
)

// Offer - one action the server allows right now, with the bounds it stated.
// Bounds are forwarded verbatim, never invented here.
type Offer struct {
	Type     entity.ActionType   `json:"type"`
	CallCost int                 `json:"call_cost,omitempty"`
	Bet      *entity.BetBounds   `json:"bet,omitempty"`
	Raise    *entity.RaiseBounds `json:"raise,omitempty"`
}

type Coordinator struct {
	localPlayerID string
	state         State
	waitingOn     string
	amountToCall  int
	offers        []Offer
}

func NewCoordinator(localPlayerID string) *Coordinator {
	return &Coordinator{
		localPlayerID: localPlayerID,
		state:         StateIdle,
	}
}

func (that *Coordinator) State() State { return that.state }

// WaitingOn - whose action request we last saw when it was not ours.
func (that *Coordinator) WaitingOn() string { return that.waitingOn }

// AmountToCall - derived when the local action request arrived.
func (that *Coordinator) AmountToCall() int { return that.amountToCall }

// Offers - the current legal action list in fixed priority order.
func (that *Coordinator) Offers() []Offer {
	out := make([]Offer, len(that.offers))
	copy(out, that.offers)

	return out
}

// HandleActionRequest - processes an inbound "action requested for player X".
// A later request always overrides an earlier one's notion of whose turn it
// is. Offerings with inconsistent bounds are rejected individually and
// reported; the remaining list still stands.
func (that *Coordinator) HandleActionRequest(playerIDToAct string, allowed entity.AllowedActions, snapshot *entity.GameSnapshot) error {
	if playerIDToAct != that.localPlayerID {
		that.state = StateIdle
		that.waitingOn = playerIDToAct
		that.offers = nil
		that.amountToCall = 0
		return nil
	}

	offers, err := deriveOffers(allowed)

	that.state = StateAwaitingAction
	that.waitingOn = ""
	that.offers = offers
	that.amountToCall = 0
	if !snapshot.IsEmpty() {
		that.amountToCall = snapshot.AmountToCall(that.localPlayerID)
	}

	return err
}

// BeginSubmission - gates the outbound call: only AwaitingAction allows one,
// which is what makes a second in-flight submission impossible.
func (that *Coordinator) BeginSubmission() error {
	switch that.state {
	case StateAwaitingAction:
		return nil
	case StateSubmitted:
		return apperror.ErrSubmissionPending
	default:
		return apperror.ErrNotYourTurn
	}
}

// SubmissionSucceeded - the server acknowledged the action; local input is
// closed until the next authoritative update.
func (that *Coordinator) SubmissionSucceeded() {
	if that.state == StateAwaitingAction {
		that.state = StateSubmitted
	}
}

// SubmissionFailed - rejection or transport failure. The player stays
// actionable with the offered list unchanged, so a retry is possible.
func (that *Coordinator) SubmissionFailed() {}

// HandleSnapshotUpdate - any snapshot replacement resolves Submitted back to
// Idle. A pending AwaitingAction survives: only a newer action request or a
// disconnect may take the prompt away.
func (that *Coordinator) HandleSnapshotUpdate() {
	if that.state == StateSubmitted || that.state == StateIdle {
		that.state = StateIdle
		that.offers = nil
		that.amountToCall = 0
	}
}

// Reset - invalidates the action form entirely, e.g. on disconnect.
func (that *Coordinator) Reset() {
	that.state = StateIdle
	that.waitingOn = ""
	that.offers = nil
	that.amountToCall = 0
}

// deriveOffers - builds the offered list in the fixed priority order fold,
// check, call, bet, raise. Each action is offered iff present in the payload;
// bet and raise additionally need fully populated, non-decreasing bounds.
func deriveOffers(allowed entity.AllowedActions) ([]Offer, error) {
	var offers []Offer
	var errs []error

	if allowed.Fold {
		offers = append(offers, Offer{Type: entity.ActionFold})
	}

	if allowed.Check {
		offers = append(offers, Offer{Type: entity.ActionCheck})
	}

	if allowed.Call != nil {
		offers = append(offers, Offer{Type: entity.ActionCall, CallCost: *allowed.Call})
	}

	if allowed.Bet != nil {
		if allowed.Bet.Valid() {
			offers = append(offers, Offer{Type: entity.ActionBet, Bet: allowed.Bet})
		} else {
			errs = append(errs, fmt.Errorf("%w: bet min %d > max %d", apperror.ErrInvalidBounds, allowed.Bet.Min, allowed.Bet.Max))
		}
	}

	if allowed.Raise != nil {
		if allowed.Raise.Valid() {
			offers = append(offers, Offer{Type: entity.ActionRaise, Raise: allowed.Raise})
		} else {
			errs = append(errs, fmt.Errorf("%w: raise min total %d > max total %d", apperror.ErrInvalidBounds, allowed.Raise.MinTotalBet, allowed.Raise.MaxTotalBet))
		}
	}

	return offers, errors.Join(errs...)
}
