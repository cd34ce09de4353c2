// Package submit packages a chosen action, issues the one-shot outbound call
// and feeds the outcome back into the turn coordinator.
package submit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/greenfelt/holdemsync/internal/apperror"
	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/internal/turn"
)

// StatusSuccess - the only acknowledgment status that confirms an action.
// Every other status is uniformly a rejection with a displayable reason.
const StatusSuccess = "success"

// Ack - the server's response to a submitted action.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Caller - the one-shot outbound call. Implemented by transport/rest.
type Caller interface {
	SubmitAction(ctx context.Context, action entity.Action) (Ack, error)
}

type Submitter struct {
	logger      *slog.Logger
	caller      Caller
	coordinator *turn.Coordinator
	timeout     time.Duration
}

// NewSubmitter - timeout guards the call; the observed protocol has none, so
// this is an extension, chosen over a prompt that can hang forever.
func NewSubmitter(logger *slog.Logger, caller Caller, coordinator *turn.Coordinator, timeout time.Duration) *Submitter {
	return &Submitter{
		logger:      logger.With("component", "submitter"),
		caller:      caller,
		coordinator: coordinator,
		timeout:     timeout,
	}
}

// Submit - sends the action and interprets the acknowledgment. On rejection
// or transport failure the coordinator stays actionable so the player can
// retry with the same or a different choice.
func (that *Submitter) Submit(ctx context.Context, action entity.Action) error {
	log := that.logger.With("method", "Submit")

	if err := that.coordinator.BeginSubmission(); err != nil {
		return err
	}

	action = action.Normalized()

	if that.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, that.timeout)
		defer cancel()
	}

	ack, err := that.caller.SubmitAction(ctx, action)
	if err != nil {
		that.coordinator.SubmissionFailed()
		log.Error("submission call failed", "action", action.Type.String(), "error", err)

		return fmt.Errorf("failed to submit action: %w", err)
	}

	if ack.Status != StatusSuccess {
		that.coordinator.SubmissionFailed()
		log.Warn("action rejected", "action", action.Type.String(), "reason", ack.Message)

		return fmt.Errorf("%w: %s", apperror.ErrActionRejected, ack.Message)
	}

	that.coordinator.SubmissionSucceeded()
	log.Info("action acknowledged", "action", action.Type.String(), "amount", action.Amount)

	return nil
}
