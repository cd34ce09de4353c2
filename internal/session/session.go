// Package session is the single serialized event loop of the client. Every
// inbound push and every local decision funnels through one goroutine, so the
// store and the turn coordinator are never touched concurrently; correctness
// rests on that ordering, not on locks.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/greenfelt/holdemsync/internal/apperror"
	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/internal/eventlog"
	"github.com/greenfelt/holdemsync/internal/player"
	"github.com/greenfelt/holdemsync/internal/repository"
	"github.com/greenfelt/holdemsync/internal/state"
	"github.com/greenfelt/holdemsync/internal/submit"
	"github.com/greenfelt/holdemsync/internal/turn"
	"github.com/greenfelt/holdemsync/internal/view"
	ws "github.com/greenfelt/holdemsync/transport/websocket"
)

// Transport - what the session needs from the push channel.
type Transport interface {
	Inbox() <-chan ws.Message
	Send(ctx context.Context, action string, payload any) error
}

// decision - outcome of an asynchronous action choice. The seq ties it to the
// prompt that asked for it; a decision from a superseded prompt is dropped.
type decision struct {
	seq    int
	choice player.Choice
	err    error
}

type handlerFunc func(ctx context.Context, payload json.RawMessage) error

type Session struct {
	logger        *slog.Logger
	transport     Transport
	store         *state.Store
	log           *eventlog.Log
	coordinator   *turn.Coordinator
	submitter     *submit.Submitter
	source        player.Source
	views         *view.Holder
	localPlayerID string

	handlers     map[string]handlerFunc
	decisions    chan decision
	promptSeq    int
	promptCancel context.CancelFunc
	connected    bool

	// optional persistence, nil when redis is not configured
	record   *repository.Session
	sessions repository.SessionRepository
	history  repository.HistoryRepository
}

func New(
	logger *slog.Logger,
	transport Transport,
	store *state.Store,
	log *eventlog.Log,
	coordinator *turn.Coordinator,
	submitter *submit.Submitter,
	source player.Source,
	views *view.Holder,
	localPlayerID string,
) *Session {
	that := &Session{
		logger:        logger.With("component", "session"),
		transport:     transport,
		store:         store,
		log:           log,
		coordinator:   coordinator,
		submitter:     submitter,
		source:        source,
		views:         views,
		localPlayerID: localPlayerID,
		decisions:     make(chan decision, 1),
	}

	that.handlers = map[string]handlerFunc{
		ws.ActionConnect:       that.handleConnect,
		ws.ActionDisconnect:    that.handleDisconnect,
		ws.ActionGameUpdate:    that.handleGameUpdate,
		ws.ActionRequestAction: that.handleActionRequest,
		ws.ActionRoundBanner:   that.handleRoundBanner,
		ws.ActionRoundResults:  that.handleRoundResults,
		ws.ActionShowMessage:   that.handleShowMessage,
	}

	return that
}

// WithPersistence - attaches the optional redis-backed session identity and
// hand history.
func (that *Session) WithPersistence(record *repository.Session, sessions repository.SessionRepository, history repository.HistoryRepository) *Session {
	that.record = record
	that.sessions = sessions
	that.history = history

	return that
}

// Run - processes pushes and decisions until the context is canceled or the
// transport closes its inbox.
func (that *Session) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case msg, ok := <-that.transport.Inbox():
			if !ok {
				return nil
			}
			that.handleMessage(ctx, msg)

		case d := <-that.decisions:
			that.handleDecision(ctx, d)
		}
	}
}

// handleMessage - typed dispatch keyed by message tag. Unknown tags are
// ignored, never an error.
func (that *Session) handleMessage(ctx context.Context, msg ws.Message) {
	log := that.logger.With("method", "handleMessage")

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Debug("ignoring unknown push message", "action", msg.Action)
		return
	}

	if err := handler(ctx, msg.Payload); err != nil {
		log.Error("failed to process push message", "action", msg.Action, "error", err)
	}
}

// handleConnect - one resynchronization request per established connection.
// Nothing local is replayed; the next full snapshot supersedes everything.
func (that *Session) handleConnect(ctx context.Context, _ json.RawMessage) error {
	that.connected = true
	that.log.Push(eventlog.KindInfo, "Connected to server.")

	if err := that.transport.Send(ctx, ws.ActionRequestInitialState, nil); err != nil {
		return err
	}

	that.publish()

	return nil
}

// handleDisconnect - invalidates the action form and marks the view stale.
func (that *Session) handleDisconnect(_ context.Context, _ json.RawMessage) error {
	that.connected = false
	that.cancelPrompt()
	that.coordinator.Reset()
	that.log.Push(eventlog.KindError, "Disconnected from server. Waiting to reconnect...")
	that.publish()

	return nil
}

func (that *Session) handleGameUpdate(_ context.Context, payload json.RawMessage) error {
	var update gameUpdatePayload
	if err := json.Unmarshal(payload, &update); err != nil {
		return err
	}

	if update.Event != nil {
		that.log.PushEvent(*update.Event)
	}

	that.applySnapshot(update.GameState)

	return nil
}

func (that *Session) handleActionRequest(ctx context.Context, payload json.RawMessage) error {
	log := that.logger.With("method", "handleActionRequest")

	var request actionRequestPayload
	if err := json.Unmarshal(payload, &request); err != nil {
		return err
	}

	// a newer request supersedes any prompt still waiting for input
	that.cancelPrompt()

	if !request.GameStateForPlayer.IsEmpty() {
		that.store.Replace(request.GameStateForPlayer)
	}

	if err := that.coordinator.HandleActionRequest(request.PlayerIDToAct, request.AllowedActions, request.GameStateForPlayer); err != nil {
		// broken bounds: the affected offering is already rejected, the rest stands
		log.Error("action request carried inconsistent bounds", "error", err)
		that.log.Push(eventlog.KindError, "Server offered an action with broken limits; it was ignored.")
	}

	that.publish()
	that.promptIfAwaiting(ctx)

	return nil
}

func (that *Session) handleRoundBanner(_ context.Context, payload json.RawMessage) error {
	var banner bannerPayload
	if err := json.Unmarshal(payload, &banner); err != nil {
		return err
	}

	that.log.Push(eventlog.KindBanner, banner.Message)

	return nil
}

func (that *Session) handleRoundResults(ctx context.Context, payload json.RawMessage) error {
	var result entity.RoundResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return err
	}

	that.logRoundResult(&result)
	that.applySnapshot(&result.FinalSnapshot)
	that.persistResult(ctx, &result)

	return nil
}

func (that *Session) handleShowMessage(_ context.Context, payload json.RawMessage) error {
	var msg showMessagePayload
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}

	that.log.Push(eventlog.KindServerMsg, msg.Message)

	return nil
}

// applySnapshot - wholesale replacement plus the coordinator transition every
// snapshot update triggers. An empty payload is skipped, logged only as a
// diagnostic.
func (that *Session) applySnapshot(snapshot *entity.GameSnapshot) {
	log := that.logger.With("method", "applySnapshot")

	if snapshot.IsEmpty() {
		log.Debug("skipping empty snapshot payload")
		return
	}

	if err := snapshot.Validate(); err != nil {
		log.Debug("snapshot failed validation", "error", err)
	}

	that.store.Replace(snapshot)
	that.coordinator.HandleSnapshotUpdate()
	that.publish()
}

// publish - renders the current projection for the status API. Skipped
// entirely while no usable snapshot exists.
func (that *Session) publish() {
	snapshot, ok := that.store.Current()
	if !ok {
		return
	}

	rendered, ok := view.Render(snapshot, that.localPlayerID, that.coordinator)
	if !ok {
		return
	}

	rendered.Connected = that.connected
	that.views.Publish(rendered)
}

// promptIfAwaiting - asks the action source for a choice on its own
// goroutine, so a slow human never blocks inbound processing. Each prompt
// carries its own cancelable context; starting a new one cancels the old, so
// at most one Choose call is ever live. The sequence number additionally
// discards an answer that slips in just as its prompt is overridden.
func (that *Session) promptIfAwaiting(ctx context.Context) {
	if that.coordinator.State() != turn.StateAwaitingAction {
		return
	}

	that.cancelPrompt()
	promptCtx, cancel := context.WithCancel(ctx)
	that.promptCancel = cancel

	that.promptSeq++
	seq := that.promptSeq
	offers := that.coordinator.Offers()
	amountToCall := that.coordinator.AmountToCall()

	go func() {
		choice, err := that.source.Choose(promptCtx, offers, amountToCall)

		select {
		case that.decisions <- decision{seq: seq, choice: choice, err: err}:
		case <-promptCtx.Done():
		}
	}()
}

// cancelPrompt - releases the goroutine of a prompt that is no longer wanted.
func (that *Session) cancelPrompt() {
	if that.promptCancel != nil {
		that.promptCancel()
		that.promptCancel = nil
	}
}

// handleDecision - submits a chosen action. Rejections and transport
// failures keep the prompt open for a retry; the submission itself is
// awaited right here, which is what serializes it against everything else.
func (that *Session) handleDecision(ctx context.Context, d decision) {
	log := that.logger.With("method", "handleDecision")

	if d.seq != that.promptSeq || that.coordinator.State() != turn.StateAwaitingAction {
		log.Debug("dropping stale decision", "seq", d.seq)
		return
	}

	if d.err != nil {
		log.Error("action source failed", "error", d.err)
		return
	}

	action := entity.Action{
		PlayerID: that.localPlayerID,
		Type:     d.choice.Type,
		Amount:   d.choice.Amount,
	}

	err := that.submitter.Submit(ctx, action)
	switch {
	case err == nil:
		that.cancelPrompt()
		that.publish()

	case errors.Is(err, apperror.ErrActionRejected):
		that.log.Push(eventlog.KindError, err.Error())
		that.promptIfAwaiting(ctx)

	default:
		that.log.Push(eventlog.KindError, "Network error while submitting your action. Try again.")
		that.promptIfAwaiting(ctx)
	}
}

// logRoundResult - winner and showdown lines for the bounded log.
func (that *Session) logRoundResult(result *entity.RoundResult) {
	if len(result.WinnersData) == 0 {
		that.log.Push(eventlog.KindBanner, "No winners determined.")
		return
	}

	winners := make(map[string]bool, len(result.WinnersData))
	for _, winner := range result.WinnersData {
		winners[winner.PlayerID] = true

		line := fmt.Sprintf("%s wins %d", winner.PlayerID, winner.AmountWon)
		if winner.HandName != "" {
			line += " with " + winner.HandName
		}
		that.log.Push(eventlog.KindBanner, line)
	}

	// shown hands of the non-winners, in stable order
	shown := make([]string, 0, len(result.HandResults))
	for playerID := range result.HandResults {
		shown = append(shown, playerID)
	}
	sort.Strings(shown)

	for _, playerID := range shown {
		hand := result.HandResults[playerID]
		if winners[playerID] || hand.HandName == "" {
			continue
		}
		that.log.Push(eventlog.KindGameEvent, playerID+" shows "+hand.HandName)
	}
}

func (that *Session) persistResult(ctx context.Context, result *entity.RoundResult) {
	if that.history == nil || that.record == nil {
		return
	}

	log := that.logger.With("method", "persistResult")

	if err := that.history.Append(ctx, that.record.ID, repository.RecordFromResult(result)); err != nil {
		log.Error("failed to persist hand record", "error", err)
	}

	if that.sessions != nil && !result.FinalSnapshot.IsEmpty() {
		that.record.LastSeenRound = result.FinalSnapshot.RoundNumber
		if err := that.sessions.Save(ctx, that.record); err != nil {
			log.Error("failed to persist session", "error", err)
		}
	}
}
