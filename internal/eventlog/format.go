package eventlog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/greenfelt/holdemsync/internal/entity"
)

// FormatEvent - renders a game event into a single log line. Exactly four
// tags are recognized; everything else returns false and is dropped. That is
// a deliberate filter, not a fallback path: unknown server events must never
// reach the log.
func FormatEvent(event entity.GameEvent) (string, bool) {
	switch event.Type {
	case entity.EventPlayerAction:
		var data entity.PlayerActionEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", false
		}
		return formatPlayerAction(data), true

	case entity.EventCommunityCards:
		var data entity.CommunityCardsEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", false
		}
		return fmt.Sprintf("Community cards (%s): %s", data.Phase, strings.Join(data.Cards, " ")), true

	case entity.EventPhaseStart:
		var data entity.PhaseStartEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", false
		}
		return fmt.Sprintf("Starting phase: %s", data.Phase), true

	case entity.EventGameStart:
		var data entity.GameStartEvent
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return "", false
		}
		return fmt.Sprintf("Game started with %d players.", data.NumPlayers), true

	default:
		return "", false
	}
}

// PushEvent - formats and appends a game event, reporting whether it was kept.
func (that *Log) PushEvent(event entity.GameEvent) bool {
	line, ok := FormatEvent(event)
	if !ok {
		return false
	}

	that.Push(KindGameEvent, line)

	return true
}

func formatPlayerAction(data entity.PlayerActionEvent) string {
	switch data.ActionType {
	case entity.ActionSmallBlind, entity.ActionBigBlind:
		blind := strings.ReplaceAll(data.ActionType, "_", " ")
		return fmt.Sprintf("%s posts %s (%d)", data.PlayerID, blind, data.Amount)
	case string(entity.ActionCall), string(entity.ActionBet):
		return fmt.Sprintf("%s %s %d", data.PlayerID, strings.ToUpper(data.ActionType), data.Amount)
	case string(entity.ActionRaise):
		return fmt.Sprintf("%s RAISE to %d", data.PlayerID, data.Amount)
	default:
		// fold, check and anything the engine adds later
		return fmt.Sprintf("%s %s", data.PlayerID, strings.ToUpper(data.ActionType))
	}
}
