package apperror

import "errors"

var (
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrSubmissionPending = errors.New("an action submission is already in flight")
	ErrInvalidBounds     = errors.New("action bounds are inconsistent")
	ErrActionRejected    = errors.New("action rejected by server")
	ErrUnknownAction     = errors.New("unknown action type")
	ErrDisconnected      = errors.New("connection to the game server is down")
)
