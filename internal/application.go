package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenfelt/holdemsync/internal/config"
	"github.com/greenfelt/holdemsync/internal/eventlog"
	"github.com/greenfelt/holdemsync/internal/player"
	"github.com/greenfelt/holdemsync/internal/repository"
	"github.com/greenfelt/holdemsync/internal/repository/storage"
	"github.com/greenfelt/holdemsync/internal/session"
	"github.com/greenfelt/holdemsync/internal/state"
	"github.com/greenfelt/holdemsync/internal/submit"
	"github.com/greenfelt/holdemsync/internal/turn"
	"github.com/greenfelt/holdemsync/internal/view"
	"github.com/greenfelt/holdemsync/transport/rest"
	"github.com/greenfelt/holdemsync/transport/websocket"
)

var (
	ErrPlayerIDNotSet    = errors.New("player-id is empty")
	ErrUnknownPlayerMode = errors.New("unknown player-mode")
)

// RunApp - wires the client together and runs it until a signal arrives or a
// component fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	if conf.PlayerID == "" {
		return ErrPlayerIDNotSet
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	source, err := newActionSource(conf.PlayerMode)
	if err != nil {
		return err
	}

	store := state.NewStore()
	tableLog := eventlog.NewLog(eventlog.DefaultCapacity)
	coordinator := turn.NewCoordinator(conf.PlayerID)
	views := view.NewHolder()

	wsClient := websocket.NewClient(logger, conf.GetWebsocketURL())
	restClient := rest.NewClient(conf.ServerURL)
	submitter := submit.NewSubmitter(logger, restClient, coordinator, time.Duration(conf.SubmitTimeoutSec)*time.Second)

	gameSession := session.New(logger, wsClient, store, tableLog, coordinator, submitter, source, views, conf.PlayerID)

	if conf.Redis.PersistenceEnabled() {
		redisStorage, storageErr := storage.New(ctx, conf.Redis.GetRedisAddr())
		if storageErr != nil {
			return fmt.Errorf("could not connect to redis storage: %w", storageErr)
		}

		defer func() {
			if closeErr := redisStorage.Close(); closeErr != nil {
				log.Error("could not close redis storage", "error", closeErr)
			}
		}()

		sessions := repository.NewSessionRepository(redisStorage)
		history := repository.NewHistoryRepository(redisStorage)
		gameSession.WithPersistence(resumeSession(ctx, log, sessions, conf.PlayerID), sessions, history)
	}

	// run the local status API
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting status server", "port", conf.HTTPPort)
		statusServer := rest.NewServer(logger, views, tableLog)
		if httpErr := statusServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("status server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run the push channel
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Connecting to game server", "url", conf.GetWebsocketURL())
		if wsErr := wsClient.Run(ctx); wsErr != nil {
			log.Error("push channel error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	// run the session loop
	sessionErrCh := make(chan error, 1)
	go func() {
		if sessionErr := gameSession.Run(ctx); sessionErr != nil {
			log.Error("session loop error", "error", sessionErr)
			sessionErrCh <- sessionErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("status server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("push channel error: %w", err)
	case err = <-sessionErrCh:
		return fmt.Errorf("session loop error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newActionSource(mode string) (player.Source, error) {
	switch mode {
	case "console", "":
		return player.NewConsoleSource(os.Stdin, os.Stdout), nil
	case "auto":
		return player.NewAutoSource(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlayerMode, mode)
	}
}

// resumeSession - picks up the stored session record for this player id, or
// mints a fresh one. Resumption is identity only; state always comes from the
// next snapshot.
func resumeSession(ctx context.Context, log *slog.Logger, sessions repository.SessionRepository, playerID string) *repository.Session {
	record, err := sessions.GetByPlayerID(ctx, playerID)
	if err == nil {
		log.Info("Resuming stored session", "session_id", record.ID, "last_seen_round", record.LastSeenRound)
		return record
	}

	if !errors.Is(err, repository.ErrSessionNotFound) {
		log.Error("could not load stored session, starting fresh", "error", err)
	}

	return repository.NewSession(playerID)
}
