package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfelt/holdemsync/internal/eventlog"
	"github.com/greenfelt/holdemsync/internal/view"
)

func testStatusServer() (*Server, *view.Holder, *eventlog.Log) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	views := view.NewHolder()
	tableLog := eventlog.NewLog(eventlog.DefaultCapacity)

	return NewServer(logger, views, tableLog), views, tableLog
}

func TestServer_Routes(t *testing.T) {
	t.Run("Health check answers 200", func(t *testing.T) {
		// Given: a status server
		server, _, _ := testStatusServer()
		ts := httptest.NewServer(server.Routes())
		defer ts.Close()

		// When: probing health
		resp, err := http.Get(ts.URL + "/healthz")

		// Then: 200
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("State is 204 until a view is published, then 200", func(t *testing.T) {
		// Given: a status server before any snapshot arrived
		server, views, _ := testStatusServer()
		ts := httptest.NewServer(server.Routes())
		defer ts.Close()

		// When: requesting state too early
		resp, err := http.Get(ts.URL + "/state")
		require.NoError(t, err)
		resp.Body.Close()

		// Then: no content, not an error
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		// When: a view gets published and the request repeats
		views.Publish(view.View{Connected: true, GamePhase: "flop", TurnBanner: "It's your turn."})

		resp, err = http.Get(ts.URL + "/state")
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: the published view comes back as JSON
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got view.View
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.True(t, got.Connected)
		assert.Equal(t, "It's your turn.", got.TurnBanner)
	})

	t.Run("Log serves the bounded entries", func(t *testing.T) {
		// Given: a status server with two log lines
		server, _, tableLog := testStatusServer()
		tableLog.Push(eventlog.KindInfo, "Connected to server.")
		tableLog.Push(eventlog.KindBanner, "--- Round 2 ---")
		ts := httptest.NewServer(server.Routes())
		defer ts.Close()

		// When: fetching the log
		resp, err := http.Get(ts.URL + "/log")
		require.NoError(t, err)
		defer resp.Body.Close()

		// Then: both entries, oldest first
		var entries []eventlog.Entry
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "Connected to server.", entries[0].Text)
		assert.Equal(t, eventlog.KindBanner, entries[1].Kind)
	})
}
