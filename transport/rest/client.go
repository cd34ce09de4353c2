// Package rest holds the two HTTP surfaces of the client: the one-shot
// action-submission call to the game server and the local status API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/internal/submit"
)

const submitActionPath = "/submit_action"

// Client - submits actions to the game server. The server answers
// {status, message} with a non-2xx code for rejections; a decodable body is
// still an acknowledgment, only an unreachable server is a transport failure.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// SubmitAction - implements submit.Caller.
func (that *Client) SubmitAction(ctx context.Context, action entity.Action) (submit.Ack, error) {
	body, err := json.Marshal(action)
	if err != nil {
		return submit.Ack{}, fmt.Errorf("failed to marshal action: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.baseURL+submitActionPath, bytes.NewReader(body))
	if err != nil {
		return submit.Ack{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return submit.Ack{}, fmt.Errorf("failed to reach game server: %w", err)
	}
	defer resp.Body.Close()

	var ack submit.Ack
	if err = json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return submit.Ack{}, fmt.Errorf("failed to decode acknowledgment (status %d): %w", resp.StatusCode, err)
	}

	return ack, nil
}
