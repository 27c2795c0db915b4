package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"battlefun/internal/apperrors"
	"battlefun/internal/protocol"
)

// Requester delivers outbound intents. Results are observed through the
// next inbound game_state patch, not through the return values.
type Requester interface {
	SubmitPlacement(ctx context.Context, token string, req protocol.PlacementRequest) (protocol.PlacementResponse, error)
	SubmitShot(ctx context.Context, token, gameID string, cell int) error
	SubmitTurnFlip(ctx context.Context, token string, yourTurn bool) error
}

type HTTPRequester struct {
	base   string
	client *http.Client
}

// NewHTTPRequester talks to the server at baseURL. A nil client gets a
// default with a ten second timeout.
func NewHTTPRequester(baseURL string, client *http.Client) *HTTPRequester {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPRequester{base: strings.TrimRight(baseURL, "/"), client: client}
}

func (r *HTTPRequester) Register(ctx context.Context, name string) (protocol.RegisterResponse, error) {
	var out protocol.RegisterResponse
	err := r.do(ctx, http.MethodPost, "/api/register", "", protocol.RegisterRequest{Name: name}, &out)
	return out, err
}

// Deregister drops the player from the server. It fails while a game is in progress.
func (r *HTTPRequester) Deregister(ctx context.Context, token string) error {
	return r.do(ctx, http.MethodPost, "/api/deregister", token, nil, nil)
}

func (r *HTTPRequester) SubmitPlacement(ctx context.Context, token string, req protocol.PlacementRequest) (protocol.PlacementResponse, error) {
	var out protocol.PlacementResponse
	err := r.do(ctx, http.MethodPost, "/api/game", token, req, &out)
	return out, err
}

func (r *HTTPRequester) SubmitShot(ctx context.Context, token, gameID string, cell int) error {
	return r.do(ctx, http.MethodPost, "/api/game/"+gameID+"/turn", token, protocol.ShotRequest{Cell: &cell}, nil)
}

func (r *HTTPRequester) SubmitTurnFlip(ctx context.Context, token string, yourTurn bool) error {
	body := protocol.TurnFlipRequest{GameState: protocol.TurnFlip{YourTurn: &yourTurn}}
	return r.do(ctx, http.MethodPost, "/api/debug/turn", token, body, nil)
}

func (r *HTTPRequester) do(ctx context.Context, method, path, token string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := protocol.Encode(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.base+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		var e protocol.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Code != "" {
			return apperrors.New(apperrors.Code(e.Code), e.Message)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
