// Package protocol defines the JSON envelope exchanged over the player
// WebSocket and the HTTP intent bodies.
//
// Every WebSocket frame is an object with a "type" field; the remaining
// fields depend on the type.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"battlefun/internal/apperrors"
	"battlefun/internal/game"
	"battlefun/internal/state"
)

const (
	TypeAuthentication         = "authentication"
	TypeAuthenticationResponse = "authentication_response"
	TypeGameState              = "game_state"
)

// Envelope carries only the discriminator of a frame.
type Envelope struct {
	Type string `json:"type"`
}

// ServerMessage is a frame sent from the server to a player. The set of
// implementations is closed.
type ServerMessage interface {
	serverMessage()
}

// AuthenticationResponse answers an Authentication intent.
type AuthenticationResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
}

// GameStateUpdate carries a partial snapshot to fold into the player's state.
type GameStateUpdate struct {
	Type      string      `json:"type"`
	GameState state.Patch `json:"game_state"`
}

// Unknown is any frame with an unrecognized type. It never changes state.
type Unknown struct {
	Type string
	Raw  json.RawMessage
}

func (AuthenticationResponse) serverMessage() {}
func (GameStateUpdate) serverMessage()        {}
func (Unknown) serverMessage()                {}

// ClientMessage is a frame sent from a player to the server.
type ClientMessage interface {
	clientMessage()
}

// Authentication presents the player's bearer token on a fresh connection.
type Authentication struct {
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Ping is a keepalive frame; the server ignores it.
type Ping struct{}

func (Authentication) clientMessage() {}
func (Ping) clientMessage()           {}
func (Unknown) clientMessage()        {}

func NewAuthentication(token string) Authentication {
	return Authentication{Type: TypeAuthentication, Token: token}
}

func NewAuthenticationResponse(success bool) AuthenticationResponse {
	return AuthenticationResponse{Type: TypeAuthenticationResponse, Success: success}
}

func NewGameStateUpdate(p state.Patch) GameStateUpdate {
	return GameStateUpdate{Type: TypeGameState, GameState: p}
}

func protocolError(msg string, cause error) error {
	return apperrors.Wrap(apperrors.CodeProtocol, msg, cause)
}

func envelopeOf(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return env, protocolError("decode envelope", err)
	}
	if env.Type == "" {
		return env, apperrors.New(apperrors.CodeProtocol, "missing message type")
	}
	return env, nil
}

// DecodeServerMessage parses a frame received by a player.
func DecodeServerMessage(raw []byte) (ServerMessage, error) {
	env, err := envelopeOf(raw)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case TypeAuthenticationResponse:
		var m AuthenticationResponse
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, protocolError("decode "+env.Type, err)
		}
		return m, nil
	case TypeGameState:
		var m GameStateUpdate
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, protocolError("decode "+env.Type, err)
		}
		return m, nil
	default:
		return Unknown{Type: env.Type, Raw: append(json.RawMessage(nil), raw...)}, nil
	}
}

// DecodeClientMessage parses a frame received by the server.
func DecodeClientMessage(raw []byte) (ClientMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if string(trimmed) == "ping" {
		return Ping{}, nil
	}
	env, err := envelopeOf(trimmed)
	if err != nil {
		return nil, err
	}
	switch env.Type {
	case TypeAuthentication:
		var m Authentication
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, protocolError("decode "+env.Type, err)
		}
		return m, nil
	default:
		return Unknown{Type: env.Type, Raw: append(json.RawMessage(nil), trimmed...)}, nil
	}
}

// Encode marshals any frame or request body.
func Encode(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", v, err)
	}
	return b, nil
}

// PlacementRequest submits a fleet layout.
type PlacementRequest struct {
	Ships game.Fleet `json:"ships" binding:"required"`
	// RoomCode joins the room another player opened; empty opens a new one.
	RoomCode string `json:"room_code,omitempty"`
	// Bot starts a match against the server's bot instead of a player.
	Bot bool `json:"bot,omitempty"`
}

// PlacementResponse acknowledges a placement submission.
type PlacementResponse struct {
	Success  bool   `json:"success"`
	RoomCode string `json:"room_code,omitempty"`
	GameID   string `json:"game_id,omitempty"`
}

// ShotRequest fires at one cell of the opponent's board.
type ShotRequest struct {
	Cell *int `json:"cell" binding:"required"`
}

// TurnFlipRequest forces the turn flag. Development aid only; the server
// accepts it only when started in debug mode.
type TurnFlipRequest struct {
	GameState TurnFlip `json:"game_state"`
}

type TurnFlip struct {
	YourTurn *bool `json:"your_turn" binding:"required"`
}

// GenericResponse is the body of successful intent submissions.
type GenericResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body of rejected requests.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest asks the server for a player identity.
type RegisterRequest struct {
	Name string `json:"name"`
}

// RegisterResponse carries the issued identity and bearer token.
type RegisterResponse struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}
