// Package apperrors provides coded domain errors shared by the game engine,
// the server and the client synchronizer.
package apperrors

import (
	"errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Placement errors
	CodeInvalidCell               Code = "INVALID_CELL"
	CodeInvalidPlacement          Code = "INVALID_PLACEMENT"
	CodePlacementGenerationFailed Code = "PLACEMENT_GENERATION_FAILED"

	// Shot legality errors
	CodeDuplicateShot Code = "DUPLICATE_SHOT"
	CodeOutOfTurn     Code = "OUT_OF_TURN"
	CodeGameOver      Code = "GAME_OVER"

	// Session errors
	CodeDataIntegrity        Code = "DATA_INTEGRITY"
	CodeAuthenticationFailed Code = "AUTHENTICATION_FAILED"
	CodeOpponentTimeout      Code = "OPPONENT_TIMEOUT"
	CodeProtocol             Code = "PROTOCOL"
	CodeInvalidState         Code = "INVALID_STATE"
	CodeDebugDisabled        Code = "DEBUG_DISABLED"

	// Server errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeInvalidPlayer Code = "INVALID_PLAYER"
	CodeRoomFull      Code = "ROOM_FULL"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidCell, CodeInvalidPlacement, CodeProtocol:
		return http.StatusBadRequest
	case CodeDuplicateShot, CodeOutOfTurn, CodeGameOver, CodeRoomFull, CodeInvalidState:
		return http.StatusConflict
	case CodeAuthenticationFailed:
		return http.StatusUnauthorized
	case CodeInvalidPlayer, CodeDebugDisabled:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeOpponentTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Recoverable reports whether the error leaves the session usable.
// Legality and protocol errors are client-correctable.
func (c Code) Recoverable() bool {
	switch c {
	case CodeInvalidCell, CodeDuplicateShot, CodeOutOfTurn, CodeProtocol, CodeDebugDisabled, CodeInvalidState:
		return true
	}
	return false
}

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs)
	Metadata map[string]string // Additional context
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the domain code from err, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// Sentinels for errors.Is comparisons. Matching is by code only.
var (
	ErrInvalidCell               = New(CodeInvalidCell, "invalid cell")
	ErrInvalidPlacement          = New(CodeInvalidPlacement, "invalid placement")
	ErrPlacementGenerationFailed = New(CodePlacementGenerationFailed, "placement generation failed")
	ErrDuplicateShot             = New(CodeDuplicateShot, "cell already targeted")
	ErrOutOfTurn                 = New(CodeOutOfTurn, "not your turn")
	ErrGameOver                  = New(CodeGameOver, "game is already finished")
	ErrDataIntegrity             = New(CodeDataIntegrity, "data integrity violation")
	ErrAuthenticationFailed      = New(CodeAuthenticationFailed, "authentication failed")
	ErrOpponentTimeout           = New(CodeOpponentTimeout, "opponent timed out")
	ErrProtocol                  = New(CodeProtocol, "protocol error")
	ErrInvalidState              = New(CodeInvalidState, "operation not allowed in current state")
	ErrDebugDisabled             = New(CodeDebugDisabled, "debug capability disabled")
	ErrNotFound                  = New(CodeNotFound, "not found")
	ErrInvalidPlayer             = New(CodeInvalidPlayer, "invalid player")
	ErrRoomFull                  = New(CodeRoomFull, "room is full")
)
