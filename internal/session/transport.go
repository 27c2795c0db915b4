package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

// Transport carries protocol frames between the session and the server.
type Transport interface {
	Send(v any) error
	Receive() ([]byte, error)
	Close() error
}

// Dialer opens a transport for the given player.
type Dialer func(ctx context.Context, playerID string) (Transport, error)

type wsTransport struct {
	conn *websocket.Conn
	wmu  sync.Mutex
}

// WebSocketDialer dials /ws/:player_id on the server at serverURL.
// http and https URLs are mapped to ws and wss.
func WebSocketDialer(serverURL string) Dialer {
	return func(ctx context.Context, playerID string) (Transport, error) {
		return DialWebSocket(ctx, serverURL, playerID)
	}
}

func DialWebSocket(ctx context.Context, serverURL, playerID string) (Transport, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws/" + url.PathEscape(playerID)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", u.Redacted(), err)
	}
	return &wsTransport{conn: conn}, nil
}

func (t *wsTransport) Send(v any) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()
	return t.conn.WriteJSON(v)
}

func (t *wsTransport) Receive() ([]byte, error) {
	_, raw, err := t.conn.ReadMessage()
	return raw, err
}

func (t *wsTransport) Close() error {
	t.wmu.Lock()
	_ = t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	t.wmu.Unlock()
	return t.conn.Close()
}
