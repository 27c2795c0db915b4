package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"battlefun/internal/protocol"
	"battlefun/internal/state"
)

const writeWait = 5 * time.Second

type client struct {
	conn     *websocket.Conn
	playerID string
	wmu      sync.Mutex
}

func (c *client) write(v any) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(v)
}

type Hub struct {
	mu          sync.RWMutex
	players     map[string]map[*client]struct{}
	roomManager RoomManager
	tokens      TokenVerifier
	upgrader    websocket.Upgrader
	log         *log.Logger
}

// NewHub returns a hub accepting upgrades from allowedOrigin ("*" for any).
func NewHub(roomManager RoomManager, tokens TokenVerifier, allowedOrigin string, logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		players:     make(map[string]map[*client]struct{}),
		roomManager: roomManager,
		tokens:      tokens,
		log:         logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return allowedOrigin == "*" || r.Header.Get("Origin") == allowedOrigin
			},
		},
	}
}

// HandleWS serves /ws/:player_id. The connection receives nothing until an
// authentication frame carrying a token for that player succeeds.
func (h *Hub) HandleWS(c *gin.Context) {
	playerID := c.Param("player_id")
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing player_id"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Printf("failed to upgrade connection: %v", err)
		return
	}
	cl := &client{conn: conn, playerID: playerID}
	h.log.Printf("%s connected", playerID)

	defer func() {
		h.mu.Lock()
		if set, ok := h.players[playerID]; ok {
			delete(set, cl)
			if len(set) == 0 {
				delete(h.players, playerID)
			}
		}
		h.mu.Unlock()
		_ = conn.Close()
		h.log.Printf("%s disconnected", playerID)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Printf("error receiving ws message for %s: %v", playerID, err)
			}
			return
		}
		msg, err := protocol.DecodeClientMessage(raw)
		if err != nil {
			h.log.Printf("ignoring frame from %s: %v", playerID, err)
			continue
		}

		switch m := msg.(type) {
		case protocol.Authentication:
			h.authenticate(cl, m.Token)
		case protocol.Ping:
		case protocol.Unknown:
			h.log.Printf("unknown message type from %s: %s", playerID, m.Type)
		}
	}
}

// authenticate answers an authentication frame. On success the client is
// registered and handed the current snapshot while the room manager holds
// back notifications, so no patch can reach it ahead of the snapshot.
func (h *Hub) authenticate(cl *client, token string) {
	subject, err := h.tokens.Verify(token)
	if err != nil {
		h.log.Printf("authentication failed for %s: %v", cl.playerID, err)
		h.reject(cl)
		return
	}
	if subject != cl.playerID {
		h.log.Printf("authentication failed for %s: token belongs to %s", cl.playerID, subject)
		h.reject(cl)
		return
	}

	known := h.roomManager.WithActiveView(cl.playerID, func(v state.GameState, found bool) {
		h.mu.Lock()
		if _, exists := h.players[cl.playerID]; !exists {
			h.players[cl.playerID] = make(map[*client]struct{})
		}
		h.players[cl.playerID][cl] = struct{}{}
		h.mu.Unlock()

		if err := cl.write(protocol.NewAuthenticationResponse(true)); err != nil {
			h.log.Printf("failed to send authentication response: %v", err)
			return
		}
		if !found {
			return
		}
		if err := cl.write(protocol.NewGameStateUpdate(state.FullPatch(v))); err != nil {
			h.log.Printf("failed to send game state: %v", err)
		}
	})
	if !known {
		h.log.Printf("authentication failed for %s: unknown player", cl.playerID)
		h.reject(cl)
	}
}

func (h *Hub) reject(cl *client) {
	if err := cl.write(protocol.NewAuthenticationResponse(false)); err != nil {
		h.log.Printf("failed to send authentication response: %v", err)
	}
}

// Notify sends a game_state patch to every authenticated connection of the player.
func (h *Hub) Notify(playerID string, p state.Patch) {
	if h == nil {
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.players[playerID]))
	for cl := range h.players[playerID] {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	msg := protocol.NewGameStateUpdate(p)
	for _, cl := range clients {
		if err := cl.write(msg); err != nil {
			h.log.Printf("failed to send message to %s: %v", playerID, err)
			_ = cl.conn.Close()
		}
	}
}

// Connected reports whether the player has an authenticated connection.
func (h *Hub) Connected(playerID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.players[playerID]) > 0
}
