// Package session drives one player's connection through authentication,
// fleet placement, alternating turns and the end of the game.
package session

import "sync"

// Context holds the player's identity for the lifetime of a session. It is
// passed by pointer to the Synchronizer and to whatever renders the game.
type Context struct {
	mu       sync.RWMutex
	playerID string
	name     string
	token    string
}

func NewContext(playerID, name, token string) *Context {
	return &Context{playerID: playerID, name: name, token: token}
}

func (c *Context) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

func (c *Context) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// LoggedIn reports whether the context still carries a token.
func (c *Context) LoggedIn() bool {
	return c.Token() != ""
}

// Logout clears the identity. The caller must register again.
func (c *Context) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID, c.name, c.token = "", "", ""
}
