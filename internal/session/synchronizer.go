package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"battlefun/internal/apperrors"
	"battlefun/internal/game"
	"battlefun/internal/protocol"
	"battlefun/internal/state"
)

type Options struct {
	// Debug enables the turn-flip intent.
	Debug bool
	// OpponentTimeout bounds the wait for the opponent's move. Zero waits forever.
	OpponentTimeout time.Duration
	Seed            int64
	Logger          *log.Logger
}

// Synchronizer is the per-player state machine. Inbound frames are applied
// one at a time in arrival order; outbound intents never block on a reply.
type Synchronizer struct {
	mu        sync.Mutex
	sess      *Context
	dial      Dialer
	req       Requester
	gen       *game.Generator
	log       *log.Logger
	debug     bool
	timeout   time.Duration
	phase     Phase
	snapshot  *state.GameState
	view      state.View
	transport Transport
	onChange  func(Phase, *state.GameState)
}

func NewSynchronizer(sess *Context, dial Dialer, req Requester, opts Options) *Synchronizer {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Synchronizer{
		sess:    sess,
		dial:    dial,
		req:     req,
		gen:     game.NewGenerator(opts.Seed),
		log:     logger,
		debug:   opts.Debug,
		timeout: opts.OpponentTimeout,
		phase:   Disconnected,
	}
}

// OnChange registers an observer called after every phase or snapshot change.
func (s *Synchronizer) OnChange(fn func(Phase, *state.GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *Synchronizer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns a copy of the current game state (nil before the first
// patch) and its derived view.
func (s *Synchronizer) Snapshot() (*state.GameState, state.View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.view
	v.State = s.snapshot.Clone()
	return s.snapshot.Clone(), v
}

// Connect opens the transport and sends the authentication intent.
func (s *Synchronizer) Connect(ctx context.Context) error {
	s.mu.Lock()
	if s.phase != Disconnected {
		phase := s.phase
		s.mu.Unlock()
		return apperrors.WithMetadata(apperrors.CodeInvalidState, "already connected",
			map[string]string{"phase": phase.String()})
	}
	if !s.sess.LoggedIn() {
		s.mu.Unlock()
		return apperrors.New(apperrors.CodeAuthenticationFailed, "no session token")
	}
	s.snapshot, s.view = nil, state.View{}
	s.phase = Connecting
	notify := s.changed()
	s.mu.Unlock()
	notify()

	t, err := s.dial(ctx, s.sess.PlayerID())
	if err != nil {
		s.setPhase(Disconnected)
		return fmt.Errorf("connect: %w", err)
	}
	if err := t.Send(protocol.NewAuthentication(s.sess.Token())); err != nil {
		_ = t.Close()
		s.setPhase(Disconnected)
		return fmt.Errorf("send authentication: %w", err)
	}

	s.mu.Lock()
	s.transport = t
	s.phase = AwaitingAuth
	notify = s.changed()
	s.mu.Unlock()
	notify()
	return nil
}

// Run reads frames until the connection closes, ctx ends or a fatal
// condition occurs. Authentication failure, data-integrity violations and
// an opponent timeout end the run with an error.
func (s *Synchronizer) Run(ctx context.Context) error {
	s.mu.Lock()
	t := s.transport
	s.mu.Unlock()
	if t == nil {
		return apperrors.New(apperrors.CodeInvalidState, "not connected")
	}

	frames := make(chan []byte)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(frames)
		for {
			raw, err := t.Receive()
			if err != nil {
				return nil
			}
			select {
			case frames <- raw:
			case <-gctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer s.disconnect()
		return s.loop(gctx, frames)
	})
	return g.Wait()
}

func (s *Synchronizer) loop(ctx context.Context, frames <-chan []byte) error {
	for {
		var (
			timer  *time.Timer
			expire <-chan time.Time
		)
		if s.awaitingOpponent() {
			timer = time.NewTimer(s.timeout)
			expire = timer.C
		}

		var err error
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case raw, ok := <-frames:
			if !ok {
				if timer != nil {
					timer.Stop()
				}
				return nil
			}
			err = s.Handle(raw)
			if err != nil && apperrors.CodeOf(err).Recoverable() {
				s.log.Printf("frame rejected: %v", err)
				err = nil
			}
		case <-expire:
			err = apperrors.WithMetadata(apperrors.CodeOpponentTimeout, "opponent did not move",
				map[string]string{"timeout": s.timeout.String()})
		}
		if timer != nil {
			timer.Stop()
		}
		if err != nil {
			return err
		}
	}
}

func (s *Synchronizer) awaitingOpponent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeout > 0 && s.phase == InProgress && s.snapshot != nil && !s.snapshot.YourTurn
}

// Handle applies one inbound frame. Malformed and unknown frames are logged
// and ignored.
func (s *Synchronizer) Handle(raw []byte) error {
	msg, err := protocol.DecodeServerMessage(raw)
	if err != nil {
		s.log.Printf("ignoring frame: %v", err)
		return nil
	}

	switch m := msg.(type) {
	case protocol.AuthenticationResponse:
		return s.handleAuth(m.Success)
	case protocol.GameStateUpdate:
		return s.handleGameState(m.GameState)
	case protocol.Unknown:
		s.log.Printf("ignoring message type %q", m.Type)
	}
	return nil
}

func (s *Synchronizer) handleAuth(success bool) error {
	s.mu.Lock()
	if s.phase != AwaitingAuth {
		phase := s.phase
		s.mu.Unlock()
		s.log.Printf("ignoring authentication_response in %s", phase)
		return nil
	}
	if success {
		s.phase = AuthenticatedNoGame
		notify := s.changed()
		s.mu.Unlock()
		notify()
		return nil
	}
	s.mu.Unlock()

	s.sess.Logout()
	s.disconnect()
	return apperrors.ErrAuthenticationFailed
}

func (s *Synchronizer) handleGameState(p state.Patch) error {
	s.mu.Lock()
	switch s.phase {
	case AuthenticatedNoGame, PlacingShips, InProgress:
	default:
		phase := s.phase
		s.mu.Unlock()
		s.log.Printf("ignoring game_state in %s", phase)
		return nil
	}

	next := state.Merge(s.snapshot, p)
	if next == nil {
		s.mu.Unlock()
		return nil
	}
	s.snapshot = next
	view, err := state.Resolve(next)
	if err != nil {
		s.mu.Unlock()
		s.log.Printf("game %s: %v", next.GameID, err)
		return err
	}
	s.snapshot, s.view = view.State, view
	if view.Outcome.Terminal() {
		s.phase = Terminal
		s.log.Printf("game %s finished: %s", next.GameID, view.Outcome)
	} else {
		s.phase = InProgress
	}
	notify := s.changed()
	s.mu.Unlock()
	notify()
	return nil
}

// PlaceShips validates and submits a fleet. An empty roomCode opens a room,
// vsBot starts a match against the server's bot.
func (s *Synchronizer) PlaceShips(ctx context.Context, fleet game.Fleet, roomCode string, vsBot bool) (protocol.PlacementResponse, error) {
	if err := game.ValidateFleet(fleet); err != nil {
		return protocol.PlacementResponse{}, err
	}

	s.mu.Lock()
	if s.phase != AuthenticatedNoGame {
		phase := s.phase
		s.mu.Unlock()
		return protocol.PlacementResponse{}, apperrors.WithMetadata(apperrors.CodeInvalidState,
			"fleet can only be placed before a game starts", map[string]string{"phase": phase.String()})
	}
	s.phase = PlacingShips
	notify := s.changed()
	s.mu.Unlock()
	notify()

	resp, err := s.req.SubmitPlacement(ctx, s.sess.Token(), protocol.PlacementRequest{
		Ships:    fleet.Clone(),
		RoomCode: roomCode,
		Bot:      vsBot,
	})
	if err != nil {
		s.mu.Lock()
		if s.phase == PlacingShips {
			s.phase = AuthenticatedNoGame
		}
		notify := s.changed()
		s.mu.Unlock()
		notify()
		return protocol.PlacementResponse{}, err
	}
	return resp, nil
}

// PlaceRandomShips generates a fleet and submits it. Generation exhaustion
// is returned as is; the caller decides whether to try again.
func (s *Synchronizer) PlaceRandomShips(ctx context.Context, roomCode string, vsBot bool) (game.Fleet, protocol.PlacementResponse, error) {
	s.mu.Lock()
	fleet, err := s.gen.Generate()
	s.mu.Unlock()
	if err != nil {
		return nil, protocol.PlacementResponse{}, err
	}
	resp, err := s.PlaceShips(ctx, fleet, roomCode, vsBot)
	return fleet, resp, err
}

// Shoot checks legality against the local snapshot and submits the shot.
// The snapshot is only updated by the server's next patch.
func (s *Synchronizer) Shoot(ctx context.Context, cell int) error {
	s.mu.Lock()
	if s.phase != InProgress && s.phase != Terminal {
		phase := s.phase
		s.mu.Unlock()
		return apperrors.WithMetadata(apperrors.CodeInvalidState, "no game in progress",
			map[string]string{"phase": phase.String()})
	}
	if err := state.CheckShot(s.snapshot, cell); err != nil {
		s.mu.Unlock()
		return err
	}
	gameID := s.snapshot.GameID
	s.mu.Unlock()

	return s.req.SubmitShot(ctx, s.sess.Token(), gameID, cell)
}

// FlipTurn asks the server to force your_turn. Development aid only.
func (s *Synchronizer) FlipTurn(ctx context.Context, yourTurn bool) error {
	if !s.debug {
		return apperrors.ErrDebugDisabled
	}
	if s.Phase() != InProgress {
		return apperrors.New(apperrors.CodeInvalidState, "no game in progress")
	}
	return s.req.SubmitTurnFlip(ctx, s.sess.Token(), yourTurn)
}

// Close drops the connection.
func (s *Synchronizer) Close() error {
	s.mu.Lock()
	t := s.transport
	s.mu.Unlock()
	if t == nil {
		return nil
	}
	s.disconnect()
	return nil
}

func (s *Synchronizer) disconnect() {
	s.mu.Lock()
	t := s.transport
	s.transport = nil
	if s.phase != Terminal && s.phase != Disconnected && s.snapshot != nil {
		s.log.Printf("game %s abandoned", s.snapshot.GameID)
	}
	s.phase = Disconnected
	notify := s.changed()
	s.mu.Unlock()
	if t != nil {
		_ = t.Close()
	}
	notify()
}

func (s *Synchronizer) setPhase(p Phase) {
	s.mu.Lock()
	s.phase = p
	notify := s.changed()
	s.mu.Unlock()
	notify()
}

// changed captures the observer call; run it after releasing mu.
func (s *Synchronizer) changed() func() {
	fn := s.onChange
	if fn == nil {
		return func() {}
	}
	phase, snap := s.phase, s.snapshot.Clone()
	return func() { fn(phase, snap) }
}

// IsFatal reports whether err ends the session.
func IsFatal(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	return !apperrors.CodeOf(err).Recoverable()
}
