package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"battlefun/internal/apperrors"
	"battlefun/internal/config"
	"battlefun/internal/game"
	"battlefun/internal/session"
	"battlefun/internal/state"
)

const placementRetries = 5

type update struct {
	phase session.Phase
	snap  *state.GameState
}

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		config.Exitf("%v", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := session.NewHTTPRequester(cfg.ServerURL, nil)
	reg, err := req.Register(ctx, cfg.PlayerName)
	if err != nil {
		config.Exitf("register: %v", err)
	}
	fmt.Printf("Registered as %s (%s)\n", reg.Name, reg.PlayerID)

	sess := session.NewContext(reg.PlayerID, reg.Name, reg.Token)
	syncer := session.NewSynchronizer(sess, session.WebSocketDialer(cfg.ServerURL), req, session.Options{
		Debug:           cfg.Debug,
		OpponentTimeout: cfg.OpponentTimeout,
		Seed:            seed,
		Logger:          log.Default(),
	})

	updates := make(chan update, 64)
	done := make(chan struct{})
	syncer.OnChange(forward(ctx, updates, done))

	if err := syncer.Connect(ctx); err != nil {
		config.Exitf("%v", err)
	}

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return syncer.Run(gctx)
	})
	g.Go(func() error {
		defer syncer.Close()
		defer close(done)
		return play(gctx, syncer, cfg, rand.New(rand.NewSource(seed)), updates, lines)
	})

	err = g.Wait()
	dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if derr := req.Deregister(dctx, reg.Token); derr != nil {
		log.Printf("deregister: %v", derr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		config.Exitf("%v", err)
	}
}

// forward hands every change to updates in order. It blocks until play
// takes the update, the context ends or done is closed.
func forward(ctx context.Context, updates chan<- update, done <-chan struct{}) func(session.Phase, *state.GameState) {
	return func(p session.Phase, s *state.GameState) {
		select {
		case updates <- update{phase: p, snap: s}:
		case <-ctx.Done():
		case <-done:
		}
	}
}

func play(ctx context.Context, s *session.Synchronizer, cfg config.ClientConfig, rng *rand.Rand, updates <-chan update, lines <-chan string) error {
	placed := false
	for {
		var u update
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u = <-updates:
		}

		switch u.phase {
		case session.Disconnected:
			if placed {
				fmt.Println("\nConnection closed.")
			}
			return nil

		case session.AuthenticatedNoGame:
			if placed {
				continue
			}
			placed = true
			if err := placeFleet(ctx, s, cfg, lines); err != nil {
				return err
			}

		case session.InProgress:
			_, view := s.Snapshot()
			printBoard(u.snap, view)
			if !u.snap.YourTurn {
				fmt.Println("Waiting for opponent...")
				continue
			}
			if err := takeTurn(ctx, s, cfg, rng, u.snap, lines); err != nil {
				return err
			}

		case session.Terminal:
			_, view := s.Snapshot()
			printBoard(u.snap, view)
			fmt.Printf("\nGame over: %s\n", view.Outcome)
			return nil
		}
	}
}

func placeFleet(ctx context.Context, s *session.Synchronizer, cfg config.ClientConfig, lines <-chan string) error {
	roomCode, vsBot := "", cfg.Auto
	if !cfg.Auto {
		fmt.Println("Room code to join, empty to open a room, or 'bot':")
		fmt.Print("> ")
		line, err := nextLine(ctx, lines)
		if err != nil {
			return err
		}
		switch line = strings.TrimSpace(line); strings.ToLower(line) {
		case "bot":
			vsBot = true
		default:
			roomCode = strings.ToUpper(line)
		}
	}

	for attempt := 1; ; attempt++ {
		_, resp, err := s.PlaceRandomShips(ctx, roomCode, vsBot)
		if errors.Is(err, apperrors.ErrPlacementGenerationFailed) && attempt < placementRetries {
			continue
		}
		if err != nil {
			return fmt.Errorf("place ships: %w", err)
		}
		if resp.GameID == "" {
			fmt.Printf("Room %s opened, waiting for an opponent...\n", resp.RoomCode)
		}
		return nil
	}
}

func takeTurn(ctx context.Context, s *session.Synchronizer, cfg config.ClientConfig, rng *rand.Rand, snap *state.GameState, lines <-chan string) error {
	if cfg.Auto {
		cell, err := game.ChooseShot(snap.YourShots, nil, cfg.Weights, rng)
		if err != nil {
			return err
		}
		fmt.Printf("Bot fires at %s\n", label(cell))
		err = s.Shoot(ctx, cell)
		if err != nil && apperrors.CodeOf(err).Recoverable() {
			log.Printf("shot rejected: %v", err)
			return nil
		}
		return err
	}

	fmt.Println("Enter target: row col (example: 3 7)")
	for {
		fmt.Print("> ")
		line, err := nextLine(ctx, lines)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			fmt.Println("Wrong format. Try again.")
			continue
		}
		r, _ := strconv.Atoi(parts[0])
		c, _ := strconv.Atoi(parts[1])
		cell, err := game.CellAt(r, c)
		if err != nil {
			fmt.Println("Invalid cell:", err)
			continue
		}
		err = s.Shoot(ctx, cell)
		if err != nil && apperrors.CodeOf(err).Recoverable() {
			fmt.Println("Shot rejected:", err)
			continue
		}
		return err
	}
}

func readLines(r io.Reader, out chan<- string) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			out <- line
		}
		if err != nil {
			close(out)
			return
		}
	}
}

func nextLine(ctx context.Context, lines <-chan string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

func label(cell int) string {
	r, _ := game.RowOf(cell)
	c, _ := game.ColOf(cell)
	return fmt.Sprintf("(%d,%d)", r, c)
}

func printBoard(s *state.GameState, view state.View) {
	if s == nil {
		return
	}
	incoming := game.ShotSet(s.OpponentShots)
	fired := make(map[int]bool, len(s.YourShots))
	for _, shot := range s.YourShots {
		fired[shot.Cell] = shot.Hit
	}
	occupied := game.ShotSet(s.YourShips.Cells())

	fmt.Println("\n  Your fleet            Opponent")
	fmt.Println("  0 1 2 3 4 5 6 7 8 9   0 1 2 3 4 5 6 7 8 9")
	for r := 0; r < game.BoardSize; r++ {
		fmt.Printf("%d ", r)
		for c := 0; c < game.BoardSize; c++ {
			cell := r*game.BoardSize + c
			switch {
			case occupied[cell] && incoming[cell]:
				fmt.Print("X ")
			case occupied[cell]:
				fmt.Print("# ")
			case incoming[cell]:
				fmt.Print("o ")
			default:
				fmt.Print(". ")
			}
		}
		fmt.Print("  ")
		for c := 0; c < game.BoardSize; c++ {
			hit, ok := fired[r*game.BoardSize+c]
			switch {
			case ok && hit:
				fmt.Print("X ")
			case ok:
				fmt.Print("o ")
			default:
				fmt.Print(". ")
			}
		}
		fmt.Println()
	}
	if len(view.DestroyedShips) > 0 {
		fmt.Printf("Lost: %v\n", view.DestroyedShips)
	}
	if len(s.DestroyedOpponentShips) > 0 {
		fmt.Printf("Sunk: %v\n", s.DestroyedOpponentShips)
	}
}
