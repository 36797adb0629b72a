package autoplay

import (
	"context"
	"errors"
	"fmt"

	"github.com/plus3/tenten/session"
)

// ErrMoveLimit is returned when a game is still running after MaxMoves.
var ErrMoveLimit = errors.New("move limit reached")

// Options controls Play.
type Options struct {
	// Revive spends every revive the game allows before giving up.
	Revive bool
	// MaxMoves stops runaway games. Zero means no limit.
	MaxMoves int
}

// Result summarises one finished game.
type Result struct {
	Score   int
	Moves   int
	Lines   int
	Revives int
}

// Play drives g with c until the game is over and no revive is left to
// spend. It stops early when ctx is done or the move limit is hit.
func Play(ctx context.Context, g *session.Game, c Chooser, opts Options) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return result(g), err
		}

		if g.Over() {
			if !opts.Revive || !g.CanRevive() {
				return result(g), nil
			}
			if err := g.Revive(); err != nil {
				return result(g), fmt.Errorf("revive: %w", err)
			}
			continue
		}

		if opts.MaxMoves > 0 && g.Moves() >= opts.MaxMoves {
			return result(g), ErrMoveLimit
		}

		m, ok := c.Choose(g.Board(), g.Offer())
		if !ok {
			// The oracle and the chooser disagree; treat it as the end.
			return result(g), nil
		}
		if _, err := g.Place(m.Slot, m.Origin); err != nil {
			return result(g), fmt.Errorf("place %s at %s: %w", m.Shape, m.Origin, err)
		}
	}
}

func result(g *session.Game) Result {
	return Result{
		Score:   g.Score(),
		Moves:   g.Moves(),
		Lines:   g.Lines(),
		Revives: g.Revives(),
	}
}
