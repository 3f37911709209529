// Package rooms builds the room sequence of a game: one distinct element
// per room template, drawn from the pool of the chosen difficulty.
package rooms

import (
	"fmt"

	"github.com/abhisek/periodica/internal/elements"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/rng"
)

// Generator binds elements to room templates.
type Generator struct {
	shuffler  rng.Shuffler
	templates []game.RoomTemplate
	pool      func(game.Difficulty) []game.Element
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemplates replaces the compiled-in templates.
func WithTemplates(t []game.RoomTemplate) Option {
	return func(g *Generator) { g.templates = t }
}

// WithPool replaces the element pool selection.
func WithPool(pool func(game.Difficulty) []game.Element) Option {
	return func(g *Generator) { g.pool = pool }
}

// NewGenerator creates a Generator that shuffles with s.
func NewGenerator(s rng.Shuffler, opts ...Option) *Generator {
	g := &Generator{
		shuffler:  s,
		templates: Templates(),
		pool:      elements.Pool,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns one room per template, in template order. Pool size is
// checked once by Validate, so a short pool here yields fewer rooms rather
// than a panic.
func (g *Generator) Generate(d game.Difficulty) []game.Room {
	pool := g.pool(d)
	shuffled := make([]game.Element, len(pool))
	copy(shuffled, pool)
	rng.ShuffleSlice(g.shuffler, shuffled)

	n := min(len(g.templates), len(shuffled))
	rooms := make([]game.Room, n)
	for i := range n {
		rooms[i] = game.Room{RoomTemplate: g.templates[i], Element: shuffled[i]}
	}
	return rooms
}

// Validate checks that every difficulty has enough elements for the
// templates. Called once at startup.
func (g *Generator) Validate() error {
	for _, info := range game.Difficulties() {
		if n := len(g.pool(info.Difficulty)); n < len(g.templates) {
			return fmt.Errorf("difficulty %s: pool has %d elements, need %d", info.Label, n, len(g.templates))
		}
	}
	return nil
}

// Validate checks the compiled-in templates against the compiled-in pools.
func Validate() error {
	return NewGenerator(rng.Identity{}).Validate()
}
