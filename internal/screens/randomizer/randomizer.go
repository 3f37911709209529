// Package randomizer shows the element scramble while a game's rooms are
// drawn.
package randomizer

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/periodica/internal/audio"
	"github.com/abhisek/periodica/internal/elements"
	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/rooms"
	"github.com/abhisek/periodica/internal/screen"
	"github.com/abhisek/periodica/internal/store"
	"github.com/abhisek/periodica/internal/timer"
	"github.com/abhisek/periodica/internal/ui/components"
	"github.com/abhisek/periodica/internal/ui/layout"
	"github.com/abhisek/periodica/internal/ui/theme"
)

// scrambleTickMsg redraws the tiles.
type scrambleTickMsg struct{ tok timer.Token }

// scrambleDoneMsg ends the animation and binds the rooms.
type scrambleDoneMsg struct{ tok timer.Token }

// RandomizerScreen animates random element tiles for a fixed time, then
// binds the generated rooms to the session.
type RandomizerScreen struct {
	deps     *screen.Deps
	scramble timer.Scramble
	tok      timer.Token
	pool     []game.Element
	tiles    []string
}

var _ screen.Screen = (*RandomizerScreen)(nil)
var _ screen.KeyHintProvider = (*RandomizerScreen)(nil)

// New creates the randomizer for the session's difficulty.
func New(deps *screen.Deps) *RandomizerScreen {
	r := &RandomizerScreen{
		deps:  deps,
		pool:  elements.Pool(deps.Session.Difficulty()),
		tiles: make([]string, len(rooms.Templates())),
	}
	r.shuffle()
	return r
}

func (r *RandomizerScreen) Init() tea.Cmd {
	r.tok = r.scramble.Start()
	return tea.Batch(tickCmd(r.tok), doneCmd(r.tok))
}

func tickCmd(tok timer.Token) tea.Cmd {
	return tea.Tick(timer.ScrambleInterval, func(time.Time) tea.Msg {
		return scrambleTickMsg{tok: tok}
	})
}

func doneCmd(tok timer.Token) tea.Cmd {
	return tea.Tick(timer.ScrambleDuration, func(time.Time) tea.Msg {
		return scrambleDoneMsg{tok: tok}
	})
}

func (r *RandomizerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scrambleTickMsg:
		if !r.scramble.Tick(msg.tok) {
			return r, nil
		}
		r.shuffle()
		r.deps.Play(audio.CueType)
		return r, tickCmd(msg.tok)

	case scrambleDoneMsg:
		if !r.scramble.Fire(msg.tok) {
			return r, nil
		}
		return r, r.bind()

	case tea.KeyMsg:
		if msg.String() == "esc" {
			r.scramble.Cancel()
			if err := r.deps.Session.CancelRandomizing(); err != nil {
				r.deps.Log().Error("cancel randomizing", "error", err)
			}
		}
	}
	return r, nil
}

func (r *RandomizerScreen) bind() tea.Cmd {
	s := r.deps.Session
	if err := s.BindRooms(r.deps.Rooms.Generate(s.Difficulty())); err != nil {
		r.deps.Log().Error("bind rooms", "error", err)
		return nil
	}
	r.deps.RecordSession(store.SessionStarted)
	r.deps.Play(audio.CueUnlock)
	return nil
}

func (r *RandomizerScreen) shuffle() {
	if len(r.pool) == 0 || r.deps.Shuffle == nil {
		return
	}
	for i := range r.tiles {
		r.tiles[i] = r.pool[r.deps.Shuffle.IntN(len(r.pool))].Symbol
	}
}

// Tiles returns the symbols currently shown.
func (r *RandomizerScreen) Tiles() []string {
	return append([]string(nil), r.tiles...)
}

func (r *RandomizerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	sections := []string{
		theme.Title.Width(cw).Render(i18n.T("RANDOMIZER_TITLE")),
		components.Tiles(r.tiles...),
		theme.Hint.Render(i18n.T("RANDOMIZER_BODY")),
	}
	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (r *RandomizerScreen) Title() string {
	return i18n.T("RANDOMIZER_TITLE")
}

func (r *RandomizerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: i18n.T("HINT_BACK")},
	}
}
