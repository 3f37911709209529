// Package clues turns knowledge base records into purchasable clues.
package clues

import (
	"log/slog"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/abhisek/periodica/internal/game"
	"github.com/abhisek/periodica/internal/i18n"
	"github.com/abhisek/periodica/internal/kb"
	"github.com/abhisek/periodica/internal/rng"
)

// MaxCandidates caps the narrative clues offered per room visit.
const MaxCandidates = 6

// Source maps a knowledge field to a clue type.
type Source struct {
	Field  kb.Field
	Type   game.ClueType
	Paired bool
}

var (
	primarySources = []Source{
		{Field: kb.DiscoveryEra, Type: game.ClueHistory},
		{Field: kb.NameOrigin, Type: game.ClueEtymology},
		{Field: kb.PhysicalTraits, Type: game.CluePhysics, Paired: true},
		{Field: kb.ChemicalTraits, Type: game.ClueChemistry, Paired: true},
	}
	librarySources = []Source{
		{Field: kb.Prevalence, Type: game.ClueDiffusion},
		{Field: kb.Usage, Type: game.ClueUsage},
		{Field: kb.TriviaOne, Type: game.ClueTrivia},
		{Field: kb.TriviaTwo, Type: game.ClueTrivia},
	}
	fallbackSources = []Source{
		{Field: kb.Usage, Type: game.ClueUsage},
		{Field: kb.TriviaOne, Type: game.ClueTrivia},
	}
)

// Sources returns the knowledge fields a theme draws from.
func Sources(theme game.Theme) []Source {
	switch theme {
	case game.ThemePrimary:
		return primarySources
	case game.ThemeLibrary:
		return librarySources
	case game.ThemeMixed, game.ThemeFinale:
		out := make([]Source, 0, len(primarySources)+len(librarySources))
		out = append(out, primarySources...)
		return append(out, librarySources...)
	}
	return fallbackSources
}

// Synthesizer produces the candidate clues of a room visit.
type Synthesizer interface {
	Synthesize(elementName string, theme game.Theme) []game.Clue
}

// Engine synthesizes clues from a knowledge base.
type Engine struct {
	kb       *kb.KnowledgeBase
	shuffler rng.Shuffler
	logger   *slog.Logger
	observe  func(elementName string, clues []game.Clue)
}

var _ Synthesizer = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for data-integrity errors.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithObserver registers a callback that sees every synthesized set.
func WithObserver(fn func(elementName string, clues []game.Clue)) Option {
	return func(e *Engine) { e.observe = fn }
}

// NewEngine creates an Engine over k, ordering clues with s.
func NewEngine(k *kb.KnowledgeBase, s rng.Shuffler, opts ...Option) *Engine {
	e := &Engine{kb: k, shuffler: s, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synthesize returns up to MaxCandidates narrative clues for the element,
// in random order, none of which mentions the element's symbol. A missing
// record yields a single error clue and an empty result a single info clue.
func (e *Engine) Synthesize(elementName string, theme game.Theme) []game.Clue {
	out := e.synthesize(elementName, theme)
	if e.observe != nil {
		e.observe(elementName, out)
	}
	return out
}

func (e *Engine) synthesize(elementName string, theme game.Theme) []game.Clue {
	rec, ok := e.kb.Lookup(elementName)
	if !ok {
		e.logger.Error("element missing from knowledge base", "element", elementName)
		return []game.Clue{{Text: i18n.T("MISSING_DATA"), Type: game.ClueError}}
	}

	var candidates []game.Clue
	for _, src := range Sources(theme) {
		for _, text := range Split(rec.Text(src.Field), src.Paired) {
			if utf8.RuneCountInString(text) <= MinUnitLength {
				continue
			}
			candidates = append(candidates, game.Clue{Text: text, Type: src.Type})
		}
	}

	candidates = withoutSymbol(candidates, rec.Symbol)
	rng.ShuffleSlice(e.shuffler, candidates)
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	if len(candidates) == 0 {
		e.logger.Warn("no usable clues", "element", elementName, "theme", string(theme))
		return []game.Clue{{Text: i18n.T("INSUFFICIENT_DATA"), Type: game.ClueInfo}}
	}
	return candidates
}

// SymbolPattern matches the symbol as a case-insensitive whole word.
func SymbolPattern(symbol string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(symbol) + `\b`)
}

func withoutSymbol(candidates []game.Clue, symbol string) []game.Clue {
	if symbol == "" {
		return candidates
	}
	re := SymbolPattern(symbol)
	kept := candidates[:0]
	for _, c := range candidates {
		if !re.MatchString(c.Text) {
			kept = append(kept, c)
		}
	}
	return kept
}

// SymbolClue is the special clue revealing the chemical symbol.
func SymbolClue(el game.Element) game.Clue {
	return game.Clue{Text: i18n.T("SYMBOL_CLUE", el.Symbol), Type: game.ClueSymbol}
}

// AtomicNumberClue is the special clue revealing the atomic number.
func AtomicNumberClue(el game.Element) game.Clue {
	return game.Clue{Text: i18n.T("ATOMIC_NUMBER_CLUE", el.AtomicNumber), Type: game.ClueAtomicNumber}
}

// Describe renders a clue for command-line listings.
func Describe(c game.Clue) string {
	s := "[" + string(c.Type) + "] " + c.Text
	if c.Cost != nil {
		s += " (" + strconv.Itoa(*c.Cost) + ")"
	}
	return s
}
