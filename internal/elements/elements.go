// Package elements is the compiled-in element catalog and its pool cuts.
package elements

import (
	"fmt"
	"strings"

	"github.com/abhisek/periodica/internal/game"
)

// RestrictedMaxAtomicNumber is the highest atomic number in the restricted pool.
const RestrictedMaxAtomicNumber = 56

// Full returns a copy of the whole catalog, ordered by atomic number.
func Full() []game.Element {
	out := make([]game.Element, len(catalog))
	copy(out, catalog)
	return out
}

// Restricted returns a copy of the elements up to RestrictedMaxAtomicNumber.
func Restricted() []game.Element {
	out := make([]game.Element, 0, RestrictedMaxAtomicNumber)
	for _, el := range catalog {
		if el.AtomicNumber <= RestrictedMaxAtomicNumber {
			out = append(out, el)
		}
	}
	return out
}

// Pool returns the selection pool for a difficulty. Only Easy is restricted.
func Pool(d game.Difficulty) []game.Element {
	if d == game.Easy {
		return Restricted()
	}
	return Full()
}

// Len returns the number of cataloged elements.
func Len() int {
	return len(catalog)
}

// ByName finds an element by case-insensitive name.
func ByName(name string) (game.Element, bool) {
	name = strings.TrimSpace(name)
	for _, el := range catalog {
		if strings.EqualFold(el.Name, name) {
			return el, true
		}
	}
	return game.Element{}, false
}

// ByAtomicNumber finds an element by atomic number.
func ByAtomicNumber(z int) (game.Element, bool) {
	if z < 1 || z > len(catalog) {
		return game.Element{}, false
	}
	return catalog[z-1], true
}

// Symbols returns every symbol in catalog order. Used for display scrambling.
func Symbols() []string {
	out := make([]string, len(catalog))
	for i, el := range catalog {
		out[i] = el.Symbol
	}
	return out
}

// Validate checks that the catalog is contiguous from 1 with unique names
// and symbols.
func Validate() error {
	names := make(map[string]bool, len(catalog))
	symbols := make(map[string]bool, len(catalog))
	for i, el := range catalog {
		if el.AtomicNumber != i+1 {
			return fmt.Errorf("element %q: atomic number %d at position %d", el.Name, el.AtomicNumber, i+1)
		}
		key := strings.ToLower(el.Name)
		if names[key] {
			return fmt.Errorf("duplicate element name %q", el.Name)
		}
		names[key] = true
		if symbols[el.Symbol] {
			return fmt.Errorf("duplicate element symbol %q", el.Symbol)
		}
		symbols[el.Symbol] = true
	}
	return nil
}
