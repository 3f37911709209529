// Package kb loads the element knowledge base: one record per element with
// the free-text fields clues are cut from.
package kb

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/periodica/internal/game"
)

//go:embed data/elements.csv
var defaultCSV string

// Field addresses one of the free-text columns of a record.
type Field int

const (
	DiscoveryEra Field = iota
	NameOrigin
	PhysicalTraits
	ChemicalTraits
	Prevalence
	Usage
	TriviaOne
	TriviaTwo

	FieldCount
)

// Column headers of the knowledge base.
const (
	ColumnName         = "Elemento"
	ColumnAtomicNumber = "Z"
	ColumnSymbol       = "Simbolo"
)

var fieldColumns = map[string]Field{
	"Epoca scoperta":            DiscoveryEra,
	"Origine del nome":          NameOrigin,
	"Caratteristiche fisiche":   PhysicalTraits,
	"Caratteristiche chimiche":  ChemicalTraits,
	"Diffusione e sfruttamento": Prevalence,
	"Utilizzo":                  Usage,
	"Curiosità I":               TriviaOne,
	"Curiosità II":              TriviaTwo,
}

func (f Field) String() string {
	for col, v := range fieldColumns {
		if v == f {
			return col
		}
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// Record is the knowledge about one element. Records are never modified
// after parsing.
type Record struct {
	Name         string
	Symbol       string
	AtomicNumber int
	Fields       [FieldCount]string
}

// Text returns the raw text of a field, or "" for an unknown field.
func (r Record) Text(f Field) string {
	if f < 0 || f >= FieldCount {
		return ""
	}
	return r.Fields[f]
}

// Element returns the identity part of the record.
func (r Record) Element() game.Element {
	return game.Element{Name: r.Name, Symbol: r.Symbol, AtomicNumber: r.AtomicNumber}
}

// Parse reads the knowledge base text. The first row is the header and
// maps columns by position. Rows with fewer than two fields are dropped.
// A missing or empty header yields no records.
func Parse(raw string) []Record {
	rows := splitRows(strings.TrimSpace(raw))
	if len(rows) == 0 {
		return nil
	}

	header := rows[0]
	if len(header) == 0 || (len(header) == 1 && header[0] == "") {
		return nil
	}

	var records []Record
	for _, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}
		var rec Record
		for i, col := range header {
			if i >= len(row) {
				break
			}
			val := row[i]
			switch col {
			case ColumnName:
				rec.Name = val
			case ColumnSymbol:
				rec.Symbol = val
			case ColumnAtomicNumber:
				rec.AtomicNumber, _ = strconv.Atoi(val)
			default:
				if f, ok := fieldColumns[col]; ok {
					rec.Fields[f] = val
				}
			}
		}
		records = append(records, rec)
	}
	return records
}

// KnowledgeBase indexes records by lower-cased element name.
type KnowledgeBase struct {
	byName map[string]Record
	order  []string
}

// New builds a KnowledgeBase. Later records with the same name win.
func New(records []Record) *KnowledgeBase {
	kb := &KnowledgeBase{byName: make(map[string]Record, len(records))}
	for _, r := range records {
		key := strings.ToLower(r.Name)
		if _, seen := kb.byName[key]; !seen {
			kb.order = append(kb.order, key)
		}
		kb.byName[key] = r
	}
	return kb
}

// Lookup finds a record by case-insensitive exact name.
func (kb *KnowledgeBase) Lookup(name string) (Record, bool) {
	if kb == nil {
		return Record{}, false
	}
	r, ok := kb.byName[strings.ToLower(name)]
	return r, ok
}

// Len returns the number of records.
func (kb *KnowledgeBase) Len() int {
	if kb == nil {
		return 0
	}
	return len(kb.byName)
}

// Records returns all records in load order.
func (kb *KnowledgeBase) Records() []Record {
	if kb == nil {
		return nil
	}
	out := make([]Record, 0, len(kb.order))
	for _, key := range kb.order {
		out = append(out, kb.byName[key])
	}
	return out
}

var loadDefault = sync.OnceValue(func() *KnowledgeBase {
	return New(Parse(defaultCSV))
})

// Default returns the compiled-in knowledge base, parsed on first use.
func Default() *KnowledgeBase {
	return loadDefault()
}

// Validate reports catalog elements without a matching record, and
// records whose symbol or atomic number disagrees with the catalog.
func Validate(kb *KnowledgeBase, catalog []game.Element) error {
	var problems []string
	for _, el := range catalog {
		rec, ok := kb.Lookup(el.Name)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s: no record", el.Name))
			continue
		}
		if rec.Symbol != el.Symbol {
			problems = append(problems, fmt.Sprintf("%s: symbol %q, catalog has %q", el.Name, rec.Symbol, el.Symbol))
		}
		if rec.AtomicNumber != el.AtomicNumber {
			problems = append(problems, fmt.Sprintf("%s: atomic number %d, catalog has %d", el.Name, rec.AtomicNumber, el.AtomicNumber))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("knowledge base does not match catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}
