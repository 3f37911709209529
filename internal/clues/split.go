package clues

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinUnitLength is the longest fragment that is still discarded.
const MinUnitLength = 5

var sentenceEnd = regexp.MustCompile(`[.?!]\s+`)

// startsSentence reports whether r can open a sentence: an ASCII capital
// or a Latin-1 accented capital.
func startsSentence(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z':
		return true
	case r >= 'À' && r <= 'Ö':
		return true
	case r >= 'Ø' && r <= 'Þ':
		return true
	}
	return false
}

// Split cuts text into standalone clue units. Text is split on newlines
// into blocks, and each block into sentences at a terminator followed by
// whitespace and a capital letter. Fragments of MinUnitLength characters
// or fewer are dropped; a block that yields nothing is kept whole when
// longer than two characters. Every unit ends in a terminator. In paired
// mode consecutive units are joined two by two.
func Split(text string, paired bool) []string {
	var units []string
	for _, line := range strings.Split(text, "\n") {
		block := strings.TrimSpace(line)
		if block == "" {
			continue
		}

		var kept []string
		for _, s := range sentences(block) {
			s = strings.TrimSpace(s)
			if utf8.RuneCountInString(s) > MinUnitLength {
				kept = append(kept, terminate(s))
			}
		}
		if len(kept) == 0 && utf8.RuneCountInString(block) > 2 {
			kept = append(kept, terminate(block))
		}
		units = append(units, kept...)
	}

	if !paired {
		return units
	}
	out := make([]string, 0, (len(units)+1)/2)
	for i := 0; i < len(units); i += 2 {
		if i+1 < len(units) {
			out = append(out, units[i]+" "+units[i+1])
		} else {
			out = append(out, units[i])
		}
	}
	return out
}

// sentences splits a block at each terminator that is followed by
// whitespace and a capital. The terminator at a split point is consumed.
func sentences(block string) []string {
	var out []string
	start := 0
	for _, m := range sentenceEnd.FindAllStringIndex(block, -1) {
		next, _ := utf8.DecodeRuneInString(block[m[1]:])
		if !startsSentence(next) {
			continue
		}
		out = append(out, block[start:m[0]])
		start = m[1]
	}
	return append(out, block[start:])
}

func terminate(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "?") || strings.HasSuffix(s, "!") {
		return s
	}
	return s + "."
}
