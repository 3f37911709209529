package i18n

import "testing"

func TestKnownKeys(t *testing.T) {
	tests := []struct {
		key  string
		vars []any
		want string
	}{
		{"INSUFFICIENT_DATA", nil, "Dati insufficienti per questa categoria."},
		{"SYMBOL_CLUE", []any{"Fe"}, "Simbolo Chimico: Fe"},
		{"ATOMIC_NUMBER_CLUE", []any{26}, "Numero Atomico: 26"},
		{"BADGE_MENDELEEV", nil, "Novello Mendeleev"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := T(tt.key, tt.vars...); got != tt.want {
				t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestUnknownKeyPassesThrough(t *testing.T) {
	if got := T("NOT_A_KEY"); got != "NOT_A_KEY" {
		t.Errorf("T(NOT_A_KEY) = %q", got)
	}
}

func TestNoVarsLeavesTextVerbatim(t *testing.T) {
	if got := T("100%d"); got != "100%d" {
		t.Errorf("T(100%%d) = %q, want verbatim", got)
	}
}
