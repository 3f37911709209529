package kb

import (
	"regexp"
	"strings"
	"testing"

	"github.com/abhisek/periodica/internal/elements"
)

const header = "Elemento,Z,Simbolo,Epoca scoperta,Origine del nome,Caratteristiche fisiche,Caratteristiche chimiche,Diffusione e sfruttamento,Utilizzo,Curiosità I,Curiosità II"

func TestParseQuotedFields(t *testing.T) {
	tests := []struct {
		name  string
		cell  string
		field Field
		want  string
	}{
		{"embedded comma", `"Used in, among other things, glass"`, Usage, "Used in, among other things, glass"},
		{"doubled quote", `"He said ""hi"""`, Usage, `He said "hi"`},
		{"embedded newline", "\"first line\nsecond line\"", Usage, "first line\nsecond line"},
		{"whitespace trimmed", `   padded   `, Usage, "padded"},
		{"quote toggles mid field", `a"b,c"d`, Usage, "ab,cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := header + "\nFosforo,15,P,,,,,," + tt.cell + ",,"
			recs := Parse(raw)
			if len(recs) != 1 {
				t.Fatalf("got %d records, want 1", len(recs))
			}
			if got := recs[0].Text(tt.field); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseRecordIdentity(t *testing.T) {
	raw := header + "\r\nFosforo,15,P,Scoperto nel 1669.,Dal greco.,,,,,,\r\n"
	recs := Parse(raw)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	r := recs[0]
	if r.Name != "Fosforo" || r.Symbol != "P" || r.AtomicNumber != 15 {
		t.Errorf("identity = %q %q %d", r.Name, r.Symbol, r.AtomicNumber)
	}
	if got := r.Text(DiscoveryEra); got != "Scoperto nel 1669." {
		t.Errorf("DiscoveryEra = %q", got)
	}
	if got := r.Text(NameOrigin); got != "Dal greco." {
		t.Errorf("NameOrigin = %q", got)
	}
	if got := r.Text(TriviaTwo); got != "" {
		t.Errorf("TriviaTwo = %q, want empty", got)
	}
}

func TestParseDropsShortRows(t *testing.T) {
	raw := header + "\nsolo\n\nFerro,26,Fe\n"
	recs := Parse(raw)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Name != "Ferro" {
		t.Errorf("Name = %q, want Ferro", recs[0].Name)
	}
}

func TestParseMissingHeader(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n", "\r\n"} {
		if recs := Parse(raw); len(recs) != 0 {
			t.Errorf("Parse(%q) = %d records, want 0", raw, len(recs))
		}
	}
}

func TestParseUnknownColumnsIgnored(t *testing.T) {
	raw := "Elemento,Colore,Simbolo\nRame,rosso,Cu"
	recs := Parse(raw)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Symbol != "Cu" {
		t.Errorf("Symbol = %q, want Cu", recs[0].Symbol)
	}
	if recs[0].AtomicNumber != 0 {
		t.Errorf("AtomicNumber = %d, want 0", recs[0].AtomicNumber)
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	k := New(Parse(header + "\nOssigeno,8,O,,,,,,,,"))
	for _, name := range []string{"Ossigeno", "ossigeno", "OSSIGENO"} {
		if _, ok := k.Lookup(name); !ok {
			t.Errorf("Lookup(%q) missed", name)
		}
	}
	if _, ok := k.Lookup("Ossigen"); ok {
		t.Error("Lookup must be an exact match")
	}

	var empty *KnowledgeBase
	if _, ok := empty.Lookup("Ossigeno"); ok {
		t.Error("nil knowledge base must miss")
	}
	if New(nil).Len() != 0 {
		t.Error("empty knowledge base should have no records")
	}
}

func TestDefaultCoversCatalog(t *testing.T) {
	k := Default()
	if k.Len() != elements.Len() {
		t.Errorf("Default().Len() = %d, want %d", k.Len(), elements.Len())
	}
	if err := Validate(k, elements.Full()); err != nil {
		t.Fatal(err)
	}
}

func TestValidateReportsMissing(t *testing.T) {
	err := Validate(New(nil), elements.Restricted()[:2])
	if err == nil {
		t.Fatal("expected an error for an empty knowledge base")
	}
	if !strings.Contains(err.Error(), "Idrogeno: no record") {
		t.Errorf("error = %v", err)
	}
}

func TestDefaultTextsAvoidOwnName(t *testing.T) {
	for _, rec := range Default().Records() {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(rec.Name) + `\b`)
		for f := Field(0); f < FieldCount; f++ {
			if re.MatchString(rec.Text(f)) {
				t.Errorf("%s: field %v names the element: %q", rec.Name, f, rec.Text(f))
			}
		}
	}
}

func TestDefaultTextsFilled(t *testing.T) {
	for _, rec := range Default().Records() {
		for f := Field(0); f < FieldCount; f++ {
			if strings.TrimSpace(rec.Text(f)) == "" {
				t.Errorf("%s: field %v is empty", rec.Name, f)
			}
		}
	}
}
