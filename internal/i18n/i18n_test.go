package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New("en", nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tr
}

func TestLabel(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		lang     string
		id       string
		fallback string
		want     string
	}{
		{"en", "topic.addition", "x", "Addition"},
		{"es", "topic.addition", "x", "Suma"},
		{"es-MX,es;q=0.9", "hint.make-ten", "x", "Formar diez"},
		{"fr", "topic.division", "x", "Division"},
		{"es", "topic.fractions", "Fractions", "Fractions"},
	}
	for _, tt := range tests {
		got := tr.Localizer(tt.lang).Label(tt.id, tt.fallback)
		if got != tt.want {
			t.Errorf("Label(%q, %q) = %q, want %q", tt.lang, tt.id, got, tt.want)
		}
	}
}

func TestDomainHelpers(t *testing.T) {
	loc := newTranslator(t).Localizer("es")
	if got := loc.TopicName("multiplication", "Multiplication"); got != "Multiplicación" {
		t.Errorf("TopicName = %q", got)
	}
	if got := loc.HintTitle("count", "Count On"); got != "Contar hacia adelante" {
		t.Errorf("HintTitle = %q", got)
	}
	if got := loc.AchievementName("speed-demon", "Speed Demon"); got != "Rayo veloz" {
		t.Errorf("AchievementName = %q", got)
	}
}

func TestPlural(t *testing.T) {
	loc := newTranslator(t).Localizer("en")
	if got := loc.Plural("problemsSolved", 1, "{{.Count}} problem solved", "{{.Count}} problems solved"); got != "1 problem solved" {
		t.Errorf("Plural(1) = %q", got)
	}
	if got := loc.Plural("problemsSolved", 5, "{{.Count}} problem solved", "{{.Count}} problems solved"); got != "5 problems solved" {
		t.Errorf("Plural(5) = %q", got)
	}

	var nilLoc *Localizer
	if got := nilLoc.Plural("problemsSolved", 2, "{{.Count}} problem", "{{.Count}} problems"); got != "2 problems" {
		t.Errorf("nil Plural = %q", got)
	}
}

func TestNilLocalizerFallsBack(t *testing.T) {
	if got := T(context.Background(), "topic.addition", "Addition"); got != "Addition" {
		t.Errorf("T without localizer = %q", got)
	}
}

func TestMiddleware(t *testing.T) {
	tr := newTranslator(t)
	var got string
	h := tr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "topic.subtraction", "Subtraction")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "es")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "Resta" {
		t.Errorf("translated = %q, want Resta", got)
	}
}

func TestNew_BadLanguage(t *testing.T) {
	if _, err := New("!!", nil); err == nil {
		t.Error("expected error for invalid language tag")
	}
}
