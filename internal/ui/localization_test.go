package ui

import (
	"errors"
	"testing"
)

func TestLocalization_DefaultsToEnglish(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != LangEnglish {
		t.Errorf("Expected en, got %s", l.GetCurrentLanguage())
	}
	if got := l.GetText(KeyGraphGenerator); got != "Graph Generator" {
		t.Errorf("Unexpected text %q", got)
	}
}

func TestLocalization_SetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage(LangRussian)
	if got := l.GetText(KeyCalculate); got != "Рассчитать координаты" {
		t.Errorf("Unexpected russian text %q", got)
	}

	l.SetLanguage("pt")
	if l.GetCurrentLanguage() != LangEnglish {
		t.Errorf("Unsupported language should fall back to en, got %s", l.GetCurrentLanguage())
	}
}

func TestLocalization_System(t *testing.T) {
	tests := []struct {
		detected string
		err      error
		expected string
	}{
		{"ru", nil, LangRussian},
		{"ru-RU", nil, LangRussian},
		{"de", nil, LangEnglish},
		{"", errors.New("no locale"), LangEnglish},
	}

	for _, test := range tests {
		l := NewLocalization()
		l.systemLanguage = func() (string, error) { return test.detected, test.err }
		l.SetLanguage(LangSystem)
		if l.GetCurrentLanguage() != test.expected {
			t.Errorf("System %q: expected %s, got %s", test.detected, test.expected, l.GetCurrentLanguage())
		}
	}
}

func TestLocalization_Format(t *testing.T) {
	l := NewLocalization()

	got := l.Format(KeyRequiredFields, map[string]any{"Fields": "Date, Time"})
	if got != "Please fill in: Date, Time" {
		t.Errorf("Unexpected formatted text %q", got)
	}

	if got := l.GetText("missing_key"); got != "missing_key" {
		t.Errorf("Unknown key should return itself, got %q", got)
	}
}
