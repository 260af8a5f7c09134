package model

import "testing"

func TestProgress_Clamp(t *testing.T) {
	tests := []struct {
		value    Progress
		expected Progress
	}{
		{-5, 0},
		{0, 0},
		{42, 42},
		{100, 100},
		{130, 100},
	}

	for _, test := range tests {
		result := test.value.Clamp()
		if result != test.expected {
			t.Errorf("Progress(%d).Clamp() = %d, expected %d", test.value, result, test.expected)
		}
	}
}

func TestProgress_IsTerminal(t *testing.T) {
	if Progress(99).IsTerminal() {
		t.Error("99 should not be terminal")
	}
	if !Progress(100).IsTerminal() {
		t.Error("100 should be terminal")
	}
}

func TestProgress_FractionAndString(t *testing.T) {
	p := Progress(25)
	if p.Fraction() != 0.25 {
		t.Errorf("Fraction() = %v, expected 0.25", p.Fraction())
	}
	if p.String() != "25%" {
		t.Errorf("String() = %s, expected 25%%", p.String())
	}
}
