package ui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/simurg/simurg-desktop/internal/model"
)

func TestSinglePlotForm_Submit(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	var got *model.SinglePlotInput
	f := NewSinglePlotForm(loc, func(in model.SinglePlotInput) { got = &in })

	f.DateEntry.SetText("2024-03-01")
	f.TimeEntry.SetText("12:30:00")
	f.NameEntry.SetText("storm")
	test.Tap(f.SubmitButton())

	if got == nil {
		t.Fatal("Expected submit callback")
	}
	if got.Timestamp != "2024-03-01T12:30:00" || got.FileName != "storm" {
		t.Errorf("Unexpected input %+v", *got)
	}
	if f.ErrorText() != "" {
		t.Errorf("Expected no error text, got %q", f.ErrorText())
	}
}

func TestSinglePlotForm_MissingFields(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	called := false
	f := NewSinglePlotForm(loc, func(model.SinglePlotInput) { called = true })
	f.DateEntry.SetText("2024-03-01")
	test.Tap(f.SubmitButton())

	if called {
		t.Error("Submit must not fire with missing fields")
	}
	if !strings.Contains(f.ErrorText(), "Time") || strings.Contains(f.ErrorText(), "Date") {
		t.Errorf("Expected only Time reported, got %q", f.ErrorText())
	}
}

func TestArchiveAnimationForm_Submit(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	var got *model.ArchiveAnimationInput
	f := NewArchiveAnimationForm(loc, func(in model.ArchiveAnimationInput) { got = &in })

	f.StartDateEntry.SetText("2024-03-01")
	f.StartTimeEntry.SetText("00:00:00")
	f.EndTimeEntry.SetText("06:00:00")
	f.IntervalEntry.SetText("300")
	test.Tap(f.SubmitButton())

	if got == nil {
		t.Fatal("Expected submit callback")
	}
	if got.StartTime != "2024-03-01T00:00:00" || got.EndTime != "2024-03-01T06:00:00" || got.IntervalSeconds != 300 {
		t.Errorf("Unexpected input %+v", *got)
	}
}

func TestArchiveAnimationForm_BadInterval(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	called := false
	f := NewArchiveAnimationForm(loc, func(model.ArchiveAnimationInput) { called = true })
	f.StartDateEntry.SetText("2024-03-01")
	f.StartTimeEntry.SetText("00:00:00")
	f.EndTimeEntry.SetText("06:00:00")
	f.IntervalEntry.SetText("soon")
	test.Tap(f.SubmitButton())

	if called {
		t.Error("Submit must not fire with an invalid interval")
	}
	if !strings.Contains(f.ErrorText(), "Interval Seconds") {
		t.Errorf("Expected interval error, got %q", f.ErrorText())
	}
}

func TestComboSelection_Select(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()
	combos := []model.Combo{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	var selected string
	cs := NewComboSelection(loc, combos, "", func(c model.Combo) { selected = c.ID })
	test.Tap(cs.Button("b"))

	if selected != "b" {
		t.Errorf("Expected combo b, got %q", selected)
	}
	if cs.Button("missing") != nil {
		t.Error("Expected no button for unknown combo")
	}
}

func TestTypeSelection_Select(t *testing.T) {
	test.NewApp()
	loc := NewLocalization()

	var selected []model.FormType
	ts := NewTypeSelection(loc, func(f model.FormType) { selected = append(selected, f) })
	ts.Selector().SetSelected("Archive/Animation")
	ts.Selector().SetSelected("Single")
	ts.Selector().ClearSelected()

	expected := []model.FormType{model.FormArchiveAnimation, model.FormSinglePlot, model.FormNone}
	if len(selected) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, selected)
	}
	for i := range expected {
		if selected[i] != expected[i] {
			t.Errorf("Selection %d: expected %s, got %s", i, expected[i], selected[i])
		}
	}
}
