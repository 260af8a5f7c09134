package session

import (
	"testing"

	"github.com/simurg/simurg-desktop/internal/model"
)

func activeState() State {
	s := Reduce(NewState(), ComboSelected{Combo: testCombo(2)})
	s = Reduce(s, TypeSelected{Form: model.FormSinglePlot})
	s = Reduce(s, Submitted{Input: model.SinglePlotInput{Timestamp: "t"}, Request: &JobRequest{Form: model.FormSinglePlot}})
	s = Reduce(s, JobStarted{Handle: "req-1"})
	return Reduce(s, ProgressReceived{Handle: "req-1", Progress: 40})
}

func TestReduce_ComboSelectedClearsDownstream(t *testing.T) {
	s := Reduce(activeState(), ComboSelected{Combo: testCombo(1)})

	if s.Combo == nil || s.Combo.PlotCount() != 1 {
		t.Fatalf("Expected new combo, got %+v", s.Combo)
	}
	if s.Form != model.FormNone {
		t.Errorf("Expected form none, got %s", s.Form)
	}
	if s.Result != nil || s.Request != nil || s.Handle != "" || s.HasProgress {
		t.Errorf("Expected downstream state cleared, got %+v", s)
	}
	if !s.ShowTypeSelection() {
		t.Error("Expected type selection to be shown")
	}
}

func TestReduce_ComboIsCopied(t *testing.T) {
	combo := testCombo(1)
	s := Reduce(NewState(), ComboSelected{Combo: combo})
	combo.RequestSkeleton.PlotRequest.Plots[0].Timestamp = "mutated"

	if s.Combo.RequestSkeleton.PlotRequest.Plots[0].Timestamp != "old" {
		t.Error("State must not share plots with the caller")
	}
}

func TestReduce_TypeSelected(t *testing.T) {
	if s := Reduce(NewState(), TypeSelected{Form: model.FormSinglePlot}); s.Form != model.FormNone {
		t.Errorf("Type selection without combo must be ignored, got %s", s.Form)
	}

	s := Reduce(NewState(), ComboSelected{Combo: testCombo(1)})
	tests := []struct {
		in       model.FormType
		expected model.FormType
	}{
		{model.FormArchiveAnimation, model.FormArchiveAnimation},
		{model.FormSinglePlot, model.FormSinglePlot},
		{"", model.FormNone},
		{"bogus", model.FormNone},
	}
	for _, test := range tests {
		if got := Reduce(s, TypeSelected{Form: test.in}).Form; got != test.expected {
			t.Errorf("TypeSelected(%q) = %s, expected %s", test.in, got, test.expected)
		}
	}
}

func TestReduce_TypeChangeKeepsHandle(t *testing.T) {
	s := Reduce(activeState(), TypeSelected{Form: model.FormArchiveAnimation})
	if s.Handle != "req-1" {
		t.Errorf("Expected handle kept, got %q", s.Handle)
	}
}

func TestReduce_ProgressIgnoresStaleHandle(t *testing.T) {
	s := activeState()

	stale := Reduce(s, ProgressReceived{Handle: "old", Progress: 90})
	if stale.Progress != 40 {
		t.Errorf("Stale progress applied: %d", stale.Progress)
	}

	cleared := Reduce(NewState(), ProgressReceived{Handle: "req-1", Progress: 90})
	if cleared.HasProgress {
		t.Error("Progress without a handle must be ignored")
	}

	clamped := Reduce(s, ProgressReceived{Handle: "req-1", Progress: 150})
	if clamped.Progress != 100 || !clamped.Finished() {
		t.Errorf("Expected clamped terminal progress, got %d", clamped.Progress)
	}
}

func TestReduce_JobStartedResetsProgress(t *testing.T) {
	s := Reduce(activeState(), JobStarted{Handle: "req-2"})
	if s.Handle != "req-2" || s.HasProgress {
		t.Errorf("Expected fresh handle without progress, got %+v", s)
	}

	if s := Reduce(NewState(), JobStarted{Handle: "x"}); s.Handle != "" {
		t.Error("Job without combo must be ignored")
	}
}

func TestReduce_Reset(t *testing.T) {
	s := Reduce(activeState(), ResetRequested{})
	if s.Combo != nil || s.Form != model.FormNone || s.Handle != "" || s.Result != nil {
		t.Errorf("Expected initial state, got %+v", s)
	}
	if !s.ShowComboSelection() {
		t.Error("Expected combo selection after reset")
	}
}

func TestState_Downloads(t *testing.T) {
	s := activeState()
	if len(s.Downloads()) != 0 {
		t.Error("No downloads before 100%")
	}

	s = Reduce(s, ProgressReceived{Handle: "req-1", Progress: 100})
	kinds := s.Downloads()
	if len(kinds) != 1 || kinds[0] != model.DownloadResult {
		t.Errorf("Expected result download, got %v", kinds)
	}

	s = Reduce(s, TypeSelected{Form: model.FormArchiveAnimation})
	kinds = s.Downloads()
	if len(kinds) != 2 || kinds[0] != model.DownloadImages || kinds[1] != model.DownloadAnimation {
		t.Errorf("Expected images and animation, got %v", kinds)
	}
}
