package session

import "github.com/simurg/simurg-desktop/internal/model"

// State is a snapshot of the dashboard. Snapshots share the combo and request
// values with the controller and must be treated as read-only.
type State struct {
	Combo       *model.Combo
	Form        model.FormType
	Result      model.FormInput // data emitted by the last submitted form
	Request     *JobRequest     // request built for the last submission
	Handle      string          // request_id of the active job
	Progress    model.Progress
	HasProgress bool // false until the first progress report
}

// NewState returns the initial state: nothing selected
func NewState() State {
	return State{Form: model.FormNone}
}

// ShowComboSelection reports whether the combo grid is the current step
func (s State) ShowComboSelection() bool {
	return s.Combo == nil
}

// ShowTypeSelection reports whether the type selector is the current step
func (s State) ShowTypeSelection() bool {
	return s.Combo != nil && s.Form == model.FormNone
}

// Finished reports whether the active job reported 100%
func (s State) Finished() bool {
	return s.Handle != "" && s.HasProgress && s.Progress.IsTerminal()
}

// Downloads returns the artifacts that can be fetched now
func (s State) Downloads() []model.DownloadKind {
	if s.Result == nil || !s.Finished() {
		return nil
	}
	return model.DownloadKindsFor(s.Form)
}

// Event is a state transition input
type Event interface {
	event()
}

// ComboSelected selects a combo and clears everything downstream of it
type ComboSelected struct{ Combo model.Combo }

// TypeSelected switches the input form
type TypeSelected struct{ Form model.FormType }

// Submitted records the form data and the request built from it
type Submitted struct {
	Input   model.FormInput
	Request *JobRequest
}

// JobStarted stores the handle returned by the API
type JobStarted struct{ Handle string }

// ProgressReceived carries one poll result for a handle
type ProgressReceived struct {
	Handle   string
	Progress model.Progress
}

// ResetRequested returns to the initial state
type ResetRequested struct{}

func (ComboSelected) event()    {}
func (TypeSelected) event()     {}
func (Submitted) event()        {}
func (JobStarted) event()       {}
func (ProgressReceived) event() {}
func (ResetRequested) event()   {}

// Reduce applies ev to s and returns the new state. It has no side effects.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case ComboSelected:
		combo := e.Combo.Clone()
		return State{Combo: &combo, Form: model.FormNone}

	case TypeSelected:
		if s.Combo == nil {
			return s
		}
		s.Form = model.ParseFormType(string(e.Form))
		return s

	case Submitted:
		if s.Combo == nil {
			return s
		}
		s.Result = e.Input
		s.Request = e.Request
		return s

	case JobStarted:
		if s.Combo == nil || e.Handle == "" {
			return s
		}
		s.Handle = e.Handle
		s.Progress = 0
		s.HasProgress = false
		return s

	case ProgressReceived:
		// results for a replaced or cleared handle are stale
		if e.Handle == "" || e.Handle != s.Handle {
			return s
		}
		s.Progress = e.Progress.Clamp()
		s.HasProgress = true
		return s

	case ResetRequested:
		return NewState()
	}
	return s
}
