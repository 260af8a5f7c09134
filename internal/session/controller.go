package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/api"
	"github.com/simurg/simurg-desktop/internal/model"
)

var (
	// ErrNoCombo is returned when an action needs a selected combo
	ErrNoCombo = errors.New("no combo selected")

	// ErrFormMismatch is returned when the submitted data belongs to another form
	ErrFormMismatch = errors.New("submitted form does not match the current form")

	// ErrNoActiveJob is returned when downloading without a job handle
	ErrNoActiveJob = errors.New("no active job")

	// ErrUnsupportedInput is returned for an unknown form input type
	ErrUnsupportedInput = errors.New("unsupported form input")

	// ErrClosed is returned after Close
	ErrClosed = errors.New("session closed")
)

// Saver fetches and stores one artifact of a job
type Saver interface {
	Download(ctx context.Context, requestID string, kind model.DownloadKind, resultName string) (model.ArtifactTask, error)
}

// Options configure a Controller
type Options struct {
	PollInterval time.Duration
	Logger       logrus.FieldLogger
}

// Controller owns the dashboard state. All methods are safe for concurrent use;
// observers run on the goroutine that caused the change.
type Controller struct {
	mu        sync.Mutex
	state     State
	epoch     uint64 // bumped on combo selection and reset
	api       api.PlotAPI
	saver     Saver
	poller    *Poller
	token     *PollToken
	observers []func(State)
	closed    bool
	log       logrus.FieldLogger
}

// NewController creates a controller in the initial state
func NewController(client api.PlotAPI, saver Saver, opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Controller{
		state:  NewState(),
		api:    client,
		saver:  saver,
		poller: NewPoller(client, opts.PollInterval, log),
		log:    log,
	}
}

// OnChange registers an observer called with a snapshot after every transition
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Polling reports whether a poll loop is running
func (c *Controller) Polling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == nil {
		return false
	}
	select {
	case <-c.token.Done():
		return false
	default:
		return true
	}
}

// SelectCombo selects a combo and clears the form, result, request, handle
// and progress
func (c *Controller) SelectCombo(combo model.Combo) {
	c.log.WithField("combo", combo.ID).Debug("Combo selected")
	c.apply(ComboSelected{Combo: combo}, true)
}

// SelectType switches the input form; empty or unknown values select none
func (c *Controller) SelectType(form model.FormType) error {
	c.mu.Lock()
	hasCombo := c.state.Combo != nil
	c.mu.Unlock()
	if !hasCombo {
		return ErrNoCombo
	}
	c.apply(TypeSelected{Form: form}, false)
	return nil
}

// Reset clears all state and stops polling
func (c *Controller) Reset() {
	c.log.Debug("Session reset")
	c.apply(ResetRequested{}, true)
}

// Submit builds the job request from the combo and input and creates the job.
// The result and request are recorded even when job creation fails.
func (c *Controller) Submit(ctx context.Context, input model.FormInput) (model.GenerateResponse, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return model.GenerateResponse{}, ErrClosed
	}
	state, epoch := c.state, c.epoch
	c.mu.Unlock()

	if state.Combo == nil {
		return model.GenerateResponse{}, ErrNoCombo
	}
	if input == nil || input.FormType() != state.Form {
		return model.GenerateResponse{}, ErrFormMismatch
	}

	req, err := BuildRequest(*state.Combo, input)
	if err != nil {
		return model.GenerateResponse{}, err
	}
	if !c.applyAt(epoch, Submitted{Input: input, Request: req}) {
		return model.GenerateResponse{}, ErrNoCombo
	}

	log := c.log.WithFields(logrus.Fields{"combo": state.Combo.ID, "form": req.Form})

	var resp model.GenerateResponse
	if req.Form == model.FormArchiveAnimation {
		resp, err = c.api.GenerateArchiveAndAnimation(ctx, req.Archive)
	} else {
		resp, err = c.api.GeneratePlot(ctx, req.Plot)
	}
	if err != nil {
		log.WithError(err).Warn("Job creation failed")
		return resp, fmt.Errorf("create %s job: %w", req.Form, err)
	}
	if resp.RequestID == "" {
		log.Warn("Job created without request id")
		return resp, fmt.Errorf("create %s job: %w", req.Form, api.ErrEmptyRequestID)
	}

	if !c.applyAt(epoch, JobStarted{Handle: resp.RequestID}) {
		log.WithField("request_id", resp.RequestID).Debug("Session changed during submit, job dropped")
		return resp, nil
	}
	log.WithField("request_id", resp.RequestID).Info("Job created")
	return resp, nil
}

// Download fetches one artifact of the active job and saves it as
// <handle>.<ext>. Without a handle nothing is fetched.
func (c *Controller) Download(ctx context.Context, kind model.DownloadKind) (model.ArtifactTask, error) {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state.Handle == "" {
		return model.ArtifactTask{}, ErrNoActiveJob
	}
	if c.saver == nil {
		return model.ArtifactTask{}, fmt.Errorf("download %s: no saver configured", kind)
	}

	task, err := c.saver.Download(ctx, state.Handle, kind, resultName(state))
	if err != nil {
		return task, fmt.Errorf("download %s: %w", kind, err)
	}
	return task, nil
}

// Close stops polling and drops observers
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.token.Cancel()
	c.token = nil
	c.observers = nil
	c.mu.Unlock()
}

// apply reduces ev into the state, reconciles polling and notifies observers.
// newEpoch invalidates in-flight submissions.
func (c *Controller) apply(ev Event, newEpoch bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if newEpoch {
		c.epoch++
	}
	c.commit(ev)
}

// applyAt applies ev only if no combo selection or reset happened since epoch
func (c *Controller) applyAt(epoch uint64, ev Event) bool {
	c.mu.Lock()
	if c.closed || c.epoch != epoch {
		c.mu.Unlock()
		return false
	}
	c.commit(ev)
	return true
}

// commit must be called with mu held; it unlocks before notifying
func (c *Controller) commit(ev Event) {
	c.state = Reduce(c.state, ev)
	c.reconcile()
	snapshot := c.state
	observers := append([]func(State){}, c.observers...)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(snapshot)
	}
}

// reconcile keeps exactly one poll loop keyed by (handle, form)
func (c *Controller) reconcile() {
	handle, form := c.state.Handle, c.state.Form
	if c.token != nil && c.token.Handle == handle && c.token.Form == form {
		return
	}

	c.token.Cancel()
	c.token = c.poller.Start(handle, form, c.report)
}

func (c *Controller) report(handle string, progress model.Progress) {
	c.log.WithFields(logrus.Fields{"request_id": handle, "progress": int(progress)}).Debug("Progress received")
	c.apply(ProgressReceived{Handle: handle, Progress: progress}, false)
}
