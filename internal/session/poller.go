package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/api"
	"github.com/simurg/simurg-desktop/internal/model"
)

// DefaultPollInterval is the cadence of progress queries
const DefaultPollInterval = 5 * time.Second

// ProgressReporter receives each progress value read for a handle
type ProgressReporter func(handle string, progress model.Progress)

// Poller queries job progress on a fixed interval
type Poller struct {
	api      api.PlotAPI
	interval time.Duration
	log      logrus.FieldLogger
}

// NewPoller creates a poller; a non-positive interval uses DefaultPollInterval
func NewPoller(client api.PlotAPI, interval time.Duration, log logrus.FieldLogger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{api: client, interval: interval, log: log}
}

// Interval returns the polling cadence
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// PollToken controls one running poll loop
type PollToken struct {
	Handle string
	Form   model.FormType

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Cancel stops the loop. An in-flight query is aborted and its result dropped.
// Safe to call on a nil token and more than once.
func (t *PollToken) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(t.cancel)
}

// Done is closed when the loop has exited
func (t *PollToken) Done() <-chan struct{} {
	return t.done
}

// Start polls progress for handle until it reaches 100, a query fails or the
// token is cancelled. The first query happens one interval after Start.
// Returns nil when there is nothing to poll.
func (p *Poller) Start(handle string, form model.FormType, report ProgressReporter) *PollToken {
	if handle == "" || !form.IsJobForm() {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	token := &PollToken{
		Handle: handle,
		Form:   form,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go p.run(ctx, token, report)
	return token
}

func (p *Poller) run(ctx context.Context, token *PollToken, report ProgressReporter) {
	defer close(token.done)
	defer token.Cancel()

	log := p.log.WithFields(logrus.Fields{"request_id": token.Handle, "form": token.Form})
	log.Debug("Progress polling started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Progress polling cancelled")
			return
		case <-ticker.C:
		}
		if ctx.Err() != nil {
			return
		}

		progress, err := p.query(ctx, token)
		if ctx.Err() != nil {
			log.Debug("Progress polling cancelled")
			return
		}
		if err != nil {
			log.WithError(err).Warn("Progress query failed, polling stopped")
			return
		}

		report(token.Handle, progress)
		if progress.IsTerminal() {
			log.Debug("Job finished, polling stopped")
			return
		}

		// drop a tick that fired while the query was in flight
		select {
		case <-ticker.C:
		default:
		}
	}
}

func (p *Poller) query(ctx context.Context, token *PollToken) (model.Progress, error) {
	var (
		resp model.ProgressResponse
		err  error
	)
	if token.Form == model.FormArchiveAnimation {
		resp, err = p.api.GetArchiveProgress(ctx, token.Handle)
	} else {
		resp, err = p.api.GetRequestProgress(ctx, token.Handle)
	}
	if err != nil {
		return 0, err
	}
	return resp.Progress, nil
}
