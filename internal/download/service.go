package download

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/simurg/simurg-desktop/internal/model"
	"github.com/simurg/simurg-desktop/internal/platform"
)

var (
	// ErrNoRequestID is returned when downloading without a job handle
	ErrNoRequestID = errors.New("no request id")

	// ErrUnknownKind is returned for an unsupported artifact kind
	ErrUnknownKind = errors.New("unknown download kind")

	// ErrTaskNotFound is returned for an unknown task id
	ErrTaskNotFound = errors.New("task not found")
)

// Service handles artifact downloads
type Service struct {
	fetcher     Fetcher
	tasks       map[string]*model.ArtifactTask
	tasksMutex  sync.RWMutex
	downloadDir string
	onUpdate    func(model.ArtifactTask) // callback for UI updates
	log         logrus.FieldLogger
}

var _ Downloader = (*Service)(nil)

// NewService creates a new download service
func NewService(fetcher Fetcher, downloadDir string, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		fetcher:     fetcher,
		tasks:       make(map[string]*model.ArtifactTask),
		downloadDir: downloadDir,
		log:         log,
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.ArtifactTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// SetDownloadDirectory sets the download directory
func (s *Service) SetDownloadDirectory(dir string) {
	s.tasksMutex.Lock()
	s.downloadDir = dir
	s.tasksMutex.Unlock()
}

// DownloadDirectory returns the current download directory
func (s *Service) DownloadDirectory() string {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	return s.downloadDir
}

// Download fetches the artifact and saves it. The returned task reflects the
// final state even when an error is returned.
func (s *Service) Download(ctx context.Context, requestID string, kind model.DownloadKind, resultName string) (model.ArtifactTask, error) {
	if requestID == "" {
		return model.ArtifactTask{}, ErrNoRequestID
	}
	if !kind.IsValid() {
		return model.ArtifactTask{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	task := &model.ArtifactTask{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Kind:      kind,
		FileName:  model.ArtifactFileName(requestID, kind),
		Status:    model.ArtifactPending,
		StartedAt: time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	dir := s.downloadDir
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	log := s.log.WithFields(logrus.Fields{"request_id": requestID, "kind": kind})

	s.setStatus(task, model.ArtifactDownloading)
	data, err := s.fetch(ctx, task, resultName)
	if err != nil {
		log.WithError(err).Warn("Artifact fetch failed")
		return s.fail(task, fmt.Errorf("fetch %s: %w", kind, err))
	}

	path, err := platform.SaveFile(dir, task.FileName, data)
	if err != nil {
		log.WithError(err).Warn("Artifact save failed")
		return s.fail(task, fmt.Errorf("save %s: %w", kind, err))
	}

	s.tasksMutex.Lock()
	task.Status = model.ArtifactCompleted
	task.OutputPath = path
	task.Size = int64(len(data))
	task.FinishedAt = time.Now()
	final := *task
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	log.WithFields(logrus.Fields{"path": path, "bytes": final.Size}).Info("Artifact saved")
	return final, nil
}

func (s *Service) fetch(ctx context.Context, task *model.ArtifactTask, resultName string) ([]byte, error) {
	switch task.Kind {
	case model.DownloadImages:
		return s.fetcher.DownloadImages(ctx, task.RequestID)
	case model.DownloadAnimation:
		return s.fetcher.DownloadAnimation(ctx, task.RequestID)
	default:
		return s.fetcher.DownloadResult(ctx, task.RequestID, resultName)
	}
}

// fail marks the task as failed and returns its final state with err
func (s *Service) fail(task *model.ArtifactTask, err error) (model.ArtifactTask, error) {
	s.tasksMutex.Lock()
	task.Status = model.ArtifactError
	task.LastError = err.Error()
	task.FinishedAt = time.Now()
	final := *task
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
	return final, err
}

func (s *Service) setStatus(task *model.ArtifactTask, status model.ArtifactStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// GetTask returns a task by ID
func (s *Service) GetTask(id string) (model.ArtifactTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.ArtifactTask{}, false
	}
	return *task, true
}

// GetAllTasks returns all tasks, oldest first
func (s *Service) GetAllTasks() []model.ArtifactTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]model.ArtifactTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// RemoveTask forgets a finished task. The saved file is kept.
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if !task.Status.IsFinished() {
		return fmt.Errorf("task is not finished: %s", task.Status)
	}
	delete(s.tasks, id)
	return nil
}

// ClearFinished removes every finished task and returns how many were removed
func (s *Service) ClearFinished() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	removed := 0
	for id, task := range s.tasks {
		if task.Status.IsFinished() {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.ArtifactTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(snapshot)
	}
}
