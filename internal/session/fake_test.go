package session

import (
	"context"
	"errors"
	"sync"

	"github.com/simurg/simurg-desktop/internal/model"
)

// fakeAPI is an in-memory PlotAPI. Progress values are served in order per
// handle; the last value repeats.
type fakeAPI struct {
	mu sync.Mutex

	plotReqs    []model.GeneratePlotRequest
	archiveReqs []model.ArchiveAnimationRequest
	createErr   error
	onCreate    func()
	nextID      string

	progress      map[string][]model.Progress
	progressErr   error
	requestPolls  int
	archivePolls  int
	inFlight      int
	maxInFlight   int
	block         chan struct{} // when set, progress queries wait on it
	downloadCalls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: "req-1", progress: map[string][]model.Progress{}}
}

func (f *fakeAPI) setProgress(handle string, values ...model.Progress) {
	f.mu.Lock()
	f.progress[handle] = values
	f.mu.Unlock()
}

func (f *fakeAPI) polls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requestPolls, f.archivePolls
}

func (f *fakeAPI) GeneratePlot(_ context.Context, req model.GeneratePlotRequest) (model.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plotReqs = append(f.plotReqs, req)
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return model.GenerateResponse{}, f.createErr
	}
	return model.GenerateResponse{RequestID: f.nextID, Status: "accepted"}, nil
}

func (f *fakeAPI) GenerateArchiveAndAnimation(_ context.Context, req model.ArchiveAnimationRequest) (model.GenerateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archiveReqs = append(f.archiveReqs, req)
	if f.createErr != nil {
		return model.GenerateResponse{}, f.createErr
	}
	return model.GenerateResponse{RequestID: f.nextID, Status: "accepted"}, nil
}

func (f *fakeAPI) GetRequestProgress(ctx context.Context, requestID string) (model.ProgressResponse, error) {
	f.mu.Lock()
	f.requestPolls++
	f.mu.Unlock()
	return f.nextProgress(ctx, requestID)
}

func (f *fakeAPI) GetArchiveProgress(ctx context.Context, requestID string) (model.ProgressResponse, error) {
	f.mu.Lock()
	f.archivePolls++
	f.mu.Unlock()
	return f.nextProgress(ctx, requestID)
}

func (f *fakeAPI) nextProgress(ctx context.Context, requestID string) (model.ProgressResponse, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	block := f.block
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return model.ProgressResponse{}, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.progressErr != nil {
		return model.ProgressResponse{}, f.progressErr
	}
	values := f.progress[requestID]
	if len(values) == 0 {
		return model.ProgressResponse{}, errors.New("unknown request")
	}
	value := values[0]
	if len(values) > 1 {
		f.progress[requestID] = values[1:]
	}
	return model.ProgressResponse{Progress: value}, nil
}

func (f *fakeAPI) DownloadResult(_ context.Context, requestID, filename string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls = append(f.downloadCalls, "result:"+requestID+":"+filename)
	return []byte("png"), nil
}

func (f *fakeAPI) DownloadImages(_ context.Context, requestID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls = append(f.downloadCalls, "images:"+requestID)
	return []byte("zip"), nil
}

func (f *fakeAPI) DownloadAnimation(_ context.Context, requestID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloadCalls = append(f.downloadCalls, "animation:"+requestID)
	return []byte("gif"), nil
}

// fakeSaver records artifact downloads
type fakeSaver struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *fakeSaver) Download(_ context.Context, requestID string, kind model.DownloadKind, resultName string) (model.ArtifactTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, requestID+":"+string(kind)+":"+resultName)
	task := model.ArtifactTask{RequestID: requestID, Kind: kind, FileName: model.ArtifactFileName(requestID, kind)}
	if s.err != nil {
		task.Status = model.ArtifactError
		return task, s.err
	}
	task.Status = model.ArtifactCompleted
	return task, nil
}

func testCombo(plots int) model.Combo {
	combo := model.Combo{
		ID:   "gim",
		Name: "GIM",
		RequestSkeleton: model.RequestSkeleton{PlotRequest: model.GeneratePlotRequest{
			Height: 8, DPI: 100, FileName: "skeleton", NRows: 1, NCols: plots,
		}},
	}
	for i := 0; i < plots; i++ {
		combo.RequestSkeleton.PlotRequest.Plots = append(combo.RequestSkeleton.PlotRequest.Plots, model.PlotRequest{
			Row: 1, Col: i + 1, PlotType: model.PlotTypeGIM, Timestamp: "old",
		})
	}
	return combo
}
