package download

import (
	"context"

	"github.com/simurg/simurg-desktop/internal/model"
)

// Fetcher retrieves artifact bytes from the plotting API
type Fetcher interface {
	DownloadResult(ctx context.Context, requestID, filename string) ([]byte, error)
	DownloadImages(ctx context.Context, requestID string) ([]byte, error)
	DownloadAnimation(ctx context.Context, requestID string) ([]byte, error)
}

// Downloader defines the interface for the artifact download service.
type Downloader interface {
	SetUpdateCallback(func(model.ArtifactTask))

	// Download fetches one artifact of a job and saves it as <requestID>.<ext>.
	// resultName is the file name passed to the result endpoint.
	Download(ctx context.Context, requestID string, kind model.DownloadKind, resultName string) (model.ArtifactTask, error)

	GetTask(id string) (model.ArtifactTask, bool)
	GetAllTasks() []model.ArtifactTask
	RemoveTask(id string) error
	ClearFinished() int

	// SetDownloadDirectory sets the directory artifacts are saved to
	SetDownloadDirectory(dir string)
	DownloadDirectory() string
}
