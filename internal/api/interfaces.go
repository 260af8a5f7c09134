package api

import (
	"context"
	"io"

	"github.com/simurg/simurg-desktop/internal/model"
)

// PlotAPI is the plotting half of the remote API used by the dashboard.
type PlotAPI interface {
	GeneratePlot(ctx context.Context, req model.GeneratePlotRequest) (model.GenerateResponse, error)
	GenerateArchiveAndAnimation(ctx context.Context, req model.ArchiveAnimationRequest) (model.GenerateResponse, error)
	GetRequestProgress(ctx context.Context, requestID string) (model.ProgressResponse, error)
	GetArchiveProgress(ctx context.Context, requestID string) (model.ProgressResponse, error)
	DownloadResult(ctx context.Context, requestID, filename string) ([]byte, error)
	DownloadImages(ctx context.Context, requestID string) ([]byte, error)
	DownloadAnimation(ctx context.Context, requestID string) ([]byte, error)
}

// CoordinatesAPI is the coordinate calculation endpoint.
type CoordinatesAPI interface {
	CalculateCoordinates(ctx context.Context, obs, nav Upload) (model.CoordinatesResult, error)
}

// Upload is one binary part of a multipart request.
type Upload struct {
	FileName string
	Content  io.Reader
}
