// Package coords runs the coordinate calculation: it reads an observation
// file and a navigation file and uploads both in one request.
package coords

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/simurg/simurg-desktop/internal/api"
	"github.com/simurg/simurg-desktop/internal/form"
	"github.com/simurg/simurg-desktop/internal/model"
)

// ErrCalculationFailed wraps every failure after validation: unreadable
// files, transport errors and non-success responses alike
var ErrCalculationFailed = errors.New("coordinate calculation failed")

// Service performs coordinate calculations against the API
type Service struct {
	api api.CoordinatesAPI
	log logrus.FieldLogger
}

// NewService creates a coordinate service
func NewService(client api.CoordinatesAPI, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{api: client, log: log}
}

// Calculate validates the form, reads both files and issues exactly one
// upload. Validation errors are returned as form.ValidationErrors.
func (s *Service) Calculate(ctx context.Context, f form.Coordinates) (model.CoordinatesResult, error) {
	if err := f.Validate(); err != nil {
		return model.CoordinatesResult{}, err
	}

	var obs, nav api.Upload
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		obs, err = readUpload(gctx, f.ObsFile)
		return err
	})
	g.Go(func() (err error) {
		nav, err = readUpload(gctx, f.NavFile)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.WithError(err).Warn("Reading coordinate files failed")
		return model.CoordinatesResult{}, fmt.Errorf("%w: %w", ErrCalculationFailed, err)
	}

	log := s.log.WithFields(logrus.Fields{"obs": obs.FileName, "nav": nav.FileName})
	log.Debug("Uploading coordinate files")

	result, err := s.api.CalculateCoordinates(ctx, obs, nav)
	if err != nil {
		log.WithError(err).Warn("Coordinate calculation failed")
		return model.CoordinatesResult{}, fmt.Errorf("%w: %w", ErrCalculationFailed, err)
	}

	log.WithField("valid", result.Valid).Info("Coordinates calculated")
	return result, nil
}

func readUpload(ctx context.Context, path string) (api.Upload, error) {
	if err := ctx.Err(); err != nil {
		return api.Upload{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return api.Upload{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return api.Upload{FileName: filepath.Base(path), Content: bytes.NewReader(data)}, nil
}

// DescribeFile returns "name (size)" for a picked file, or just the name when
// it cannot be read
func DescribeFile(path string) string {
	name := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, humanize.Bytes(uint64(info.Size())))
}
