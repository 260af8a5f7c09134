package model

import (
	"path/filepath"
	"time"
)

// ArtifactStatus represents the state of an artifact download
type ArtifactStatus string

const (
	ArtifactPending     ArtifactStatus = "pending"
	ArtifactDownloading ArtifactStatus = "downloading"
	ArtifactCompleted   ArtifactStatus = "completed"
	ArtifactError       ArtifactStatus = "error"
)

// IsFinished returns true if the download reached a terminal state
func (s ArtifactStatus) IsFinished() bool {
	return s == ArtifactCompleted || s == ArtifactError
}

// ArtifactTask is one download of a finished job's artifact to disk
type ArtifactTask struct {
	ID         string
	RequestID  string
	Kind       DownloadKind
	FileName   string // name the artifact is saved under
	Status     ArtifactStatus
	OutputPath string // path of the saved file
	Size       int64  // bytes written
	LastError  string
	StartedAt  time.Time
	FinishedAt time.Time
}

// ArtifactFileName returns the name an artifact of a job is saved under
func ArtifactFileName(requestID string, kind DownloadKind) string {
	return requestID + "." + kind.Extension()
}

// DisplayName returns the saved file name, or the planned one before saving
func (t *ArtifactTask) DisplayName() string {
	if t.OutputPath != "" {
		return filepath.Base(t.OutputPath)
	}
	return t.FileName
}
