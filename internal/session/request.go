package session

import (
	"encoding/json"
	"fmt"

	"github.com/simurg/simurg-desktop/internal/model"
)

// defaultResultName is sent to the result endpoint when neither the request
// nor the combo names the file
const defaultResultName = "result"

// JobRequest is the request built for one submission: a plot request for a
// single plot job, or an archive request for an archive/animation job
type JobRequest struct {
	Form    model.FormType
	Plot    model.GeneratePlotRequest
	Archive model.ArchiveAnimationRequest
}

// PlotRequest returns the plot request the job renders
func (r *JobRequest) PlotRequest() model.GeneratePlotRequest {
	if r.Form == model.FormArchiveAnimation {
		return r.Archive.PlotRequest
	}
	return r.Plot
}

// FileName returns the file_name of the request
func (r *JobRequest) FileName() string {
	return r.PlotRequest().FileName
}

// MarshalJSON renders the request body as displayed after submission
func (r *JobRequest) MarshalJSON() ([]byte, error) {
	if r.Form == model.FormArchiveAnimation {
		return json.Marshal(r.Archive)
	}
	return json.Marshal(struct {
		PlotRequest model.GeneratePlotRequest `json:"plot_request"`
	}{r.Plot})
}

// BuildRequest clones the combo's skeleton, sets file_name to the submitted
// name and overlays the submitted timestamp on every plot entry. Archive jobs
// use their start time as the plot timestamp.
func BuildRequest(combo model.Combo, input model.FormInput) (*JobRequest, error) {
	switch in := input.(type) {
	case model.SinglePlotInput:
		return &JobRequest{
			Form: model.FormSinglePlot,
			Plot: overlay(combo, in.FileName, in.Timestamp),
		}, nil

	case model.ArchiveAnimationInput:
		return &JobRequest{
			Form: model.FormArchiveAnimation,
			Archive: model.ArchiveAnimationRequest{
				StartTime:       in.StartTime,
				EndTime:         in.EndTime,
				IntervalSeconds: in.IntervalSeconds,
				PlotRequest:     overlay(combo, in.FileName, in.StartTime),
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func overlay(combo model.Combo, fileName, timestamp string) model.GeneratePlotRequest {
	plot := combo.RequestSkeleton.PlotRequest.Clone()
	plot.FileName = fileName
	for i := range plot.Plots {
		plot.Plots[i].Timestamp = timestamp
	}
	return plot
}

// resultName picks the file name passed to the result endpoint
func resultName(s State) string {
	if s.Request != nil && s.Request.FileName() != "" {
		return s.Request.FileName()
	}
	if s.Combo != nil && s.Combo.RequestSkeleton.PlotRequest.FileName != "" {
		return s.Combo.RequestSkeleton.PlotRequest.FileName
	}
	return defaultResultName
}
