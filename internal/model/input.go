package model

// FormInput is the plain data object emitted by a submitted job form
type FormInput interface {
	FormType() FormType
}

// SinglePlotInput is emitted by the single plot form
type SinglePlotInput struct {
	Timestamp string `json:"timestamp"`
	FileName  string `json:"fileName"`
}

// FormType returns FormSinglePlot
func (SinglePlotInput) FormType() FormType { return FormSinglePlot }

// ArchiveAnimationInput is emitted by the archive/animation form
type ArchiveAnimationInput struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	IntervalSeconds int    `json:"interval_seconds"`
	FileName        string `json:"fileName"`
}

// FormType returns FormArchiveAnimation
func (ArchiveAnimationInput) FormType() FormType { return FormArchiveAnimation }
