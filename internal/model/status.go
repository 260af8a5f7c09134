package model

// FormType represents which input form the dashboard currently shows
type FormType string

const (
	// FormNone means no form is shown (selection step)
	FormNone FormType = "none"

	// FormSinglePlot is the single plot form
	FormSinglePlot FormType = "singlePlot"

	// FormArchiveAnimation is the archive/animation form
	FormArchiveAnimation FormType = "archiveAnimation"
)

// ParseFormType maps a selection value to a FormType; unknown or empty values map to FormNone
func ParseFormType(value string) FormType {
	switch FormType(value) {
	case FormSinglePlot:
		return FormSinglePlot
	case FormArchiveAnimation:
		return FormArchiveAnimation
	default:
		return FormNone
	}
}

// String returns the string representation of FormType
func (ft FormType) String() string {
	return string(ft)
}

// IsJobForm returns true if the form submits a job (i.e. it is not FormNone)
func (ft FormType) IsJobForm() bool {
	return ft == FormSinglePlot || ft == FormArchiveAnimation
}

// DownloadKind selects which artifact of a finished job to fetch
type DownloadKind string

const (
	// DownloadResult is the primary rendered image of a single plot job
	DownloadResult DownloadKind = "result"

	// DownloadImages is the zipped image bundle of an archive job
	DownloadImages DownloadKind = "images"

	// DownloadAnimation is the animation of an archive job
	DownloadAnimation DownloadKind = "animation"
)

// Extension returns the file extension used when saving the artifact
func (dk DownloadKind) Extension() string {
	switch dk {
	case DownloadImages:
		return "zip"
	case DownloadAnimation:
		return "gif"
	default:
		return "png"
	}
}

// IsValid reports whether the kind is one of the known artifacts
func (dk DownloadKind) IsValid() bool {
	return dk == DownloadResult || dk == DownloadImages || dk == DownloadAnimation
}

// DownloadKindsFor returns the artifacts offered for a finished job of the given form
func DownloadKindsFor(ft FormType) []DownloadKind {
	switch ft {
	case FormSinglePlot:
		return []DownloadKind{DownloadResult}
	case FormArchiveAnimation:
		return []DownloadKind{DownloadImages, DownloadAnimation}
	default:
		return nil
	}
}
