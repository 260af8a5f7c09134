// Package form holds the values collected by the input forms and their
// validation. Validation checks required fields only: there are no
// cross-field or semantic checks (an end time before the start time passes).
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/simurg/simurg-desktop/internal/model"
)

// File extensions offered by the coordinate form's file pickers
const (
	ObsExtension = ".17o"
	NavExtension = ".17n"
)

// timestampSeparator joins a date and a time into an ISO-like timestamp
const timestampSeparator = "T"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// FieldError describes one failed field
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Tag)
}

// ValidationErrors lists every failed field of a form
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "invalid form: " + strings.Join(parts, ", ")
}

// Has reports whether field failed validation
func (v ValidationErrors) Has(field string) bool {
	for _, e := range v {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Validate runs the struct tags of a form value
func Validate(value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}

// SinglePlot holds the single plot form fields
type SinglePlot struct {
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"required"`
	FileName string `json:"fileName"`
}

// Input validates the form and returns the data object it emits
func (f SinglePlot) Input() (model.SinglePlotInput, error) {
	f = f.trimmed()
	if err := Validate(f); err != nil {
		return model.SinglePlotInput{}, err
	}
	return model.SinglePlotInput{
		Timestamp: f.Date + timestampSeparator + f.Time,
		FileName:  f.FileName,
	}, nil
}

func (f SinglePlot) trimmed() SinglePlot {
	f.Date = strings.TrimSpace(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.FileName = strings.TrimSpace(f.FileName)
	return f
}

// ArchiveAnimation holds the archive/animation form fields. Start and end
// times share the start date.
type ArchiveAnimation struct {
	StartDate       string `json:"startDate" validate:"required"`
	StartTime       string `json:"startTime" validate:"required"`
	EndTime         string `json:"endTime" validate:"required"`
	IntervalSeconds int    `json:"intervalSeconds" validate:"required,min=1"`
	FileName        string `json:"fileName"`
}

// Input validates the form and returns the data object it emits
func (f ArchiveAnimation) Input() (model.ArchiveAnimationInput, error) {
	f = f.trimmed()
	if err := Validate(f); err != nil {
		return model.ArchiveAnimationInput{}, err
	}
	return model.ArchiveAnimationInput{
		StartTime:       f.StartDate + timestampSeparator + f.StartTime,
		EndTime:         f.StartDate + timestampSeparator + f.EndTime,
		IntervalSeconds: f.IntervalSeconds,
		FileName:        f.FileName,
	}, nil
}

func (f ArchiveAnimation) trimmed() ArchiveAnimation {
	f.StartDate = strings.TrimSpace(f.StartDate)
	f.StartTime = strings.TrimSpace(f.StartTime)
	f.EndTime = strings.TrimSpace(f.EndTime)
	f.FileName = strings.TrimSpace(f.FileName)
	return f
}

// Coordinates holds the two files of the coordinate calculation form
type Coordinates struct {
	ObsFile string `json:"obsFile" validate:"required"`
	NavFile string `json:"navFile" validate:"required"`
}

// Validate checks both files are present
func (f Coordinates) Validate() error {
	f.ObsFile = strings.TrimSpace(f.ObsFile)
	f.NavFile = strings.TrimSpace(f.NavFile)
	return Validate(f)
}
