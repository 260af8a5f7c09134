package model

import "fmt"

// Progress is a 0..100 completion value of a job, obtained by polling
type Progress int

const (
	ProgressMin Progress = 0
	ProgressMax Progress = 100
)

// Clamp limits the value to 0..100
func (p Progress) Clamp() Progress {
	if p < ProgressMin {
		return ProgressMin
	}
	if p > ProgressMax {
		return ProgressMax
	}
	return p
}

// IsTerminal returns true once the job reports completion
func (p Progress) IsTerminal() bool {
	return p >= ProgressMax
}

// Fraction returns the progress as 0.0..1.0 for progress bars
func (p Progress) Fraction() float64 {
	return float64(p.Clamp()) / float64(ProgressMax)
}

// String returns the progress formatted as a percentage
func (p Progress) String() string {
	return fmt.Sprintf("%d%%", int(p.Clamp()))
}
