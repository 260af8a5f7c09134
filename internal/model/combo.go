package model

// Combo is a named, pre-configured bundle of plot parameters selectable by the user
type Combo struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	RequestSkeleton RequestSkeleton `json:"requestSkeleton"`
}

// RequestSkeleton is the job request template attached to a combo
type RequestSkeleton struct {
	PlotRequest GeneratePlotRequest `json:"plot_request"`
}

// Clone returns a deep copy of the combo so callers can't mutate catalog data
func (c Combo) Clone() Combo {
	c.RequestSkeleton.PlotRequest = c.RequestSkeleton.PlotRequest.Clone()
	return c
}

// PlotCount returns the number of plot entries in the skeleton
func (c Combo) PlotCount() int {
	return len(c.RequestSkeleton.PlotRequest.Plots)
}
