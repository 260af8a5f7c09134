package model

// PlotType identifies the kind of a single plot inside a figure
type PlotType string

const (
	PlotTypeMap2D       PlotType = "map2d"
	PlotTypeGIM         PlotType = "gim"
	PlotTypeIPPMercator PlotType = "ipp_mercator"
	PlotTypeIPPPolar    PlotType = "ipp_polar"
	PlotTypeDST         PlotType = "dst"
)

// IsValid reports whether the plot type is known to the plotting API
func (pt PlotType) IsValid() bool {
	switch pt {
	case PlotTypeMap2D, PlotTypeGIM, PlotTypeIPPMercator, PlotTypeIPPPolar, PlotTypeDST:
		return true
	default:
		return false
	}
}

// PlotRequest describes one plot cell of a generated figure
type PlotRequest struct {
	Row         int      `json:"row"`
	Col         int      `json:"col"`
	PlotType    PlotType `json:"plot_type"`
	DataFile    string   `json:"data_file"`
	Title       string   `json:"title"`
	Timestamp   string   `json:"timestamp"`
	RowSpan     int      `json:"rowspan"`
	ColSpan     int      `json:"colspan"`
	Colorbar    bool     `json:"colorbar"`
	ProductType string   `json:"product_type"`
	MinLat      float64  `json:"min_lat"`
	MaxLat      float64  `json:"max_lat"`
	MinLon      float64  `json:"min_lon"`
	MaxLon      float64  `json:"max_lon"`
	Delimiter   string   `json:"delimiter,omitempty"` // only for dst plots
}

// GeneratePlotRequest is the body of a single plot job
type GeneratePlotRequest struct {
	Height   int           `json:"height"`
	DPI      int           `json:"dpi"`
	FileName string        `json:"file_name"`
	NRows    int           `json:"nrows"`
	NCols    int           `json:"ncols"`
	Plots    []PlotRequest `json:"plots"`
}

// Clone returns a copy with its own plots slice
func (r GeneratePlotRequest) Clone() GeneratePlotRequest {
	if r.Plots != nil {
		plots := make([]PlotRequest, len(r.Plots))
		copy(plots, r.Plots)
		r.Plots = plots
	}
	return r
}

// ArchiveAnimationRequest is the body of an archive/animation job
type ArchiveAnimationRequest struct {
	StartTime       string              `json:"start_time"`
	EndTime         string              `json:"end_time"`
	IntervalSeconds int                 `json:"interval_seconds"`
	PlotRequest     GeneratePlotRequest `json:"plot_request"`
}

// GenerateResponse is returned by both job creation endpoints
type GenerateResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// ProgressResponse is returned by the progress endpoints
type ProgressResponse struct {
	Progress Progress `json:"progress"`
}

// CoordinatesResult is returned by the coordinate calculation endpoint
type CoordinatesResult struct {
	Valid       bool       `json:"valid"`
	Coordinates [3]float64 `json:"coordinates"`
}
