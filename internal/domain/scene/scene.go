// Package scene turns a structure snapshot into a renderer-neutral 3D scene:
// an ordered list of point/line series plus one layout. Each Mode is a fixed
// pipeline over the structure, the property tables and the geometric
// classifier; nothing here draws pixels.
package scene

// Point is an (x, y, z) position in ångström. It serialises as a JSON array.
type Point [3]float64

// Segment is a straight line between two points.
type Segment [2]Point

// SeriesMode tells a renderer how to draw a series.
type SeriesMode string

const (
	// Markers draws the points only.
	Markers SeriesMode = "markers"
	// Lines draws the Segments only.
	Lines SeriesMode = "lines"
	// LinesMarkers draws the points joined in order.
	LinesMarkers SeriesMode = "lines+markers"
)

// LineStyle styles connecting lines and marker outlines.
type LineStyle struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Series is one drawable group. Either Color or Colors is set; either Size or
// Sizes is set.
type Series struct {
	Name       string     `json:"name"`
	Mode       SeriesMode `json:"mode"`
	Points     []Point    `json:"points"`
	Segments   []Segment  `json:"lines"`
	Color      string     `json:"color,omitempty"`
	Colors     []string   `json:"colors,omitempty"`
	Size       float64    `json:"size,omitempty"`
	Sizes      []float64  `json:"sizes,omitempty"`
	Opacity    float64    `json:"opacity"`
	Line       *LineStyle `json:"line,omitempty"`
	Outline    *LineStyle `json:"outline,omitempty"`
	HoverText  []string   `json:"hover_text"`
	HoverInfo  string     `json:"hover_info,omitempty"`
	ShowLegend bool       `json:"show_legend"`
}

// Len returns the number of points in the series.
func (s *Series) Len() int { return len(s.Points) }

func newSeries(name string, mode SeriesMode) Series {
	return Series{
		Name:       name,
		Mode:       mode,
		Points:     []Point{},
		Segments:   []Segment{},
		HoverText:  []string{},
		ShowLegend: true,
	}
}

// Scene is the complete render description for one structure and mode.
type Scene struct {
	Mode   Mode     `json:"mode"`
	Series []Series `json:"series"`
	Layout Layout   `json:"layout"`
}

// SeriesByName returns the first series with the given name.
func (s *Scene) SeriesByName(name string) (*Series, bool) {
	for i := range s.Series {
		if s.Series[i].Name == name {
			return &s.Series[i], true
		}
	}
	return nil, false
}

//Personal.AI order the ending
