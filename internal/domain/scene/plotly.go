package scene

// Figure is a Plotly-compatible rendering of a Scene: one scatter3d trace
// per series plus the shared layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is a scatter3d trace. Coordinates are pointers so that line
// segments can be separated by JSON nulls.
type Trace struct {
	Type          string     `json:"type"`
	Mode          SeriesMode `json:"mode"`
	Name          string     `json:"name"`
	X             []*float64 `json:"x"`
	Y             []*float64 `json:"y"`
	Z             []*float64 `json:"z"`
	Marker        *Marker    `json:"marker,omitempty"`
	Line          *LineStyle `json:"line,omitempty"`
	Opacity       float64    `json:"opacity,omitempty"`
	Text          []string   `json:"text,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`
	HoverInfo     string     `json:"hoverinfo,omitempty"`
	ShowLegend    bool       `json:"showlegend"`
}

// Marker is a scatter3d marker. Color and Size hold either a scalar or a
// per-point array.
type Marker struct {
	Size    interface{} `json:"size"`
	Color   interface{} `json:"color"`
	Opacity float64     `json:"opacity,omitempty"`
	Line    *LineStyle  `json:"line,omitempty"`
}

const hoverCoords = "<br>X: %{x:.2f}<br>Y: %{y:.2f}<br>Z: %{z:.2f}<extra></extra>"

// Plotly converts the scene to a Figure.
func (s *Scene) Plotly() Figure {
	fig := Figure{Data: make([]Trace, 0, len(s.Series)), Layout: s.Layout}
	for i := range s.Series {
		fig.Data = append(fig.Data, s.Series[i].trace())
	}
	return fig
}

func (sr *Series) trace() Trace {
	t := Trace{
		Type:       "scatter3d",
		Mode:       sr.Mode,
		Name:       sr.Name,
		Opacity:    sr.Opacity,
		Line:       sr.Line,
		ShowLegend: sr.ShowLegend,
	}

	if sr.Mode == Lines {
		n := len(sr.Segments) * 3
		t.X, t.Y, t.Z = make([]*float64, 0, n), make([]*float64, 0, n), make([]*float64, 0, n)
		for _, seg := range sr.Segments {
			for _, p := range seg {
				t.X, t.Y, t.Z = append(t.X, ptr(p[0])), append(t.Y, ptr(p[1])), append(t.Z, ptr(p[2]))
			}
			t.X, t.Y, t.Z = append(t.X, nil), append(t.Y, nil), append(t.Z, nil)
		}
		t.HoverInfo = "skip"
		return t
	}

	n := len(sr.Points)
	t.X, t.Y, t.Z = make([]*float64, n), make([]*float64, n), make([]*float64, n)
	for i, p := range sr.Points {
		t.X[i], t.Y[i], t.Z[i] = ptr(p[0]), ptr(p[1]), ptr(p[2])
	}

	m := &Marker{Opacity: sr.Opacity, Line: sr.Outline}
	if sr.Sizes != nil {
		m.Size = sr.Sizes
	} else {
		m.Size = sr.Size
	}
	if sr.Colors != nil {
		m.Color = sr.Colors
	} else {
		m.Color = sr.Color
	}
	t.Marker = m
	t.Text = sr.HoverText

	head := "<b>%{text}</b>"
	if sr.HoverInfo != "" {
		head += "<br>" + sr.HoverInfo
	}
	t.HoverTemplate = head + hoverCoords
	return t
}

func ptr(v float64) *float64 { return &v }

//Personal.AI order the ending
