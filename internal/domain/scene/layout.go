package scene

// Layout is the mode-invariant presentation of a scene. JSON keys follow the
// Plotly layout schema so the same value serves both output formats.
type Layout struct {
	Title           string      `json:"title"`
	Scene           SceneLayout `json:"scene"`
	Margin          Margin      `json:"margin"`
	Height          int         `json:"height"`
	ShowLegend      bool        `json:"showlegend"`
	Legend          Legend      `json:"legend"`
	PaperBackground string      `json:"paper_bgcolor"`
	PlotBackground  string      `json:"plot_bgcolor"`
}

type SceneLayout struct {
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
	ZAxis      Axis   `json:"zaxis"`
	Camera     Camera `json:"camera"`
	AspectMode string `json:"aspectmode"`
	Background string `json:"bgcolor"`
}

type Axis struct {
	Title string `json:"title"`
}

type Camera struct {
	Eye Eye `json:"eye"`
}

type Eye struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
	T int `json:"t"`
}

type Legend struct {
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
	Background  string  `json:"bgcolor"`
	BorderColor string  `json:"bordercolor"`
	BorderWidth int     `json:"borderwidth"`
}

const (
	titlePrefix = "ProteinScope 3D Structure - "
	transparent = "rgba(0,0,0,0)"
)

// NewLayout returns the layout for mode. Only the title varies by mode.
func NewLayout(mode Mode) Layout {
	return Layout{
		Title: titlePrefix + mode.ViewTitle(),
		Scene: SceneLayout{
			XAxis:      Axis{Title: "X (Å)"},
			YAxis:      Axis{Title: "Y (Å)"},
			ZAxis:      Axis{Title: "Z (Å)"},
			Camera:     Camera{Eye: Eye{X: 1.2, Y: 1.2, Z: 1.2}},
			AspectMode: "cube",
			Background: transparent,
		},
		Margin:     Margin{L: 0, R: 0, B: 0, T: 30},
		Height:     600,
		ShowLegend: true,
		Legend: Legend{
			YAnchor:     "top",
			Y:           0.99,
			XAnchor:     "left",
			X:           0.01,
			Background:  "rgba(255,255,255,0.8)",
			BorderColor: "rgba(0,0,0,0.2)",
			BorderWidth: 1,
		},
		PaperBackground: transparent,
		PlotBackground:  transparent,
	}
}

//Personal.AI order the ending
