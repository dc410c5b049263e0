package render

import (
	"github.com/guptarohit/asciigraph"
)

// ASCII renders one or more curves as a terminal chart. Empty series are
// skipped; with nothing left it returns the empty string.
func ASCII(caption string, height, width int, series ...[]float64) string {
	data := make([][]float64, 0, len(series))
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}

	opts := []asciigraph.Option{
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	}
	if len(data) > 1 {
		colors := []asciigraph.AnsiColor{asciigraph.Blue, asciigraph.Red, asciigraph.Green, asciigraph.Yellow}
		seriesColors := make([]asciigraph.AnsiColor, len(data))
		for i := range data {
			seriesColors[i] = colors[i%len(colors)]
		}
		opts = append(opts, asciigraph.SeriesColors(seriesColors...))
	}
	return asciigraph.PlotMany(data, opts...)
}
