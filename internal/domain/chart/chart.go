// Package chart scales magnitudes into proportional bar sizes.
package chart

import "math"

// DefaultScale is the rendered size of the tallest bar on the weekly study chart.
const DefaultScale = 120

// MagnitudeItem is a labelled non-negative quantity.
type MagnitudeItem struct {
	Label     string
	Magnitude float64
}

// Bar is a MagnitudeItem projected onto [0, scale].
// Magnitude is the input value after clamping, kept for value labels ("4.5h").
type Bar struct {
	Label     string
	Magnitude float64
	Size      float64
}

// Normalize sizes every item relative to the largest magnitude so that the
// largest gets exactly scale. Output has the input's length and order.
//
// Negative and non-finite magnitudes count as zero. When every magnitude is zero,
// or scale is not a positive finite number, every size is zero.
func Normalize(items []MagnitudeItem, scale float64) []Bar {
	bars := make([]Bar, len(items))
	if !ValidScale(scale) {
		for i, it := range items {
			bars[i] = Bar{Label: it.Label, Magnitude: clamp(it.Magnitude)}
		}
		return bars
	}

	var maxMagnitude float64
	for _, it := range items {
		maxMagnitude = math.Max(maxMagnitude, clamp(it.Magnitude))
	}

	for i, it := range items {
		m := clamp(it.Magnitude)
		bars[i] = Bar{Label: it.Label, Magnitude: m}
		if maxMagnitude > 0 {
			bars[i].Size = m / maxMagnitude * scale
		}
	}
	return bars
}

// ValidScale reports whether scale is a positive finite number.
func ValidScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 1)
}

func clamp(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
