package structure

import "sort"

// estimateMetrics derives the document-wide spatial constants from the
// assigned lines. Handwriting indentation is never pixel-exact, so the
// indent unit comes from the data's own smallest meaningful horizontal jump
// rather than a fixed constant.
func estimateMetrics(lines []Line, cfg Config) LineMetrics {
	var heights []float64
	for _, line := range lines {
		for _, w := range line.Words {
			heights = append(heights, w.Box.Height)
		}
	}

	mh := cfg.FallbackMedianHeight
	if len(heights) > 0 {
		mh = median(heights)
	}

	return LineMetrics{
		MedianHeight:     mh,
		LineThreshold:    cfg.LineThresholdRatio * mh,
		IndentUnit:       estimateIndentUnit(lines, mh, cfg),
		BaselineVariance: cfg.BaselineVarianceRatio * mh,
	}
}

// estimateIndentUnit finds the smallest significant x-offset between line
// start positions. Offsets below IndentNoiseRatio×medianHeight are treated
// as hand jitter and ignored.
func estimateIndentUnit(lines []Line, medianHeight float64, cfg Config) float64 {
	unit := cfg.IndentFallbackRatio * medianHeight

	if len(lines) > 0 {
		minX := lines[0].X
		for _, line := range lines[1:] {
			if line.X < minX {
				minX = line.X
			}
		}

		var offsets []float64
		for _, line := range lines {
			if d := line.X - minX; d > cfg.IndentNoiseRatio*medianHeight {
				offsets = append(offsets, d)
			}
		}
		if len(offsets) > 0 {
			sort.Float64s(offsets)
			unit = offsets[0]
		}
	}

	if unit < cfg.IndentMinRatio*medianHeight {
		unit = cfg.IndentMinRatio * medianHeight
	}
	if unit > cfg.IndentMaxRatio*medianHeight {
		unit = cfg.IndentMaxRatio * medianHeight
	}
	return unit
}
