package structure

import "testing"

func TestEstimateMetrics_EmptyDocumentDefaults(t *testing.T) {
	m := estimateMetrics(nil, DefaultConfig())
	if m.MedianHeight != 10 {
		t.Errorf("expected fallback median height 10, got %g", m.MedianHeight)
	}
	if m.LineThreshold != 6 {
		t.Errorf("expected line threshold 6, got %g", m.LineThreshold)
	}
	if m.IndentUnit != 20 {
		t.Errorf("expected fallback indent unit 20, got %g", m.IndentUnit)
	}
	if m.BaselineVariance != 2.5 {
		t.Errorf("expected baseline variance 2.5, got %g", m.BaselineVariance)
	}
}

func TestEstimateMetrics_MedianHeightFromWords(t *testing.T) {
	lines := []Line{
		{Words: []Word{mkword("a", 0, 0, 10, 8), mkword("b", 15, 0, 10, 12)}},
		{Words: []Word{mkword("c", 0, 30, 10, 20)}},
	}
	m := estimateMetrics(lines, DefaultConfig())
	if m.MedianHeight != 12 {
		t.Errorf("expected median height 12, got %g", m.MedianHeight)
	}
	// Same runtime multiplication the estimator performs, so the comparison
	// is exact without relying on constant folding.
	want := DefaultConfig().LineThresholdRatio * m.MedianHeight
	if m.LineThreshold != want {
		t.Errorf("expected line threshold %g, got %g", want, m.LineThreshold)
	}
}

func TestEstimateIndentUnit_SmallestSignificantOffset(t *testing.T) {
	lines := []Line{
		{X: 0},
		{X: 2},  // hand jitter, below the 0.5*mh noise floor
		{X: 40}, // one indent step
		{X: 80}, // two indent steps
	}
	unit := estimateIndentUnit(lines, 10, DefaultConfig())
	if unit != 40 {
		t.Errorf("expected indent unit 40, got %g", unit)
	}
}

func TestEstimateIndentUnit_NoOffsetsUsesFallback(t *testing.T) {
	lines := []Line{{X: 0}, {X: 1}, {X: 2}}
	unit := estimateIndentUnit(lines, 10, DefaultConfig())
	if unit != 20 {
		t.Errorf("expected fallback unit 20 (2x median height), got %g", unit)
	}
}

func TestEstimateIndentUnit_ClampedToRange(t *testing.T) {
	// A huge smallest offset clamps to 5x median height.
	wide := []Line{{X: 0}, {X: 500}}
	if unit := estimateIndentUnit(wide, 10, DefaultConfig()); unit != 50 {
		t.Errorf("expected clamp to 50, got %g", unit)
	}

	// A tiny surviving offset clamps up to the median height. Offset 6 passes
	// the noise floor for mh=10 (5) but sits below the minimum unit.
	narrow := []Line{{X: 0}, {X: 6}}
	if unit := estimateIndentUnit(narrow, 10, DefaultConfig()); unit != 10 {
		t.Errorf("expected clamp to 10, got %g", unit)
	}
}
