// Package structure reconstructs a hierarchical document model from a flat
// handwriting-recognition result: ordered lines with inferred indentation
// levels, parent/child outline links, and embedded [key: value] commands.
//
// The whole package is pure computation over in-memory slices. Each call to
// Build receives its own working set and returns a self-contained Document;
// nothing is shared between invocations.
package structure

import "github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"

// Word is one recognized token that survived normalization. Immutable after
// creation; referenced by at most one Line.
type Word struct {
	Text string                  `json:"text"`
	Box  recognition.BoundingBox `json:"boundingBox"`
	// Baseline is the y-coordinate of the glyph's visual baseline (bottom of
	// non-descender characters), not simply Box.Y+Box.Height.
	Baseline float64 `json:"baseline"`
}

// Line is one logical row of the reconstructed document. Text is the exact
// segment of the recognizer label; word assignment is best-effort supporting
// detail.
type Line struct {
	Text  string `json:"text"`
	Words []Word `json:"words"`
	// X is the leftmost assigned word start, 0 when no words matched.
	X        float64 `json:"x"`
	Baseline float64 `json:"baseline"`
	Indent   int     `json:"indentLevel"`
	// Parent is the index of the parent line in Document.Lines, -1 for roots.
	Parent   int   `json:"parent"`
	Children []int `json:"children"`
	// Index equals the line's position in Document.Lines and is never
	// reassigned after creation.
	Index int `json:"lineIndex"`
}

// LineMetrics holds document-wide spatial constants derived once from the
// assigned lines.
type LineMetrics struct {
	MedianHeight     float64 `json:"medianHeight"`
	LineThreshold    float64 `json:"lineThreshold"`
	IndentUnit       float64 `json:"indentUnit"`
	BaselineVariance float64 `json:"baselineVariance"`
}

// Command is a scoped [key: value] annotation found in the recognized text.
// Line is the index of the defining line, -1 when the command matched the
// document text but no single line (document-scoped).
type Command struct {
	Command string `json:"command"`
	Value   string `json:"value"`
	Line    int    `json:"lineIndex"`
}

// Document is the final structured result handed to renderers, exporters and
// the sync layer. Consumers must treat it as immutable.
type Document struct {
	Lines    []Line      `json:"lines"`
	Commands []Command   `json:"commands"`
	Metrics  LineMetrics `json:"lineMetrics"`
	// Unmatched lists words that were dropped from line assignment. Not an
	// error; callers may log it or lower UI confidence.
	Unmatched []Word `json:"unmatched,omitempty"`
}

// Config tunes the structuring heuristics. All thresholds are expressed as
// ratios of the estimated median glyph height so they survive different
// recognizer output scales.
type Config struct {
	// FallbackMedianHeight is used when no words carry geometry.
	FallbackMedianHeight float64
	// LineThresholdRatio scales medianHeight into the same-line tolerance.
	LineThresholdRatio float64
	// IndentNoiseRatio filters x-offsets smaller than this fraction of the
	// median height when estimating the indent unit.
	IndentNoiseRatio float64
	// IndentFallbackRatio sets the indent unit when no offsets survive.
	IndentFallbackRatio float64
	// IndentMinRatio / IndentMaxRatio clamp the estimated indent unit.
	IndentMinRatio float64
	IndentMaxRatio float64
	// BaselineVarianceRatio scales medianHeight into baseline variance.
	BaselineVarianceRatio float64
	// OvermatchRatio triggers the geometric fallback when Tier-1 content
	// matching assigns more than this multiple of the expected word count.
	OvermatchRatio float64
	// DescenderDropRatio positions the baseline within a box whose label
	// contains a descender letter and has no character-level data.
	DescenderDropRatio float64
	// EmptyLineGap is the synthetic baseline spacing for lines with no
	// assigned words, keeping them orderable.
	EmptyLineGap float64
}

// DefaultConfig returns the tuning used for Neo smartpen pages at 300 DPI.
func DefaultConfig() Config {
	return Config{
		FallbackMedianHeight:  10,
		LineThresholdRatio:    0.6,
		IndentNoiseRatio:      0.5,
		IndentFallbackRatio:   2.0,
		IndentMinRatio:        1.0,
		IndentMaxRatio:        5.0,
		BaselineVarianceRatio: 0.25,
		OvermatchRatio:        1.5,
		DescenderDropRatio:    0.8,
		EmptyLineGap:          20,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FallbackMedianHeight <= 0 {
		c.FallbackMedianHeight = d.FallbackMedianHeight
	}
	if c.LineThresholdRatio <= 0 {
		c.LineThresholdRatio = d.LineThresholdRatio
	}
	if c.IndentNoiseRatio <= 0 {
		c.IndentNoiseRatio = d.IndentNoiseRatio
	}
	if c.IndentFallbackRatio <= 0 {
		c.IndentFallbackRatio = d.IndentFallbackRatio
	}
	if c.IndentMinRatio <= 0 {
		c.IndentMinRatio = d.IndentMinRatio
	}
	if c.IndentMaxRatio <= 0 {
		c.IndentMaxRatio = d.IndentMaxRatio
	}
	if c.BaselineVarianceRatio <= 0 {
		c.BaselineVarianceRatio = d.BaselineVarianceRatio
	}
	if c.OvermatchRatio <= 0 {
		c.OvermatchRatio = d.OvermatchRatio
	}
	if c.DescenderDropRatio <= 0 {
		c.DescenderDropRatio = d.DescenderDropRatio
	}
	if c.EmptyLineGap <= 0 {
		c.EmptyLineGap = d.EmptyLineGap
	}
	return c
}
