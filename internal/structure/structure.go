package structure

import "github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"

// Build runs the full structuring pipeline over one recognition result:
// normalize words, segment the label into lines and assign words, estimate
// document metrics, classify indentation, link the outline hierarchy, and
// extract command annotations.
//
// Build never fails: empty or degenerate input yields an empty Document with
// default metrics, and geometric ambiguity degrades to best-effort
// assignment with the leftovers reported in Unmatched.
func Build(res recognition.Result, cfg Config) *Document {
	cfg = cfg.withDefaults()

	words := normalizeWords(res.Words, cfg)
	lines, unmatched := segmentLines(res.Label, words, cfg)
	metrics := estimateMetrics(lines, cfg)
	classifyIndents(lines, metrics)
	buildHierarchy(lines)

	return &Document{
		Lines:     lines,
		Commands:  extractCommands(res.Label, lines),
		Metrics:   metrics,
		Unmatched: unmatched,
	}
}
