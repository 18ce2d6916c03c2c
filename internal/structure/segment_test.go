package structure

import "testing"

// mkword builds a normalized word with a box-bottom baseline, the common
// case in these tests.
func mkword(text string, x, y, w, h float64) Word {
	return Word{Text: text, Box: box(x, y, w, h), Baseline: y + h}
}

func TestSplitLabel(t *testing.T) {
	segments := splitLabel("one\r\ntwo\n\n  \nthree\r")
	want := []string{"one", "two", "three"}
	if len(segments) != len(want) {
		t.Fatalf("expected %d segments, got %d: %v", len(want), len(segments), segments)
	}
	for i := range want {
		if segments[i] != want[i] {
			t.Errorf("segment %d: expected %q, got %q", i, want[i], segments[i])
		}
	}
}

func TestSegmentLines_ContentMatch(t *testing.T) {
	words := []Word{
		mkword("Meeting", 0, 0, 50, 10),
		mkword("notes", 55, 0, 35, 10),
		mkword("Discussed", 40, 30, 60, 10),
		mkword("roadmap", 105, 30, 50, 10),
	}
	lines, unmatched := segmentLines("Meeting notes\n  Discussed roadmap", words, DefaultConfig())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(unmatched) != 0 {
		t.Errorf("expected no unmatched words, got %d", len(unmatched))
	}
	if len(lines[0].Words) != 2 || len(lines[1].Words) != 2 {
		t.Fatalf("expected 2 words per line, got %d and %d", len(lines[0].Words), len(lines[1].Words))
	}
	if lines[0].X != 0 {
		t.Errorf("line 0: expected x 0, got %g", lines[0].X)
	}
	if lines[1].X != 40 {
		t.Errorf("line 1: expected x 40, got %g", lines[1].X)
	}
	// Mean of the two baselines on each line.
	if lines[0].Baseline != 10 {
		t.Errorf("line 0: expected baseline 10, got %g", lines[0].Baseline)
	}
	if lines[1].Baseline != 40 {
		t.Errorf("line 1: expected baseline 40, got %g", lines[1].Baseline)
	}
}

func TestSegmentLines_WordsSortedLeftToRight(t *testing.T) {
	// Words arrive out of reading order.
	words := []Word{
		mkword("world", 60, 0, 40, 10),
		mkword("hello", 0, 0, 40, 10),
	}
	lines, _ := segmentLines("hello world", words, DefaultConfig())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Words[0].Text != "hello" || lines[0].Words[1].Text != "world" {
		t.Errorf("expected words sorted by x, got [%s %s]",
			lines[0].Words[0].Text, lines[0].Words[1].Text)
	}
}

func TestSegmentLines_GeometricFallbackOnRecurringWord(t *testing.T) {
	// "notes" occurs in both lines' text; Tier-1 over-matches the single-word
	// first line (2 candidates > 1.5x expected 1) and the baseline clusters
	// must decide.
	words := []Word{
		mkword("notes", 10, 10, 35, 10),
		mkword("more", 10, 40, 30, 10),
		mkword("notes", 45, 40, 35, 10),
		mkword("here", 85, 40, 30, 10),
	}
	lines, unmatched := segmentLines("notes\nmore notes here", words, DefaultConfig())

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[0].Words) != 1 {
		t.Fatalf("expected 1 word on line 0, got %d", len(lines[0].Words))
	}
	// The geometrically matching occurrence is the one at baseline 20.
	if lines[0].Words[0].Baseline != 20 {
		t.Errorf("expected line 0 to take the topmost 'notes', got baseline %g",
			lines[0].Words[0].Baseline)
	}
	if len(lines[1].Words) != 3 {
		t.Errorf("expected 3 words on line 1, got %d", len(lines[1].Words))
	}
	if len(unmatched) != 0 {
		t.Errorf("expected no unmatched words, got %d", len(unmatched))
	}
}

func TestSegmentLines_UnmatchedWordsReported(t *testing.T) {
	words := []Word{
		mkword("hello", 0, 0, 40, 10),
		mkword("stray", 0, 200, 40, 10),
	}
	lines, unmatched := segmentLines("hello", words, DefaultConfig())

	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if len(unmatched) != 1 || unmatched[0].Text != "stray" {
		t.Fatalf("expected stray to be unmatched, got %v", unmatched)
	}
	// Word conservation: matched + unmatched == total input.
	if len(lines[0].Words)+len(unmatched) != len(words) {
		t.Errorf("word conservation violated: %d matched + %d unmatched != %d total",
			len(lines[0].Words), len(unmatched), len(words))
	}
}

func TestSegmentLines_NoWordsFallbacks(t *testing.T) {
	lines, unmatched := segmentLines("alpha\nbeta", nil, DefaultConfig())
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(unmatched) != 0 {
		t.Errorf("expected no unmatched words, got %d", len(unmatched))
	}
	for i, line := range lines {
		if line.X != 0 {
			t.Errorf("line %d: expected fallback x 0, got %g", i, line.X)
		}
		want := float64(i) * DefaultConfig().EmptyLineGap
		if line.Baseline != want {
			t.Errorf("line %d: expected fallback baseline %g, got %g", i, want, line.Baseline)
		}
	}
	if !(lines[0].Baseline < lines[1].Baseline) {
		t.Error("expected fallback baselines to keep lines ordered")
	}
}

func TestClosestCluster_PicksExpectedSize(t *testing.T) {
	words := []Word{
		mkword("a", 0, 0, 10, 10),
		mkword("b", 15, 0, 10, 10),
		mkword("c", 0, 40, 10, 10),
	}
	// Two clusters: {a,b} at baseline 10, {c} at baseline 50.
	got := closestCluster(words, []int{0, 1, 2}, 2)
	if len(got) != 2 {
		t.Fatalf("expected cluster of 2, got %d", len(got))
	}
	if words[got[0]].Text != "a" || words[got[1]].Text != "b" {
		t.Errorf("expected cluster {a b}, got {%s %s}", words[got[0]].Text, words[got[1]].Text)
	}
}

func TestClosestCluster_TieGoesToTopmost(t *testing.T) {
	words := []Word{
		mkword("low", 0, 60, 10, 10),
		mkword("high", 0, 0, 10, 10),
	}
	got := closestCluster(words, []int{0, 1}, 1)
	if len(got) != 1 {
		t.Fatalf("expected cluster of 1, got %d", len(got))
	}
	if words[got[0]].Text != "high" {
		t.Errorf("expected topmost cluster to win the tie, got %q", words[got[0]].Text)
	}
}

func TestClosestCluster_Empty(t *testing.T) {
	if got := closestCluster(nil, nil, 1); got != nil {
		t.Errorf("expected nil for no candidates, got %v", got)
	}
}
