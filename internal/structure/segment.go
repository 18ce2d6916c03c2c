package structure

import (
	"sort"
	"strings"
)

// segmentLines splits the recognizer label on line breaks and assigns each
// normalized word to exactly one line. The label owns line content; word
// assignment is best-effort and may leave words unmatched.
//
// Matching runs in two tiers per line, against a shared pool of still
// available words:
//
//  1. content match: the word's lower-cased text is a substring of the
//     line's lower-cased text. Cheap and usually right, but over-matches
//     when the same word recurs across lines.
//  2. geometric fallback: when tier 1 yields more than OvermatchRatio times
//     the whitespace-split word count, the candidates are re-clustered by
//     baseline and the cluster closest in size to the expected count wins.
func segmentLines(label string, words []Word, cfg Config) (lines []Line, unmatched []Word) {
	segments := splitLabel(label)

	pool := make([]int, 0, len(words))
	for i := range words {
		pool = append(pool, i)
	}

	lines = make([]Line, 0, len(segments))
	for li, text := range segments {
		lower := strings.ToLower(text)
		expected := len(strings.Fields(text))

		// Tier 1: content match against the available pool.
		candidates := make([]int, 0, expected)
		for _, wi := range pool {
			if strings.Contains(lower, strings.ToLower(words[wi].Text)) {
				candidates = append(candidates, wi)
			}
		}

		// Tier 2: content matching over-assigned, fall back to geometry.
		if float64(len(candidates)) > cfg.OvermatchRatio*float64(expected) {
			candidates = closestCluster(words, candidates, expected)
		}

		taken := make(map[int]bool, len(candidates))
		for _, wi := range candidates {
			taken[wi] = true
		}
		next := pool[:0]
		for _, wi := range pool {
			if !taken[wi] {
				next = append(next, wi)
			}
		}
		pool = next

		lines = append(lines, buildLine(li, text, words, candidates, cfg))
	}

	for _, wi := range pool {
		unmatched = append(unmatched, words[wi])
	}
	return lines, unmatched
}

// splitLabel breaks the recognizer label into line segments, discarding
// empty and whitespace-only ones. The surviving text is kept verbatim.
func splitLabel(label string) []string {
	label = strings.ReplaceAll(label, "\r\n", "\n")
	label = strings.ReplaceAll(label, "\r", "\n")

	var segments []string
	for _, seg := range strings.Split(label, "\n") {
		if strings.TrimSpace(seg) != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

// closestCluster groups candidate words into baseline clusters and returns
// the cluster whose size is closest to expected. Candidates are sorted by
// baseline; a new cluster starts whenever the gap to the previous word
// exceeds half the current word's height. Ties on size distance go to the
// cluster earliest in baseline order (topmost on the page).
func closestCluster(words []Word, candidates []int, expected int) []int {
	if len(candidates) == 0 {
		return nil
	}

	byBaseline := make([]int, len(candidates))
	copy(byBaseline, candidates)
	sort.SliceStable(byBaseline, func(i, j int) bool {
		return words[byBaseline[i]].Baseline < words[byBaseline[j]].Baseline
	})

	var clusters [][]int
	current := []int{byBaseline[0]}
	for i := 1; i < len(byBaseline); i++ {
		wi := byBaseline[i]
		gap := words[wi].Baseline - words[byBaseline[i-1]].Baseline
		if gap > words[wi].Box.Height/2 {
			clusters = append(clusters, current)
			current = []int{wi}
			continue
		}
		current = append(current, wi)
	}
	clusters = append(clusters, current)

	best := clusters[0]
	bestDist := absInt(len(best) - expected)
	for _, c := range clusters[1:] {
		if d := absInt(len(c) - expected); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

// buildLine assembles a Line from its assigned word indices, sorted into
// left-to-right reading order. Lines with no words still get usable x and
// baseline fallbacks so later stages never divide by zero or lose ordering.
func buildLine(index int, text string, words []Word, assigned []int, cfg Config) Line {
	line := Line{
		Text:   text,
		Words:  make([]Word, 0, len(assigned)),
		Parent: -1,
		Index:  index,
	}
	for _, wi := range assigned {
		line.Words = append(line.Words, words[wi])
	}
	sort.SliceStable(line.Words, func(i, j int) bool {
		return line.Words[i].Box.X < line.Words[j].Box.X
	})

	if len(line.Words) == 0 {
		line.Baseline = float64(index) * cfg.EmptyLineGap
		return line
	}

	line.X = line.Words[0].Box.X
	sum := 0.0
	for _, w := range line.Words {
		sum += w.Baseline
	}
	line.Baseline = sum / float64(len(line.Words))
	return line
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
