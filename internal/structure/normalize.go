package structure

import (
	"sort"
	"strings"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
)

const descenders = "gjpqy"

// hasDescender reports whether the label contains a letter that extends
// below the baseline.
func hasDescender(label string) bool {
	return strings.ContainsAny(strings.ToLower(label), descenders)
}

func isLineBreakLabel(label string) bool {
	return label == "\n" || label == "\r\n" || label == "\r"
}

// normalizeWords filters raw recognizer words and computes a visual baseline
// for each survivor. Line-break pseudo-words and empty labels are dropped.
//
// Baseline rule: with character-level data, the baseline is the median bottom
// of the word's non-descender characters; without it, a label containing a
// descender letter gets top + DescenderDropRatio×height, anything else the
// box bottom. Keeps descenders from skewing line grouping and indent math.
func normalizeWords(raw []recognition.Word, cfg Config) []Word {
	// Index chars by owning word up front.
	charsByWord := make(map[int][]recognition.Char)
	for _, w := range raw {
		for _, ch := range w.Chars {
			charsByWord[ch.WordIndex] = append(charsByWord[ch.WordIndex], ch)
		}
	}

	words := make([]Word, 0, len(raw))
	for i, w := range raw {
		if strings.TrimSpace(w.Label) == "" || isLineBreakLabel(w.Label) {
			continue
		}
		words = append(words, Word{
			Text:     w.Label,
			Box:      w.BoundingBox,
			Baseline: wordBaseline(w, charsByWord[i], cfg),
		})
	}
	return words
}

func wordBaseline(w recognition.Word, chars []recognition.Char, cfg Config) float64 {
	bottoms := make([]float64, 0, len(chars))
	for _, ch := range chars {
		if strings.TrimSpace(ch.Label) == "" || hasDescender(ch.Label) {
			continue
		}
		bottoms = append(bottoms, ch.BoundingBox.Y+ch.BoundingBox.Height)
	}
	if len(bottoms) > 0 {
		return median(bottoms)
	}

	// No usable character data: estimate from the word box.
	if hasDescender(w.Label) {
		return w.BoundingBox.Y + cfg.DescenderDropRatio*w.BoundingBox.Height
	}
	return w.BoundingBox.Y + w.BoundingBox.Height
}

// median returns the middle value of vs, averaging the two middle values for
// even lengths. vs is reordered in place.
func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sort.Float64s(vs)
	mid := len(vs) / 2
	if len(vs)%2 == 1 {
		return vs[mid]
	}
	return (vs[mid-1] + vs[mid]) / 2
}
