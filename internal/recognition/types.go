package recognition

// BoundingBox is an axis-aligned rectangle in the recognizer's pixel space.
// All boxes in one Result share the same coordinate space.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Char is a character-level record inside a recognized word. WordIndex
// references the position of the owning word in Result.Words.
type Char struct {
	Label       string      `json:"label"`
	BoundingBox BoundingBox `json:"boundingBox"`
	WordIndex   int         `json:"wordIndex"`
}

// Word is one recognized token as returned by the recognition service.
// Labels may include line-break pseudo-words; downstream filtering owns that.
type Word struct {
	Label       string      `json:"label"`
	BoundingBox BoundingBox `json:"boundingBox"`
	Chars       []Char      `json:"chars,omitempty"`
}

// Result is a complete recognition response for one batch of ink. Label is
// the authoritative recognized text including "\n" line breaks matching how
// the recognizer grouped ink into lines.
type Result struct {
	Label string `json:"label"`
	Words []Word `json:"words"`
}

// Stroke is a single pen trace sent to the recognition service.
type Stroke struct {
	X []float64 `json:"x"`
	Y []float64 `json:"y"`
	T []int64   `json:"t,omitempty"`
}
