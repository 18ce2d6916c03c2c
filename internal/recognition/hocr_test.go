package recognition

import (
	"strings"
	"testing"
)

const sampleHOCR = `<!DOCTYPE html>
<html>
<body>
<div class="ocr_page" title="bbox 0 0 2480 3508">
 <div class="ocr_carea">
  <p class="ocr_par">
   <span class="ocr_line" title="bbox 100 100 600 140; baseline 0 -8">
    <span class="ocrx_word" title="bbox 100 100 300 140; x_wconf 96">Meeting</span>
    <span class="ocrx_word" title="bbox 320 100 480 140; x_wconf 93">notes</span>
   </span>
   <span class="ocr_line" title="bbox 180 180 700 220">
    <span class="ocrx_word" title="bbox 180 180 420 220">Discussed</span>
    <span class="ocrx_word" title="bbox 440 180 640 220">roadmap</span>
   </span>
  </p>
 </div>
</div>
</body>
</html>`

func TestParseHOCR(t *testing.T) {
	res, err := ParseHOCR(strings.NewReader(sampleHOCR))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Label != "Meeting notes\nDiscussed roadmap" {
		t.Errorf("unexpected label: %q", res.Label)
	}
	if len(res.Words) != 4 {
		t.Fatalf("expected 4 words, got %d", len(res.Words))
	}

	first := res.Words[0]
	if first.Label != "Meeting" {
		t.Errorf("expected first word %q, got %q", "Meeting", first.Label)
	}
	if first.BoundingBox.X != 100 || first.BoundingBox.Y != 100 {
		t.Errorf("expected bbox origin (100,100), got (%g,%g)",
			first.BoundingBox.X, first.BoundingBox.Y)
	}
	if first.BoundingBox.Width != 200 || first.BoundingBox.Height != 40 {
		t.Errorf("expected bbox 200x40, got %gx%g",
			first.BoundingBox.Width, first.BoundingBox.Height)
	}
}

func TestParseHOCR_SkipsWordsWithoutBBox(t *testing.T) {
	input := `<div class="ocr_line">
		<span class="ocrx_word" title="x_wconf 80">floating</span>
		<span class="ocrx_word" title="bbox 0 0 50 20">anchored</span>
	</div>`

	res, err := ParseHOCR(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both words contribute to the line text, only the anchored one carries geometry.
	if res.Label != "floating anchored" {
		t.Errorf("unexpected label: %q", res.Label)
	}
	if len(res.Words) != 1 || res.Words[0].Label != "anchored" {
		t.Fatalf("expected only the anchored word, got %v", res.Words)
	}
}

func TestParseHOCR_EmptyDocument(t *testing.T) {
	res, err := ParseHOCR(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Label != "" || len(res.Words) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestParseBBox(t *testing.T) {
	bbox, ok := parseBBox("bbox 10 20 110 60; x_wconf 91")
	if !ok {
		t.Fatal("expected bbox to parse")
	}
	if bbox.X != 10 || bbox.Y != 20 || bbox.Width != 100 || bbox.Height != 40 {
		t.Errorf("unexpected bbox: %+v", bbox)
	}

	if _, ok := parseBBox("x_wconf 91"); ok {
		t.Error("expected missing bbox to report !ok")
	}
	if _, ok := parseBBox("bbox 10 twenty 110 60"); ok {
		t.Error("expected malformed bbox to report !ok")
	}
}
