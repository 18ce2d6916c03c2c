package outline

import (
	"testing"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/recognition"
	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/structure"
)

func outlineDoc(t *testing.T) *structure.Document {
	t.Helper()
	res := recognition.Result{
		Label: "Meeting notes\n  Discussed roadmap\n  Action items",
		Words: []recognition.Word{
			{Label: "Meeting", BoundingBox: recognition.BoundingBox{X: 0, Y: 0, Width: 55, Height: 10}},
			{Label: "notes", BoundingBox: recognition.BoundingBox{X: 60, Y: 0, Width: 40, Height: 10}},
			{Label: "Discussed", BoundingBox: recognition.BoundingBox{X: 40, Y: 30, Width: 70, Height: 10}},
			{Label: "roadmap", BoundingBox: recognition.BoundingBox{X: 115, Y: 30, Width: 55, Height: 10}},
			{Label: "Action", BoundingBox: recognition.BoundingBox{X: 40, Y: 60, Width: 45, Height: 10}},
			{Label: "items", BoundingBox: recognition.BoundingBox{X: 90, Y: 60, Width: 40, Height: 10}},
		},
	}
	return structure.Build(res, structure.DefaultConfig())
}

func TestMarkdown_NestedBullets(t *testing.T) {
	got := Markdown(outlineDoc(t))
	want := "- Meeting notes\n\t- Discussed roadmap\n\t- Action items\n"
	if got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}
}

func TestMarkdown_Empty(t *testing.T) {
	if got := Markdown(&structure.Document{}); got != "" {
		t.Errorf("expected empty markup, got %q", got)
	}
}

func TestFlatten_DepthsFollowHierarchy(t *testing.T) {
	entries := Flatten(outlineDoc(t))
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	wantDepths := []int{0, 1, 1}
	wantTexts := []string{"Meeting notes", "Discussed roadmap", "Action items"}
	for i := range entries {
		if entries[i].Depth != wantDepths[i] {
			t.Errorf("entry %d: expected depth %d, got %d", i, wantDepths[i], entries[i].Depth)
		}
		if entries[i].Text != wantTexts[i] {
			t.Errorf("entry %d: expected text %q, got %q", i, wantTexts[i], entries[i].Text)
		}
	}
}

func TestPDF_ProducesDocument(t *testing.T) {
	data, err := PDF(outlineDoc(t), "Notebook p.12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty pdf output")
	}
	// PDF files start with the %PDF magic header.
	if string(data[:5]) != "%PDF-" {
		t.Errorf("expected %%PDF- header, got %q", string(data[:5]))
	}
}
