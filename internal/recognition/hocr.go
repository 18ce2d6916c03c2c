package recognition

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ParseHOCR reads an hOCR document (the HTML-based OCR interchange format)
// and converts it into a Result: the label is assembled from ocr_line texts
// joined with line breaks, and each ocrx_word contributes a word with its
// bbox geometry. Character-level data is not part of hOCR, so words rely on
// the label-based baseline heuristic downstream.
//
// The parser is tolerant: lines without words and words without a usable
// bbox are skipped rather than failing the import.
func ParseHOCR(r io.Reader) (*Result, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse hocr: %w", err)
	}

	result := &Result{}
	var lineTexts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_line") {
			text, words := parseLine(n)
			if strings.TrimSpace(text) != "" {
				lineTexts = append(lineTexts, text)
				result.Words = append(result.Words, words...)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	result.Label = strings.Join(lineTexts, "\n")
	return result, nil
}

// parseLine collects the words of one ocr_line element and rebuilds the line
// text from them.
func parseLine(line *html.Node) (string, []Word) {
	var words []Word
	var texts []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocrx_word") {
			text := strings.TrimSpace(nodeText(n))
			if text == "" {
				return
			}
			texts = append(texts, text)
			if bbox, ok := parseBBox(attr(n, "title")); ok {
				words = append(words, Word{Label: text, BoundingBox: bbox})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(line)

	return strings.Join(texts, " "), words
}

// parseBBox extracts "bbox x0 y0 x1 y1" from an hOCR title attribute, which
// holds semicolon-separated properties.
func parseBBox(title string) (BoundingBox, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		vals := make([]float64, 4)
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return BoundingBox{}, false
			}
			vals[i] = v
		}
		return BoundingBox{
			X:      vals[0],
			Y:      vals[1],
			Width:  vals[2] - vals[0],
			Height: vals[3] - vals[1],
		}, true
	}
	return BoundingBox{}, false
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
