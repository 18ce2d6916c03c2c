package structure

import "math"

// classifyIndents converts each line's horizontal start into an integer
// indent level relative to the leftmost line in the document: the minimum x
// always maps to level 0, regardless of its absolute page position.
func classifyIndents(lines []Line, metrics LineMetrics) {
	if len(lines) == 0 {
		return
	}

	baseX := lines[0].X
	for _, line := range lines[1:] {
		if line.X < baseX {
			baseX = line.X
		}
	}

	for i := range lines {
		level := int(math.Round((lines[i].X - baseX) / metrics.IndentUnit))
		if level < 0 {
			level = 0
		}
		lines[i].Indent = level
	}
}

// buildHierarchy assigns parent/children links consistent with indent
// levels, folding over an explicit ancestor stack in document order: pop
// while the stack top is at the same or deeper indent, then the remaining
// top (if any) is the parent. A line at the same indent as a previous line
// thereby inherits that sibling's parent.
func buildHierarchy(lines []Line) {
	type ancestor struct {
		indent int
		index  int
	}

	var stack []ancestor
	for i := range lines {
		for len(stack) > 0 && stack[len(stack)-1].indent >= lines[i].Indent {
			stack = stack[:len(stack)-1]
		}

		lines[i].Parent = -1
		if len(stack) > 0 {
			parent := stack[len(stack)-1].index
			lines[i].Parent = parent
			lines[parent].Children = append(lines[parent].Children, i)
		}

		stack = append(stack, ancestor{indent: lines[i].Indent, index: i})
	}
}

// Descendants returns the indices of every line nested under the line at
// index, in document order. The line itself is not included.
func (d *Document) Descendants(index int) []int {
	if index < 0 || index >= len(d.Lines) {
		return nil
	}
	var out []int
	var walk func(int)
	walk = func(i int) {
		for _, c := range d.Lines[i].Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(index)
	return out
}
