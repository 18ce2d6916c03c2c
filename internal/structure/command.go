package structure

import (
	"regexp"
	"strings"
)

// commandRe matches bracketed [key: value] annotations: a word-character
// identifier, a colon, then anything up to the closing bracket.
var commandRe = regexp.MustCompile(`\[(\w+):\s*([^\]]*)\]`)

// extractCommands scans the whole document text for command annotations,
// then associates each with the line whose text contains the same match.
// A command with no matching line stays document-scoped (Line = -1).
func extractCommands(label string, lines []Line) []Command {
	matches := commandRe.FindAllStringSubmatch(label, -1)
	if len(matches) == 0 {
		return nil
	}

	cmds := make([]Command, 0, len(matches))
	raw := make([]string, 0, len(matches))
	for _, m := range matches {
		cmds = append(cmds, Command{
			Command: strings.ToLower(m[1]),
			Value:   strings.TrimSpace(m[2]),
			Line:    -1,
		})
		raw = append(raw, m[0])
	}

	for _, line := range lines {
		for _, found := range commandRe.FindAllString(line.Text, -1) {
			for i := range cmds {
				if cmds[i].Line == -1 && raw[i] == found {
					cmds[i].Line = line.Index
					break
				}
			}
		}
	}
	return cmds
}

// CommandScope returns the line indices a command applies to: its defining
// line plus all hierarchy descendants. Document-scoped commands (Line = -1)
// apply to every line.
func (d *Document) CommandScope(c Command) []int {
	if c.Line < 0 {
		out := make([]int, len(d.Lines))
		for i := range d.Lines {
			out[i] = i
		}
		return out
	}
	return append([]int{c.Line}, d.Descendants(c.Line)...)
}
