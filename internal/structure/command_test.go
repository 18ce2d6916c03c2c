package structure

import "testing"

func TestExtractCommands_LineAssociation(t *testing.T) {
	label := "[book: 3017]\nsome text\n[Page: 12]"
	lines := []Line{
		{Text: "[book: 3017]", Index: 0, Parent: -1},
		{Text: "some text", Index: 1, Parent: -1},
		{Text: "[Page: 12]", Index: 2, Parent: -1},
	}

	cmds := extractCommands(label, lines)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}

	if cmds[0].Command != "book" || cmds[0].Value != "3017" || cmds[0].Line != 0 {
		t.Errorf("expected {book 3017 line 0}, got %+v", cmds[0])
	}
	// Keys are lower-cased.
	if cmds[1].Command != "page" || cmds[1].Value != "12" || cmds[1].Line != 2 {
		t.Errorf("expected {page 12 line 2}, got %+v", cmds[1])
	}
}

func TestExtractCommands_DocumentScopedWhenNoLineMatches(t *testing.T) {
	// The command appears in the document text but in none of the line texts
	// (e.g. the segmenter dropped its segment).
	cmds := extractCommands("[tag: ideas]", []Line{{Text: "unrelated", Index: 0, Parent: -1}})
	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	if cmds[0].Line != -1 {
		t.Errorf("expected document scope (-1), got line %d", cmds[0].Line)
	}
}

func TestExtractCommands_DuplicateMatchesGetDistinctLines(t *testing.T) {
	label := "[todo: review]\n[todo: review]"
	lines := []Line{
		{Text: "[todo: review]", Index: 0, Parent: -1},
		{Text: "[todo: review]", Index: 1, Parent: -1},
	}
	cmds := extractCommands(label, lines)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Line != 0 || cmds[1].Line != 1 {
		t.Errorf("expected lines [0 1], got [%d %d]", cmds[0].Line, cmds[1].Line)
	}
}

func TestExtractCommands_MultipleCommandsOnOneLine(t *testing.T) {
	label := "[book: 3017] [page: 12]\nsome text"
	lines := []Line{
		{Text: "[book: 3017] [page: 12]", Index: 0, Parent: -1},
		{Text: "some text", Index: 1, Parent: -1},
	}

	cmds := extractCommands(label, lines)
	if len(cmds) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Command != "book" || cmds[0].Line != 0 {
		t.Errorf("expected {book line 0}, got %+v", cmds[0])
	}
	if cmds[1].Command != "page" || cmds[1].Line != 0 {
		t.Errorf("expected both commands bound to line 0, got %+v", cmds[1])
	}
}

func TestExtractCommands_NoMatches(t *testing.T) {
	if cmds := extractCommands("plain text without brackets", nil); cmds != nil {
		t.Errorf("expected nil, got %v", cmds)
	}
	// A bracket without the key: value shape is not a command.
	if cmds := extractCommands("[not a command]", nil); cmds != nil {
		t.Errorf("expected nil for keyless bracket, got %v", cmds)
	}
}

func TestCommandScope_LineAndDescendants(t *testing.T) {
	lines := indentedLines(0, 1, 2, 0)
	buildHierarchy(lines)
	doc := &Document{Lines: lines}

	scope := doc.CommandScope(Command{Command: "book", Value: "3017", Line: 0})
	want := []int{0, 1, 2}
	if len(scope) != len(want) {
		t.Fatalf("expected scope %v, got %v", want, scope)
	}
	for i := range want {
		if scope[i] != want[i] {
			t.Fatalf("expected scope %v, got %v", want, scope)
		}
	}
}

func TestCommandScope_DocumentScopedCoversAllLines(t *testing.T) {
	doc := &Document{Lines: indentedLines(0, 0, 0)}
	scope := doc.CommandScope(Command{Command: "tag", Value: "x", Line: -1})
	if len(scope) != 3 {
		t.Errorf("expected all 3 lines in scope, got %v", scope)
	}
}
