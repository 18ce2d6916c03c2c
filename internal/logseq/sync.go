package logseq

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/sync/errgroup"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/outline"
)

// Op classifies a planned reconciliation step for one outline row.
type Op string

const (
	OpCreate Op = "create" // no block exists at this position yet
	OpUpdate Op = "update" // block exists but its text diverged
	OpSkip   Op = "skip"   // block text already matches, leave it alone
)

// Action is one step of a sync plan. Index refers to the position in the
// flattened outline / block list.
type Action struct {
	Op    Op
	Index int
	Depth int
	Text  string
}

// taskMarkerRe strips Logseq task state and checkbox prefixes before
// comparison, so a line the user promoted to TODO/DONE is not rewritten (and
// its marker is preserved) just because the pen wrote the bare text again.
var taskMarkerRe = regexp.MustCompile(`^(TODO|DOING|DONE|LATER|NOW|WAITING|CANCELED)\s+|^\[[ xX]\]\s+`)

// Normalize reduces block text to its comparable core: task markers removed,
// whitespace collapsed, case folded.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	for {
		trimmed := taskMarkerRe.ReplaceAllString(s, "")
		if trimmed == s {
			break
		}
		s = trimmed
	}
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Plan diffs a freshly structured outline against the previously persisted
// one, position by position. Existing rows beyond the fresh outline are left
// untouched: this layer reconciles, it never deletes.
func Plan(existing, fresh []outline.Entry) []Action {
	actions := make([]Action, 0, len(fresh))
	for i, f := range fresh {
		a := Action{Op: OpCreate, Index: i, Depth: f.Depth, Text: f.Text}
		if i < len(existing) {
			if Normalize(existing[i].Text) == Normalize(f.Text) {
				a.Op = OpSkip
			} else {
				a.Op = OpUpdate
			}
		}
		actions = append(actions, a)
	}
	return actions
}

// ParsePage flattens previously persisted page markdown into outline
// entries, one per list item, with depth following list nesting.
func ParsePage(content string) []outline.Entry {
	src := []byte(content)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var entries []outline.Entry
	var walk func(n ast.Node, depth int)
	walk = func(n ast.Node, depth int) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if item, ok := c.(*ast.ListItem); ok {
				t := itemText(item, src)
				if t != "" {
					entries = append(entries, outline.Entry{Depth: depth, Text: t})
				}
				// Nested lists inside this item are one level deeper.
				for gc := item.FirstChild(); gc != nil; gc = gc.NextSibling() {
					if _, isList := gc.(*ast.List); isList {
						walk(gc, depth+1)
					}
				}
				continue
			}
			walk(c, depth)
		}
	}
	walk(doc, 0)
	return entries
}

// itemText collects the item's own text, excluding nested lists.
func itemText(item *ast.ListItem, src []byte) string {
	var sb strings.Builder
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if _, isList := c.(*ast.List); isList {
			continue
		}
		collectText(c, src, &sb)
	}
	return strings.TrimSpace(sb.String())
}

func collectText(n ast.Node, src []byte, sb *strings.Builder) {
	if t, ok := n.(*ast.Text); ok {
		sb.Write(t.Value(src))
		if t.SoftLineBreak() || t.HardLineBreak() {
			sb.WriteByte(' ')
		}
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, src, sb)
	}
}

// FlattenBlocks walks a page's block tree into the same row order ParsePage
// and outline.Flatten produce, keeping block UUIDs for in-place updates.
func FlattenBlocks(blocks []Block) []Block {
	var flat []Block
	var walk func(bs []Block)
	walk = func(bs []Block) {
		for _, b := range bs {
			flat = append(flat, Block{UUID: b.UUID, Content: b.Content})
			walk(b.Children)
		}
	}
	walk(blocks)
	return flat
}

// Syncer applies sync plans to a Logseq graph.
type Syncer struct {
	client        *Client
	log           *slog.Logger
	maxConcurrent int
}

func NewSyncer(client *Client, log *slog.Logger, maxConcurrent int) *Syncer {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &Syncer{client: client, log: log, maxConcurrent: maxConcurrent}
}

// nestEntries rebuilds the nested block tree from flat depth-annotated
// entries. An entry deeper than its predecessor plus one is clamped to one
// level below it.
func nestEntries(entries []outline.Entry) []BatchBlock {
	var roots []BatchBlock
	// Stack of pointers into the tree being built, one per depth.
	var stack []*BatchBlock
	for _, e := range entries {
		depth := e.Depth
		if depth > len(stack) {
			depth = len(stack)
		}
		stack = stack[:depth]

		b := BatchBlock{Content: e.Text}
		if len(stack) == 0 {
			roots = append(roots, b)
			stack = append(stack, &roots[len(roots)-1])
			continue
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, b)
		stack = append(stack, &parent.Children[len(parent.Children)-1])
	}
	return roots
}

// SyncPage reconciles a structured outline with the named page, creating it
// when missing. Returns created/updated/skipped counts.
func (s *Syncer) SyncPage(ctx context.Context, page string, fresh []outline.Entry) (created, updated, skipped int, err error) {
	existing, err := s.client.GetPage(ctx, page)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("get page %q: %w", page, err)
	}
	if existing == nil {
		if err := s.client.CreatePage(ctx, page); err != nil {
			return 0, 0, 0, fmt.Errorf("create page %q: %w", page, err)
		}
		existing, err = s.client.GetPage(ctx, page)
		if err != nil || existing == nil {
			return 0, 0, 0, fmt.Errorf("get created page %q: %w", page, err)
		}
	}

	tree, err := s.client.GetPageBlocksTree(ctx, page)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("get blocks %q: %w", page, err)
	}
	flat := FlattenBlocks(tree)

	// Empty page: insert the whole outline as one nested batch so block
	// nesting mirrors the inferred hierarchy.
	if len(flat) == 0 && len(fresh) > 0 {
		if err := s.client.InsertBatchBlock(ctx, existing.UUID, nestEntries(fresh)); err != nil {
			return 0, 0, 0, fmt.Errorf("insert outline into %q: %w", page, err)
		}
		s.log.Info("page synced", "page", page, "created", len(fresh), "updated", 0, "skipped", 0)
		return len(fresh), 0, 0, nil
	}

	persisted := make([]outline.Entry, len(flat))
	for i, b := range flat {
		persisted[i] = outline.Entry{Text: b.Content}
	}
	actions := Plan(persisted, fresh)

	// Updates target independent blocks and can run concurrently; appends
	// must stay sequential to preserve document order. updatedOK counts
	// landed updates only, so partial failures report what actually changed.
	var updatedOK atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for _, a := range actions {
		switch a.Op {
		case OpSkip:
			skipped++
		case OpUpdate:
			a := a
			g.Go(func() error {
				if err := s.client.UpdateBlock(gctx, flat[a.Index].UUID, a.Text); err != nil {
					return fmt.Errorf("update block %d: %w", a.Index, err)
				}
				updatedOK.Add(1)
				return nil
			})
		}
	}
	err = g.Wait()
	updated = int(updatedOK.Load())
	if err != nil {
		return created, updated, skipped, err
	}

	for _, a := range actions {
		if a.Op != OpCreate {
			continue
		}
		if err := s.client.AppendBlockInPage(ctx, page, a.Text); err != nil {
			return created, updated, skipped, fmt.Errorf("append block %d: %w", a.Index, err)
		}
		created++
	}

	s.log.Info("page synced", "page", page, "created", created, "updated", updated, "skipped", skipped)
	return created, updated, skipped, nil
}
