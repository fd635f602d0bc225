// Package render draws engine states and trace frames for a terminal.
//
// Sequences become go-pretty tables with an index header, trees become
// connected lists, and highlighted cells are coloured. With colour off the
// highlighted cells are wrapped in brackets instead so output stays
// readable in logs and golden tests.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/katalvlaran/structviz/bintree"
	"github.com/katalvlaran/structviz/graph"
	"github.com/katalvlaran/structviz/hashtable"
	"github.com/katalvlaran/structviz/linear"
	"github.com/katalvlaran/structviz/segtree"
	"github.com/katalvlaran/structviz/trace"
	"github.com/katalvlaran/structviz/tree"
	"github.com/katalvlaran/structviz/trie"
)

// Frame is one display step with string highlight keys.
type Frame = trace.Step[any, string]

// Terminal writes frames to w.
type Terminal struct {
	w      io.Writer
	plain  bool
	mark   *color.Color
	note   *color.Color
	result *color.Color
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithColor turns ANSI colour on or off. It defaults to on unless the
// NO_COLOR convention or a non-terminal output disabled fatih/color.
func WithColor(on bool) Option { return func(t *Terminal) { t.plain = !on } }

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		w:      w,
		plain:  color.NoColor,
		mark:   color.New(color.FgYellow, color.Bold),
		note:   color.New(color.FgCyan),
		result: color.New(color.FgGreen),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.plain {
		t.mark.DisableColor()
		t.note.DisableColor()
		t.result.DisableColor()
	}

	return t
}

// Show writes one frame: its note, the rendered state and the result if any.
func (t *Terminal) Show(title string, f Frame) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString(": ")
	}
	b.WriteString(t.note.Sprint(f.Note))
	b.WriteByte('\n')
	b.WriteString(t.Text(f.State, f.Highlight...))
	b.WriteByte('\n')
	if f.Result != nil {
		b.WriteString(t.result.Sprintf("=> %v", f.Result))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(t.w, b.String())

	return err
}

// Text renders state with the given keys highlighted.
func (t *Terminal) Text(state any, highlight ...string) string {
	hl := make(map[string]bool, len(highlight))
	for _, k := range highlight {
		hl[k] = true
	}
	d := drawer{t: t, hl: hl}

	switch s := state.(type) {
	case []int:
		return d.sequence(s)
	case []linear.ListNode:
		return d.chain(s)
	case hashtable.Buckets:
		return d.buckets(s)
	case *tree.Node:
		return d.tree(s)
	case *bintree.Node:
		return d.binary(s)
	case *trie.Node:
		return d.trie(s)
	case *segtree.State:
		return d.segments(s)
	case graph.Frame:
		return d.frontier(s)
	case *graph.State:
		return d.adjacency(s)
	case nil:
		return "(empty)"
	default:
		return fmt.Sprintf("%v", s)
	}
}

type drawer struct {
	t  *Terminal
	hl map[string]bool
}

func (d drawer) cell(key string, v any) string {
	s := fmt.Sprint(v)
	if !d.hl[key] {
		return s
	}
	if d.t.plain {
		return "[" + s + "]"
	}

	return d.t.mark.Sprint(s)
}

func newTable() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	return tw
}

func (d drawer) sequence(values []int) string {
	if len(values) == 0 {
		return "(empty)"
	}
	head := make(table.Row, len(values))
	row := make(table.Row, len(values))
	for i, v := range values {
		k := strconv.Itoa(i)
		head[i] = k
		row[i] = d.cell(k, v)
	}
	tw := newTable()
	tw.AppendHeader(head)
	tw.AppendRow(row)

	return tw.Render()
}

func (d drawer) chain(nodes []linear.ListNode) string {
	if len(nodes) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = d.cell(strconv.Itoa(n.ID), fmt.Sprintf("%d(#%d)", n.Value, n.ID))
	}

	return strings.Join(parts, " -> ") + " -> nil"
}

func (d drawer) buckets(b hashtable.Buckets) string {
	tw := newTable()
	tw.AppendHeader(table.Row{"#", "entries"})
	for i, bucket := range b {
		k := strconv.Itoa(i)
		entries := make([]string, len(bucket))
		for j, e := range bucket {
			entries[j] = e.Key + "=" + e.Value
		}
		tw.AppendRow(table.Row{d.cell(k, i), strings.Join(entries, ", ")})
	}

	return tw.Render()
}

func newList() list.Writer {
	lw := list.NewWriter()
	lw.SetStyle(list.StyleConnectedLight)

	return lw
}

func (d drawer) tree(root *tree.Node) string {
	if root == nil {
		return "(empty)"
	}
	lw := newList()
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		lw.AppendItem(d.cell(strconv.Itoa(n.ID), fmt.Sprintf("%d (#%d)", n.Value, n.ID)))
		if len(n.Children) == 0 {
			return
		}
		lw.Indent()
		for _, c := range n.Children {
			walk(c)
		}
		lw.UnIndent()
	}
	walk(root)

	return lw.Render()
}

func (d drawer) binary(root *bintree.Node) string {
	if root == nil {
		return "(empty)"
	}
	lw := newList()
	var walk func(n *bintree.Node, side string)
	walk = func(n *bintree.Node, side string) {
		if n == nil {
			lw.AppendItem(side + "·")
			return
		}
		lw.AppendItem(side + d.cell(strconv.Itoa(n.ID), n.Value))
		if n.Left == nil && n.Right == nil {
			return
		}
		lw.Indent()
		walk(n.Left, "L ")
		walk(n.Right, "R ")
		lw.UnIndent()
	}
	walk(root, "")

	return lw.Render()
}

func (d drawer) trie(root *trie.Node) string {
	if root == nil || len(root.Children) == 0 {
		return "(empty)"
	}
	lw := newList()
	var walk func(n *trie.Node)
	walk = func(n *trie.Node) {
		for _, k := range n.Keys() {
			c := n.Children[k]
			label := k
			if c.End {
				label += " •"
			}
			lw.AppendItem(d.cell(c.ID, label))
			if len(c.Children) > 0 {
				lw.Indent()
				walk(c)
				lw.UnIndent()
			}
		}
	}
	lw.AppendItem(d.cell(root.ID, "root"))
	lw.Indent()
	walk(root)
	lw.UnIndent()

	return lw.Render()
}

func (d drawer) segments(s *segtree.State) string {
	src := make(table.Row, 0, len(s.Source)+1)
	src = append(src, "source")
	for _, v := range s.Source {
		src = append(src, v)
	}
	tw := newTable()
	tw.AppendRow(src)

	nodes := make(table.Row, 0, len(s.Tree))
	nodes = append(nodes, "tree")
	for i := 1; i < len(s.Tree); i++ {
		nodes = append(nodes, d.cell(strconv.Itoa(i), s.Tree[i]))
	}
	tw2 := newTable()
	tw2.AppendRow(nodes)

	return tw.Render() + "\n" + tw2.Render()
}

func (d drawer) frontier(f graph.Frame) string {
	visited := make([]string, len(f.Visited))
	for i, id := range f.Visited {
		visited[i] = d.cell(id, id)
	}

	return fmt.Sprintf("visited: %s\nqueue:   %s", strings.Join(visited, " "), strings.Join(f.Queue, " "))
}

func (d drawer) adjacency(s *graph.State) string {
	if s == nil || len(s.Nodes) == 0 {
		return "(empty)"
	}
	tw := newTable()
	tw.AppendHeader(table.Row{"node", "neighbours"})
	for _, id := range s.Nodes {
		tw.AppendRow(table.Row{d.cell(id, id), strings.Join(s.Neighbors(id), ", ")})
	}

	return tw.Render()
}
