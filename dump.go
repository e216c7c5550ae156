package spans

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file in the repository root.

*/

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/npillmayer/spans/span"
	"github.com/npillmayer/spans/spantree"
	"golang.org/x/term"
)

// Buffer2Dot outputs the internal structure of a SpanBuffer in Graphviz DOT
// format (for debugging purposes).
func Buffer2Dot(buf *SpanBuffer, w io.Writer) {
	tree2Dot(buf.tree, w)
}

// Index2Dot outputs the internal structure of a SpanIndex in Graphviz DOT
// format (for debugging purposes).
func Index2Dot(idx *SpanIndex, w io.Writer) {
	tree2Dot(idx.tree, w)
}

func tree2Dot(tree *spantree.Tree, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	// pre-order walk; parents[d] is the DOT id of the last node seen at depth d
	id := 0
	parents := make([]int, 0, 8)
	tree.Walk(func(node spantree.DebugNode) bool {
		id++
		if len(parents) <= node.Depth {
			parents = append(parents, id)
		} else {
			parents = parents[:node.Depth+1]
			parents[node.Depth] = id
		}
		if node.Depth > 0 {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", parents[node.Depth-1], id)
		}
		if node.Leaf {
			label := fmt.Sprintf("%d|%d\\n“%s”", node.Summary.Spans, node.Summary.Chars,
				dotEscape(leafPreview(node.Items)))
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\",style=filled,shape=box];\n", id, label)
		} else {
			nodelist += fmt.Sprintf("\"%d\" [label=\"%d|%d\",style=filled,color=black,fillcolor=\"#a3d7e4\",shape=circle];\n",
				id, node.Summary.Spans, node.Summary.Chars)
		}
		return true
	})
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func leafPreview(items []*span.Span) string {
	var bf strings.Builder
	for i, sp := range items {
		if i > 0 {
			bf.WriteByte('|')
		}
		bf.WriteString(sp.String())
	}
	return shorten(bf.String(), 24)
}

func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

// DumpBuffer writes an indented structural dump of a buffer to w, one line
// per tree node, with span contents shortened to the terminal width.
//
// Inner nodes are printed with their aggregate summary, leaves with the
// contents of their spans. Output is colorized when w is a color-capable
// writer (see package github.com/fatih/color).
func DumpBuffer(buf *SpanBuffer, w io.Writer) {
	dumpTree(buf.tree, w)
}

// DumpIndex writes an indented structural dump of an index to w, analogous
// to DumpBuffer.
func DumpIndex(idx *SpanIndex, w io.Writer) {
	dumpTree(idx.tree, w)
}

var (
	innerColor = color.New(color.FgBlue)
	leafColor  = color.New(color.FgCyan)
	textColor  = color.New(color.Faint)
)

func dumpTree(tree *spantree.Tree, w io.Writer) {
	if tree.IsEmpty() {
		fmt.Fprintln(w, "(void)")
		return
	}
	width := lineWidth()
	tree.Walk(func(node spantree.DebugNode) bool {
		indent := strings.Repeat("    ", node.Depth)
		if node.Leaf {
			leafColor.Fprintf(w, "%s▪ leaf %d spans, %d chars, %d lines\n", indent,
				node.Summary.Spans, node.Summary.Chars, node.Summary.Lines)
			for _, sp := range node.Items {
				room := width - len(indent) - 8
				textColor.Fprintf(w, "%s    “%s”\n", indent, shorten(sp.String(), room))
			}
		} else {
			innerColor.Fprintf(w, "%s● node %d spans, %d chars, %d lines\n", indent,
				node.Summary.Spans, node.Summary.Chars, node.Summary.Lines)
		}
		return true
	})
}

// lineWidth checks wether stdout is a terminal, and if so reads the
// terminal's width to shorten dumped span contents accordingly.
func lineWidth() int {
	if !term.IsTerminal(0) {
		return 65
	}
	w, _, err := term.GetSize(0)
	if err != nil || w < 10 {
		return 65
	}
	if w > 65 {
		return w - 10
	}
	return w
}

// shorten cuts text to at most max characters, marking the cut with an
// ellipsis and flattening newlines.
func shorten(text string, max int) string {
	if max < 4 {
		max = 4
	}
	text = strings.ReplaceAll(text, "\n", "␤")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}
