package spantree

import "github.com/npillmayer/spans/span"

// EachSpan visits count spans starting at span index, in order.
//
// The visitor receives each span's absolute index. Iteration is synchronous
// and finite; it stops at the first visitor error and returns that error.
func (t *Tree) EachSpan(index, count int, visit func(int, *span.Span) error) error {
	if index < 0 || count < 0 || index+count > t.SpanCount() {
		return ErrIndexOutOfBounds
	}
	if count == 0 {
		return nil
	}
	_, err := eachSpanUnder(t.root, index, count, index, visit)
	return err
}

// eachSpanUnder visits up to count spans of subtree n after skipping skip
// spans; base is the absolute index of the first visited span.
func eachSpanUnder(n treeNode, skip, count, base int, visit func(int, *span.Span) error) (int, error) {
	if n.isLeaf() {
		leaf := n.(*leafNode)
		visited := 0
		for i := skip; i < len(leaf.items) && visited < count; i++ {
			if err := visit(base+visited, leaf.items[i]); err != nil {
				return visited, err
			}
			visited++
		}
		return visited, nil
	}
	inner := n.(*innerNode)
	visited := 0
	for _, child := range inner.children {
		if visited == count {
			break
		}
		cnt := nodeSpans(child)
		if skip >= cnt {
			skip -= cnt
			continue
		}
		v, err := eachSpanUnder(child, skip, count-visited, base+visited, visit)
		visited += v
		if err != nil {
			return visited, err
		}
		skip = 0
	}
	return visited, nil
}

// DebugNode describes one tree node during a structural Walk.
type DebugNode struct {
	Depth   int
	Leaf    bool
	Summary span.Summary
	Items   []*span.Span // spans of a leaf node, nil for internal nodes
}

// Walk visits all tree nodes depth-first in pre-order, for diagnostics.
// The visitor returns false to stop the traversal.
func (t *Tree) Walk(visit func(DebugNode) bool) {
	if t.IsEmpty() {
		return
	}
	walkNode(t.root, 0, visit)
}

func walkNode(n treeNode, depth int, visit func(DebugNode) bool) bool {
	if n.isLeaf() {
		leaf := n.(*leafNode)
		return visit(DebugNode{Depth: depth, Leaf: true, Summary: leaf.sum, Items: leaf.items})
	}
	inner := n.(*innerNode)
	if !visit(DebugNode{Depth: depth, Summary: inner.sum}) {
		return false
	}
	for _, child := range inner.children {
		if !walkNode(child, depth+1, visit) {
			return false
		}
	}
	return true
}
