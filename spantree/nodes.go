package spantree

import "github.com/npillmayer/spans/span"

const (
	// Base is the minimum occupancy of non-root nodes.
	Base = 6
	// MaxItems is the maximum number of spans held by a leaf.
	MaxItems = 2 * Base
	// MaxChildren is the maximum fanout of internal nodes.
	MaxChildren = 2 * Base
)

type treeNode interface {
	isLeaf() bool
	summary() span.Summary
}

type leafNode struct {
	sum   span.Summary
	items []*span.Span
}

func (l *leafNode) isLeaf() bool          { return true }
func (l *leafNode) summary() span.Summary { return l.sum }

type innerNode struct {
	sum      span.Summary
	children []treeNode
}

func (n *innerNode) isLeaf() bool          { return false }
func (n *innerNode) summary() span.Summary { return n.sum }

func nodeSpans(n treeNode) int { return int(n.summary().Spans) }
func nodeChars(n treeNode) int { return int(n.summary().Chars) }

func makeLeaf(items []*span.Span) *leafNode {
	l := &leafNode{items: items}
	recomputeLeafSummary(l)
	return l
}

func makeInner(children ...treeNode) *innerNode {
	n := &innerNode{children: children}
	recomputeInnerSummary(n)
	return n
}

func recomputeLeafSummary(l *leafNode) {
	m := span.Monoid{}
	s := m.Zero()
	for _, sp := range l.items {
		s = m.Add(s, sp.Summary())
	}
	l.sum = s
}

func recomputeInnerSummary(n *innerNode) {
	m := span.Monoid{}
	s := m.Zero()
	for _, child := range n.children {
		s = m.Add(s, child.summary())
	}
	n.sum = s
}

// insertLeafItemAt inserts one span and recomputes the leaf summary.
func insertLeafItemAt(l *leafNode, index int, sp *span.Span) {
	l.items = append(l.items, nil)
	copy(l.items[index+1:], l.items[index:])
	l.items[index] = sp
	recomputeLeafSummary(l)
}

// removeLeafItemsRange removes items [from,to) and recomputes the leaf summary.
func removeLeafItemsRange(l *leafNode, from, to int) {
	l.items = append(l.items[:from], l.items[to:]...)
	recomputeLeafSummary(l)
}

// insertChildAt inserts one child and recomputes the node summary.
func insertChildAt(n *innerNode, index int, child treeNode) {
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	recomputeInnerSummary(n)
}

// removeChildAt removes one child and recomputes the node summary.
func removeChildAt(n *innerNode, index int) {
	n.children = append(n.children[:index], n.children[index+1:]...)
	recomputeInnerSummary(n)
}

// locateChildForInsert maps a subtree span index to child slot + local index.
//
// It uses `remaining <= childSpans` so boundary indices land in the left
// child, matching insertion semantics at child seams.
func locateChildForInsert(inner *innerNode, index int) (childSlot int, localIndex int) {
	assert(len(inner.children) > 0, "locateChildForInsert called with empty children")
	assert(index >= 0, "locateChildForInsert called with negative index")
	remaining := index
	for i, child := range inner.children {
		cnt := nodeSpans(child)
		if remaining <= cnt {
			return i, remaining
		}
		remaining -= cnt
	}
	assert(false, "locateChildForInsert index exceeded subtree span count")
	return 0, 0
}

// locateChildForRead maps a subtree span index to child slot + local index.
//
// It uses `remaining < childSpans` so each absolute index is owned by exactly
// one child.
func locateChildForRead(inner *innerNode, index int) (childSlot int, localIndex int) {
	assert(len(inner.children) > 0, "locateChildForRead called with empty children")
	assert(index >= 0, "locateChildForRead called with negative index")
	remaining := index
	for i, child := range inner.children {
		cnt := nodeSpans(child)
		if remaining < cnt {
			return i, remaining
		}
		remaining -= cnt
	}
	assert(false, "locateChildForRead index exceeded subtree span count")
	return 0, 0
}
