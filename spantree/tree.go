package spantree

import (
	"github.com/npillmayer/spans/span"
)

// Tree is a mutable summarized B+ tree over text spans.
//
// Leaves hold spans in character order; every node caches the aggregate
// summary of its subtree. Summaries are recomputed synchronously with each
// structural change, so cached lengths are never stale across a public call
// boundary. An empty tree (no root) is a valid state and reports length 0.
//
// The tree exclusively owns the spans it stores: a span is attached on
// insertion and detached on removal, and a span already owned by another
// container is rejected.
type Tree struct {
	root   treeNode
	height int // 0 means empty tree
}

// New creates an empty span tree.
func New() *Tree {
	return &Tree{}
}

// IsEmpty reports whether the tree has no spans.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.root == nil
}

// Summary returns the root summary, or the zero summary for an empty tree.
func (t *Tree) Summary() span.Summary {
	if t.IsEmpty() {
		return span.Summary{}
	}
	return t.root.summary()
}

// Len returns the total number of characters stored in the tree.
func (t *Tree) Len() int {
	return int(t.Summary().Chars)
}

// SpanCount returns the number of spans stored in the tree.
func (t *Tree) SpanCount() int {
	return int(t.Summary().Spans)
}

// Height returns the tree height, where 0 means empty and 1 means a leaf root.
func (t *Tree) Height() int {
	if t == nil {
		return 0
	}
	return t.height
}

// InsertSpansAt inserts spans before span index.
//
// All spans are validated before any structural change: nil spans,
// zero-length spans and spans attached to a container (including duplicates
// within the batch) are rejected, leaving the tree untouched.
func (t *Tree) InsertSpansAt(index int, spans ...*span.Span) error {
	assert(t != nil, "InsertSpansAt called on nil tree")
	if index < 0 || index > t.SpanCount() {
		return ErrIndexOutOfBounds
	}
	if len(spans) == 0 {
		return nil
	}
	seen := make(map[*span.Span]bool, len(spans))
	for _, sp := range spans {
		switch {
		case sp == nil:
			return ErrNilSpan
		case sp.IsEmpty():
			return ErrEmptySpan
		case sp.IsAttached(), seen[sp]:
			return ErrSpanAttached
		}
		seen[sp] = true
	}
	for i, sp := range spans {
		err := sp.Attach(t)
		assert(err == nil, "insert: validated span cannot fail to attach")
		t.insertOneAt(index+i, sp)
	}
	return nil
}

func (t *Tree) insertOneAt(index int, sp *span.Span) {
	if t.root == nil {
		t.root = makeLeaf([]*span.Span{sp})
		t.height = 1
		return
	}
	promoted := t.insertRecursive(t.root, t.height, index, sp)
	if promoted != nil {
		t.root = makeInner(t.root, promoted)
		t.height++
	}
}

// insertRecursive inserts one span into subtree n and returns a promoted
// right sibling when the subtree had to split.
func (t *Tree) insertRecursive(n treeNode, height, index int, sp *span.Span) treeNode {
	assert(n != nil, "insertRecursive called with nil node")
	assert(height > 0, "insertRecursive called with invalid height")
	if height == 1 {
		leaf, ok := n.(*leafNode)
		assert(ok, "insertRecursive expected leaf at height 1")
		insertLeafItemAt(leaf, index, sp)
		if len(leaf.items) <= MaxItems {
			return nil
		}
		mid := len(leaf.items) / 2
		right := makeLeaf(append([]*span.Span(nil), leaf.items[mid:]...))
		leaf.items = leaf.items[:mid]
		recomputeLeafSummary(leaf)
		return right
	}
	inner, ok := n.(*innerNode)
	assert(ok, "insertRecursive expected internal node")
	slot, local := locateChildForInsert(inner, index)
	promoted := t.insertRecursive(inner.children[slot], height-1, local, sp)
	if promoted != nil {
		insertChildAt(inner, slot+1, promoted)
	} else {
		recomputeInnerSummary(inner)
	}
	if len(inner.children) <= MaxChildren {
		return nil
	}
	mid := len(inner.children) / 2
	right := makeInner(append([]treeNode(nil), inner.children[mid:]...)...)
	inner.children = inner.children[:mid]
	recomputeInnerSummary(inner)
	return right
}

// RemoveSpansAt removes count spans starting at span index and returns them
// in order, detached from the tree.
func (t *Tree) RemoveSpansAt(index, count int) ([]*span.Span, error) {
	assert(t != nil, "RemoveSpansAt called on nil tree")
	if index < 0 || count < 0 || index+count > t.SpanCount() {
		return nil, ErrIndexOutOfBounds
	}
	if count == 0 {
		return nil, nil
	}
	removed := make([]*span.Span, 0, count)
	for i := 0; i < count; i++ {
		sp := t.removeOneAt(index)
		sp.Detach()
		removed = append(removed, sp)
	}
	if t.IsEmpty() {
		tracer().Debugf("span tree is empty after removal")
	}
	return removed, nil
}

func (t *Tree) removeOneAt(index int) *span.Span {
	assert(t.root != nil, "removeOneAt called on empty tree")
	removed, _ := t.deleteRecursive(t.root, t.height, index, true)
	t.normalizeRoot()
	return removed
}

// deleteRecursive removes the span at index from subtree n.
//
// The boolean result reports whether n violates its minimum occupancy, in
// which case the caller has to repair it via sibling borrow or merge.
func (t *Tree) deleteRecursive(n treeNode, height, index int, isRoot bool) (*span.Span, bool) {
	assert(n != nil, "deleteRecursive called with nil node")
	assert(height > 0, "deleteRecursive called with invalid height")
	if height == 1 {
		leaf, ok := n.(*leafNode)
		assert(ok, "deleteRecursive expected leaf at height 1")
		assert(index >= 0 && index < len(leaf.items), "deleteRecursive leaf index out of range")
		removed := leaf.items[index]
		removeLeafItemsRange(leaf, index, index+1)
		return removed, !isRoot && len(leaf.items) < Base
	}
	inner, ok := n.(*innerNode)
	assert(ok, "deleteRecursive expected internal node")
	slot, local := locateChildForRead(inner, index)
	removed, childUnderfull := t.deleteRecursive(inner.children[slot], height-1, local, false)
	recomputeInnerSummary(inner)
	if childUnderfull {
		t.rebalanceChildAfterDelete(inner, slot, height-1)
	}
	return removed, !isRoot && len(inner.children) < Base
}

// normalizeRoot canonicalizes the root after structural edits:
// an empty root leaf empties the tree, an internal root with a single child
// collapses repeatedly.
func (t *Tree) normalizeRoot() {
	if t.root == nil {
		t.height = 0
		return
	}
	for {
		if leaf, ok := t.root.(*leafNode); ok {
			if len(leaf.items) == 0 {
				t.root = nil
				t.height = 0
			}
			return
		}
		inner := t.root.(*innerNode)
		switch {
		case len(inner.children) == 0:
			t.root = nil
			t.height = 0
			return
		case len(inner.children) > 1:
			return
		}
		t.root = inner.children[0]
		t.height--
	}
}

func (t *Tree) rebalanceChildAfterDelete(parent *innerNode, slot, childHeight int) {
	assert(slot >= 0 && slot < len(parent.children), "rebalance slot out of range")
	assert(childHeight > 0, "rebalance childHeight must be positive")
	if childHeight == 1 {
		t.rebalanceLeafChild(parent, slot)
		return
	}
	t.rebalanceInnerChild(parent, slot)
}

// applyRebalancePolicy centralizes the sibling operation order after delete:
// borrow-left, borrow-right, merge-left, merge-right.
func applyRebalancePolicy(parent *innerNode, slot int,
	borrowLeft func() bool,
	borrowRight func() bool,
	mergeLeft func() bool,
	mergeRight func() bool,
) bool {
	hasLeft := slot > 0
	hasRight := slot+1 < len(parent.children)
	if hasLeft && borrowLeft() {
		return true
	}
	if hasRight && borrowRight() {
		return true
	}
	if hasLeft && mergeLeft() {
		return true
	}
	if hasRight && mergeRight() {
		return true
	}
	return false
}

func (t *Tree) rebalanceLeafChild(parent *innerNode, slot int) {
	child, ok := parent.children[slot].(*leafNode)
	assert(ok, "rebalanceLeafChild expected leaf child")
	if len(child.items) >= Base {
		return
	}
	resolved := applyRebalancePolicy(
		parent, slot,
		func() bool {
			left := parent.children[slot-1].(*leafNode)
			if len(left.items) <= Base {
				return false
			}
			borrowed := left.items[len(left.items)-1]
			removeLeafItemsRange(left, len(left.items)-1, len(left.items))
			insertLeafItemAt(child, 0, borrowed)
			return true
		},
		func() bool {
			right := parent.children[slot+1].(*leafNode)
			if len(right.items) <= Base {
				return false
			}
			borrowed := right.items[0]
			removeLeafItemsRange(right, 0, 1)
			insertLeafItemAt(child, len(child.items), borrowed)
			return true
		},
		func() bool {
			left := parent.children[slot-1].(*leafNode)
			merged := make([]*span.Span, 0, len(left.items)+len(child.items))
			merged = append(merged, left.items...)
			merged = append(merged, child.items...)
			parent.children[slot-1] = makeLeaf(merged)
			removeChildAt(parent, slot)
			return true
		},
		func() bool {
			right := parent.children[slot+1].(*leafNode)
			merged := make([]*span.Span, 0, len(child.items)+len(right.items))
			merged = append(merged, child.items...)
			merged = append(merged, right.items...)
			parent.children[slot] = makeLeaf(merged)
			removeChildAt(parent, slot+1)
			return true
		},
	)
	assert(resolved, "leaf rebalancing must resolve via borrow or merge")
	recomputeInnerSummary(parent)
}

func (t *Tree) rebalanceInnerChild(parent *innerNode, slot int) {
	child, ok := parent.children[slot].(*innerNode)
	assert(ok, "rebalanceInnerChild expected internal child")
	if len(child.children) >= Base {
		return
	}
	resolved := applyRebalancePolicy(
		parent, slot,
		func() bool {
			left := parent.children[slot-1].(*innerNode)
			if len(left.children) <= Base {
				return false
			}
			borrowed := left.children[len(left.children)-1]
			removeChildAt(left, len(left.children)-1)
			insertChildAt(child, 0, borrowed)
			return true
		},
		func() bool {
			right := parent.children[slot+1].(*innerNode)
			if len(right.children) <= Base {
				return false
			}
			borrowed := right.children[0]
			removeChildAt(right, 0)
			insertChildAt(child, len(child.children), borrowed)
			return true
		},
		func() bool {
			left := parent.children[slot-1].(*innerNode)
			merged := make([]treeNode, 0, len(left.children)+len(child.children))
			merged = append(merged, left.children...)
			merged = append(merged, child.children...)
			parent.children[slot-1] = makeInner(merged...)
			removeChildAt(parent, slot)
			return true
		},
		func() bool {
			right := parent.children[slot+1].(*innerNode)
			merged := make([]treeNode, 0, len(child.children)+len(right.children))
			merged = append(merged, child.children...)
			merged = append(merged, right.children...)
			parent.children[slot] = makeInner(merged...)
			removeChildAt(parent, slot+1)
			return true
		},
	)
	assert(resolved, "internal rebalancing must resolve via borrow or merge")
	recomputeInnerSummary(parent)
}

// Clone deep-clones the tree. Cloned spans are independent copies owned by
// the new tree; the receiver is left untouched.
func (t *Tree) Clone() *Tree {
	out := New()
	if t.IsEmpty() {
		return out
	}
	out.root = out.adoptClone(t.root)
	out.height = t.height
	return out
}

// adoptClone clones subtree n, attaching every cloned span to the receiver.
func (t *Tree) adoptClone(n treeNode) treeNode {
	if n.isLeaf() {
		src := n.(*leafNode)
		items := make([]*span.Span, len(src.items))
		for i, sp := range src.items {
			cloned := sp.Clone()
			err := cloned.Attach(t)
			assert(err == nil, "clone: fresh span cannot fail to attach")
			items[i] = cloned
		}
		return makeLeaf(items)
	}
	src := n.(*innerNode)
	children := make([]treeNode, len(src.children))
	for i, child := range src.children {
		children[i] = t.adoptClone(child)
	}
	return makeInner(children...)
}
