package spantree

import (
	"fmt"

	"github.com/npillmayer/spans/span"
)

// Check validates the structural invariants of the tree.
//
// This checker is intentionally strict and is meant for tests: cached
// summaries diverging from live content are a programming defect, not a
// recoverable runtime condition.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariant)
	}
	if t.root == nil {
		if t.height != 0 {
			return fmt.Errorf("%w: empty tree must have height=0", ErrInvariant)
		}
		return nil
	}
	if t.height <= 0 {
		return fmt.Errorf("%w: non-empty tree must have height > 0", ErrInvariant)
	}
	_, height, err := t.checkNode(t.root, true)
	if err != nil {
		return err
	}
	if height != t.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvariant, height, t.height)
	}
	return nil
}

func (t *Tree) checkNode(n treeNode, isRoot bool) (sum span.Summary, height int, err error) {
	if n == nil {
		return sum, 0, fmt.Errorf("%w: nil node", ErrInvariant)
	}
	m := span.Monoid{}
	if n.isLeaf() {
		leaf := n.(*leafNode)
		if len(leaf.items) == 0 {
			return sum, 0, fmt.Errorf("%w: leaf node has no spans", ErrInvariant)
		}
		if len(leaf.items) > MaxItems {
			return sum, 0, fmt.Errorf("%w: leaf holds %d spans, max is %d",
				ErrInvariant, len(leaf.items), MaxItems)
		}
		if !isRoot && len(leaf.items) < Base {
			return sum, 0, fmt.Errorf("%w: non-root leaf holds %d spans, min is %d",
				ErrInvariant, len(leaf.items), Base)
		}
		live := m.Zero()
		for i, sp := range leaf.items {
			if sp == nil {
				return sum, 0, fmt.Errorf("%w: nil span at leaf slot %d", ErrInvariant, i)
			}
			if sp.IsEmpty() {
				return sum, 0, fmt.Errorf("%w: zero-length span at leaf slot %d", ErrInvariant, i)
			}
			if sp.Parent() != any(t) {
				return sum, 0, fmt.Errorf("%w: span at leaf slot %d not attached to this tree",
					ErrInvariant, i)
			}
			live = m.Add(live, sp.Summary())
		}
		if live != leaf.sum {
			return sum, 0, fmt.Errorf("%w: stale leaf summary (%+v != %+v)",
				ErrInvariant, leaf.sum, live)
		}
		return leaf.sum, 1, nil
	}
	inner := n.(*innerNode)
	if len(inner.children) == 0 {
		return sum, 0, fmt.Errorf("%w: internal node has no children", ErrInvariant)
	}
	if len(inner.children) > MaxChildren {
		return sum, 0, fmt.Errorf("%w: child count %d exceeds fanout %d",
			ErrInvariant, len(inner.children), MaxChildren)
	}
	min := Base
	if isRoot {
		min = 2
	}
	if len(inner.children) < min {
		return sum, 0, fmt.Errorf("%w: child count %d below minimum %d",
			ErrInvariant, len(inner.children), min)
	}
	live := m.Zero()
	var childHeight int
	for i, child := range inner.children {
		cSum, cHeight, cErr := t.checkNode(child, false)
		if cErr != nil {
			return sum, 0, cErr
		}
		live = m.Add(live, cSum)
		if i == 0 {
			childHeight = cHeight
		} else if cHeight != childHeight {
			return sum, 0, fmt.Errorf("%w: non-uniform subtree heights", ErrInvariant)
		}
	}
	if live != inner.sum {
		return sum, 0, fmt.Errorf("%w: stale internal summary (%+v != %+v)",
			ErrInvariant, inner.sum, live)
	}
	return inner.sum, childHeight + 1, nil
}
