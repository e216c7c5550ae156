package spantree

import "github.com/npillmayer/spans/span"

// Info describes the position of a character location within the tree.
type Info struct {
	Span   *span.Span // span owning the location
	Index  int        // span index within the tree
	Start  int        // character offset of the span's first character
	Offset int        // character offset of the location within the span
}

// SpanAt returns the span at span index.
func (t *Tree) SpanAt(index int) (*span.Span, error) {
	if t.IsEmpty() || index < 0 || index >= t.SpanCount() {
		return nil, ErrIndexOutOfBounds
	}
	node, height, remaining := t.root, t.height, index
	for height > 1 {
		inner := node.(*innerNode)
		slot, local := locateChildForRead(inner, remaining)
		node = inner.children[slot]
		remaining = local
		height--
	}
	leaf := node.(*leafNode)
	return leaf.items[remaining], nil
}

// Spans returns the count spans starting at span index, in order.
func (t *Tree) Spans(index, count int) ([]*span.Span, error) {
	if index < 0 || count < 0 || index+count > t.SpanCount() {
		return nil, ErrIndexOutOfBounds
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]*span.Span, 0, count)
	err := t.EachSpan(index, count, func(_ int, sp *span.Span) error {
		out = append(out, sp)
		return nil
	})
	assert(err == nil, "Spans: in-range iteration cannot fail")
	return out, nil
}

// Locate resolves a global character location to its owning span.
//
// At a boundary between two spans the tie-break is controlled by chooseRight:
// false prefers the end of the left span (Offset == Span.Len()), true prefers
// the start of the right span (Offset == 0). When location equals the total
// length there is no span to the right, so the rightmost span is chosen with
// Offset equal to its length.
func (t *Tree) Locate(location int, chooseRight bool) (Info, error) {
	if t.IsEmpty() {
		return Info{}, ErrEmptyTree
	}
	if location < 0 || location > t.Len() {
		return Info{}, ErrLocationOutOfBounds
	}
	node, height := t.root, t.height
	index, start, remaining := 0, 0, location
	for {
		if height == 1 {
			leaf := node.(*leafNode)
			for i, sp := range leaf.items {
				n := sp.Len()
				last := i == len(leaf.items)-1
				if remaining < n || (remaining == n && (!chooseRight || last)) {
					return Info{Span: sp, Index: index, Start: start, Offset: remaining}, nil
				}
				remaining -= n
				index++
				start += n
			}
			assert(false, "Locate ran past the last span of a leaf")
		}
		inner := node.(*innerNode)
		descended := false
		for i, child := range inner.children {
			chars := nodeChars(child)
			last := i == len(inner.children)-1
			if remaining < chars || (remaining == chars && (!chooseRight || last)) {
				node = child
				height--
				descended = true
				break
			}
			remaining -= chars
			index += nodeSpans(child)
			start += chars
		}
		assert(descended, "Locate ran past the last child of an internal node")
	}
}

// OffsetOfSpan returns the character offset of the first character of the
// span at index. index may equal SpanCount, in which case the total character
// length is returned.
func (t *Tree) OffsetOfSpan(index int) (int, error) {
	if index < 0 || index > t.SpanCount() {
		return 0, ErrIndexOutOfBounds
	}
	if index == t.SpanCount() {
		return t.Len(), nil
	}
	node, height := t.root, t.height
	remaining, start := index, 0
	for height > 1 {
		inner := node.(*innerNode)
		descended := false
		for _, child := range inner.children {
			cnt := nodeSpans(child)
			if remaining < cnt {
				node = child
				height--
				descended = true
				break
			}
			remaining -= cnt
			start += nodeChars(child)
		}
		assert(descended, "OffsetOfSpan ran past subtree span count")
	}
	leaf := node.(*leafNode)
	for i := 0; i < remaining; i++ {
		start += leaf.items[i].Len()
	}
	return start, nil
}

// EditSpanAt applies edit to the span at index and refreshes the cached
// summaries along the access path atomically with the edit.
//
// When edit returns an error the span must be unchanged; no summary is
// touched in that case. An edit must never leave a zero-length span behind.
func (t *Tree) EditSpanAt(index int, edit func(*span.Span) error) error {
	if t.IsEmpty() || index < 0 || index >= t.SpanCount() {
		return ErrIndexOutOfBounds
	}
	return t.editRecursive(t.root, t.height, index, edit)
}

func (t *Tree) editRecursive(n treeNode, height, index int, edit func(*span.Span) error) error {
	if height == 1 {
		leaf := n.(*leafNode)
		sp := leaf.items[index]
		if err := edit(sp); err != nil {
			return err
		}
		assert(!sp.IsEmpty(), "edit left a zero-length span behind")
		recomputeLeafSummary(leaf)
		return nil
	}
	inner := n.(*innerNode)
	slot, local := locateChildForRead(inner, index)
	if err := t.editRecursive(inner.children[slot], height-1, local, edit); err != nil {
		return err
	}
	recomputeInnerSummary(inner)
	return nil
}
