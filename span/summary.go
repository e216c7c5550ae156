package span

// Summary aggregates span-level text metrics for tree routing.
//
// Tree-level code uses summaries to navigate by character offset and to
// aggregate subtree sizes, while span code keeps ownership of local
// character/byte coordinate math.
type Summary struct {
	Spans uint64
	Bytes uint64
	Chars uint64
	Lines uint64
}

func summarize(content string) Summary {
	s := Summary{
		Spans: 1,
		Bytes: uint64(len(content)),
	}
	for _, r := range content {
		s.Chars++
		if r == '\n' {
			s.Lines++
		}
	}
	return s
}

// Monoid aggregates span summaries for sum-tree internal nodes.
type Monoid struct{}

// Zero returns the neutral summary value.
func (Monoid) Zero() Summary { return Summary{} }

// Add combines two summaries.
func (Monoid) Add(left, right Summary) Summary {
	return Summary{
		Spans: left.Spans + right.Spans,
		Bytes: left.Bytes + right.Bytes,
		Chars: left.Chars + right.Chars,
		Lines: left.Lines + right.Lines,
	}
}
