package keepsorted

// Item is one sortable entry of a region: the comment lines directly above
// it and its code lines. Code spans several lines only when a single entry
// continues across lines.
type Item struct {
	Comments []string
	Code     []string
}

// Lines returns the comments followed by the code.
func (it Item) Lines() []string {
	lines := make([]string, 0, len(it.Comments)+len(it.Code))
	lines = append(lines, it.Comments...)

	return append(lines, it.Code...)
}

// Block is the parsed content of one region.
type Block struct {
	Items []Item
	// Trailing holds comments after the last item. They never move.
	Trailing []string
}

// Lines reassembles the block in its current item order.
func (b Block) Lines() []string {
	var lines []string
	for _, it := range b.Items {
		lines = append(lines, it.Lines()...)
	}

	return append(lines, b.Trailing...)
}

// Segment groups the lines of a region into items for dialect d.
//
// Comment lines accumulate until the next code line, which closes an item.
// In [DependencyTable] files a value that opens a '{' or '[' without closing
// it keeps the item open until the bracket depth returns to zero.
func Segment(d Dialect, lines []string) Block {
	var (
		b        Block
		comments []string
		code     []string
		depth    int
	)

	for _, line := range lines {
		if len(code) > 0 {
			// Continuation of a multi-line value.
			code = append(code, line)
			depth += bracketDelta(stripComment(line), "{[", "}]")

			if depth <= 0 {
				b.Items = append(b.Items, Item{Comments: comments, Code: code})
				comments, code, depth = nil, nil, 0
			}

			continue
		}

		if IsComment(d, line) {
			comments = append(comments, line)
			continue
		}

		if d == DependencyTable {
			depth = bracketDelta(stripComment(line), "{[", "}]")
			if depth > 0 {
				code = []string{line}
				continue
			}
		}

		b.Items = append(b.Items, Item{Comments: comments, Code: []string{line}})
		comments = nil
	}

	if len(code) > 0 {
		// Unterminated value: keep it as the last item.
		b.Items = append(b.Items, Item{Comments: comments, Code: code})
		comments = nil
	}

	b.Trailing = comments

	return b
}
