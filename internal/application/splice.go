package application

// spliceLines replaces lines[i][start:end] with insert. The first inserted
// line is joined to the text before start, the last one to the text after end,
// and the lines in between become new lines. Lines other than i are kept as is.
func spliceLines(lines []string, i, start, end int, insert []string) []string {
	if len(insert) == 0 {
		insert = []string{""}
	}
	line := lines[i]
	prefix, suffix := line[:start], line[end:]

	out := make([]string, 0, len(lines)+len(insert)-1)
	out = append(out, lines[:i]...)
	if len(insert) == 1 {
		out = append(out, prefix+insert[0]+suffix)
	} else {
		last := len(insert) - 1
		out = append(out, prefix+insert[0])
		out = append(out, insert[1:last]...)
		out = append(out, insert[last]+suffix)
	}
	return append(out, lines[i+1:]...)
}
