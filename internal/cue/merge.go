package cue

import "strings"

// MergedAdjacent joins runs of cues split across several entries. While a
// cue's text ends with symbol, the following cue is folded into it: the
// symbol is stripped from both sides of the join, the texts are joined with a
// newline and the end time is extended. The shift of x is preserved.
func (x *Index) MergedAdjacent(symbol string) *Index {
	if x == nil {
		return nil
	}
	if symbol == "" || len(x.base) < 2 {
		return newIndex(x.base, x.offset)
	}

	merged := make([]Cue, 0, len(x.base))
	for _, c := range x.base {
		c.Text = cleanText(c.Text)
		if n := len(merged); n > 0 && strings.HasSuffix(merged[n-1].Text, symbol) {
			last := &merged[n-1]
			head := strings.TrimSpace(strings.TrimSuffix(last.Text, symbol))
			tail := strings.TrimSpace(strings.TrimPrefix(c.Text, symbol))
			last.Text = head + "\n" + tail
			last.End = max(last.End, c.End)
			continue
		}
		merged = append(merged, c)
	}
	return newIndex(merged, x.offset)
}

func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r", ""))
}
