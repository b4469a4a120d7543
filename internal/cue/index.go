package cue

import (
	"slices"
	"sort"
	"time"
)

// Index is an immutable, start-ordered collection of cues.
//
// The index keeps the unshifted base cues and the cumulative offset, so a
// chain of Shifted calls never compounds the clamping at zero.
type Index struct {
	base   []Cue
	offset time.Duration
	cues   []Cue
	maxEnd []time.Duration // maxEnd[i] is the latest End among cues[:i+1]
}

// NewIndex builds an index from parsed cues. Input order does not matter.
// Cues whose end is not after their start are dropped and reported as
// *MalformedCueError values; the returned index is always usable.
func NewIndex(cues []Cue) (*Index, []error) {
	var errs []error
	base := make([]Cue, 0, len(cues))
	for i, c := range cues {
		if !c.Valid() {
			errs = append(errs, &MalformedCueError{Position: i, Cue: c})
			continue
		}
		base = append(base, c)
	}

	sort.SliceStable(base, func(i, j int) bool {
		return base[i].Start < base[j].Start
	})

	return newIndex(base, 0), errs
}

func newIndex(base []Cue, offset time.Duration) *Index {
	idx := &Index{base: base, offset: offset, cues: base}
	if offset != 0 {
		idx.cues = make([]Cue, len(base))
		for i, c := range base {
			idx.cues[i] = Cue{
				Start: clamp(c.Start + offset),
				End:   clamp(c.End + offset),
				Text:  c.Text,
			}
		}
	}
	idx.maxEnd = make([]time.Duration, len(idx.cues))
	var latest time.Duration
	for i, c := range idx.cues {
		latest = max(latest, c.End)
		idx.maxEnd[i] = latest
	}
	return idx
}

func clamp(d time.Duration) time.Duration {
	return max(d, 0)
}

// Len returns the number of cues.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.cues)
}

// At returns the cue at position i.
func (x *Index) At(i int) Cue {
	return x.cues[i]
}

// Cues returns a copy of the cues in start order.
func (x *Index) Cues() []Cue {
	if x == nil {
		return nil
	}
	return slices.Clone(x.cues)
}

// Offset returns the cumulative time shift applied to the base cues.
func (x *Index) Offset() time.Duration {
	if x == nil {
		return 0
	}
	return x.offset
}

// FindActive returns the index of the cue whose [Start, End) contains t.
func (x *Index) FindActive(t time.Duration) (int, bool) {
	n := x.Len()
	if n == 0 {
		return -1, false
	}
	// Last cue starting at or before t.
	i := sort.Search(n, func(i int) bool { return x.cues[i].Start > t }) - 1
	// Overlapping cues: walk back only while some earlier cue ends after t.
	for ; i >= 0 && x.maxEnd[i] > t; i-- {
		if x.cues[i].Contains(t) {
			return i, true
		}
	}
	return -1, false
}

// FindNextIndex returns the index of the first cue starting after t, the last
// index when t is past every cue, and 0 for an empty index.
func (x *Index) FindNextIndex(t time.Duration) int {
	n := x.Len()
	if n == 0 {
		return 0
	}
	i := sort.Search(n, func(i int) bool { return x.cues[i].Start > t })
	if i >= n {
		return n - 1
	}
	return i
}

// Shifted returns a new index with every cue moved by delta, clamped at zero.
func (x *Index) Shifted(delta time.Duration) *Index {
	if x == nil {
		return newIndex(nil, delta)
	}
	return newIndex(x.base, x.offset+delta)
}
