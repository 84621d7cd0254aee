package bbs

import "fmt"

// ZeroPad formats a code as a zero-padded string of the given width, the
// fixed-width form the BBS distribution files use for AOU and route codes.
func ZeroPad(code, width int) string {
	return fmt.Sprintf("%0*d", width, code)
}

// CodeSet is a set of AOU species codes expressed as inclusive ranges and
// individual codes. The quality filter consumes one at construction so the
// exclusion list stays a named piece of data rather than scattered
// literals.
type CodeSet struct {
	ranges []codeRange
	codes  map[int]struct{}
}

type codeRange struct {
	lo, hi int // inclusive bounds
}

// NewCodeSet returns an empty code set.
func NewCodeSet() *CodeSet {
	return &CodeSet{codes: make(map[int]struct{})}
}

// AddRange includes every code in [lo, hi]. Inverted bounds are swapped.
func (cs *CodeSet) AddRange(lo, hi int) *CodeSet {
	if lo > hi {
		lo, hi = hi, lo
	}
	cs.ranges = append(cs.ranges, codeRange{lo: lo, hi: hi})
	return cs
}

// Add includes the given individual codes.
func (cs *CodeSet) Add(codes ...int) *CodeSet {
	for _, code := range codes {
		cs.codes[code] = struct{}{}
	}
	return cs
}

// Contains reports whether the code is in the set.
func (cs *CodeSet) Contains(code int) bool {
	if cs == nil {
		return false
	}
	if _, ok := cs.codes[code]; ok {
		return true
	}
	for _, r := range cs.ranges {
		if code >= r.lo && code <= r.hi {
			return true
		}
	}
	return false
}

// DefaultExclusions returns the fixed set of AOU codes the standard
// quality filter drops: taxa the roadside point-count method samples
// unreliably.
func DefaultExclusions() *CodeSet {
	return NewCodeSet().
		// Aquatic and nocturnal groups below the passerine range: loons,
		// grebes, waterfowl, gulls, terns, shorebirds, raptors and owls
		AddRange(1, 399).
		// Nighthawks and poorwills, crepuscular
		Add(420, 421)
}
