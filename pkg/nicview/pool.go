package nicview

import "sort"

// Pool is the mutable arena of not-yet-matched card groups. Matching removes
// groups one by one; first-match-wins semantics depend on the caller walking
// its cards in canonical order.
type Pool struct {
	groups []*NicGroup
}

// NewPool builds a pool with the groups ranked by NicGroup ordering.
func NewPool(groups []*NicGroup) *Pool {
	sorted := make([]*NicGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	return &Pool{groups: sorted}
}

// Take removes and returns the first group satisfying match, or nil.
func (p *Pool) Take(match func(*NicGroup) bool) *NicGroup {
	for i, g := range p.groups {
		if match(g) {
			p.groups = append(p.groups[:i], p.groups[i+1:]...)
			return g
		}
	}
	return nil
}

// Remaining returns the groups still available, in pool order.
func (p *Pool) Remaining() []*NicGroup {
	out := make([]*NicGroup, len(p.groups))
	copy(out, p.groups)
	return out
}

// Len returns the number of groups still available.
func (p *Pool) Len() int {
	return len(p.groups)
}
