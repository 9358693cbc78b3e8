package schedule

// Policy picks the next ready firing (all dependencies complete) to
// place. Closed to the two members spec §4.E names.
type Policy interface {
	Pick(ready []*Firing) *Firing
}

// ListPolicy prioritizes firings by topological depth (deepest first),
// tie-breaking by descending critical-path-remaining, and finally by
// the order firings became ready (spec §4.E: "ties in the dependency
// computation break toward the lower source index" generalizes here to
// break toward whichever became ready earliest).
type ListPolicy struct{}

func (ListPolicy) Pick(ready []*Firing) *Firing {
	if len(ready) == 0 {
		return nil
	}
	best := ready[0]
	for _, f := range ready[1:] {
		switch {
		case f.depth != best.depth:
			if f.depth > best.depth {
				best = f
			}
		case f.critical != best.critical:
			if f.critical > best.critical {
				best = f
			}
		case f.order < best.order:
			best = f
		}
	}
	return best
}

// GreedyPolicy picks whichever ready firing became ready first (spec
// §4.E: "first-ready, first-mapped").
type GreedyPolicy struct{}

func (GreedyPolicy) Pick(ready []*Firing) *Firing {
	if len(ready) == 0 {
		return nil
	}
	best := ready[0]
	for _, f := range ready[1:] {
		if f.order < best.order {
			best = f
		}
	}
	return best
}
