package touchpoint

// resolver holds the per-resolution scratch space. checked[i] marks that
// candidate i was fully evaluated in the cheap pass; it is owned by a single
// resolve call and reused between calls.
type resolver struct {
	checked []bool
}

// noBestPriority is below every valid priority so the first hit always wins.
const noBestPriority = -1

// best runs the two-pass search and returns the winning candidate, or nil.
//
// Pass 1 walks every candidate that needs no exact test and can still beat the
// current best, running its cheap test. Pass 2 walks the exact candidates that
// could still beat the result of pass 1 and runs cheap then exact tests, so
// each exact test runs at most once and only when its candidate can win.
func (r *resolver) best(p *Pointer, cands []Candidate, minPriority int, fromClick bool) Candidate {
	if cap(r.checked) < len(cands) {
		r.checked = make([]bool, len(cands))
	}
	r.checked = r.checked[:len(cands)]
	clear(r.checked)

	bestPriority, bestOrder := noBestPriority, 0
	var winner Candidate

	for i, c := range cands {
		if !eligible(c, minPriority, bestPriority, bestOrder, false) {
			continue
		}
		r.checked[i] = true
		if cheapHit(c, p, fromClick) {
			bestPriority, bestOrder, winner = c.Priority(), c.RenderOrder(), c
		}
	}

	for i, c := range cands {
		if r.checked[i] {
			continue
		}
		ec, ok := needsExact(c)
		if !ok || !eligible(c, minPriority, bestPriority, bestOrder, true) {
			continue
		}
		if cheapHit(c, p, fromClick) && ec.CheckExact(p, fromClick) {
			bestPriority, bestOrder, winner = c.Priority(), c.RenderOrder(), c
		}
	}
	return winner
}

// eligible reports whether c is enabled, at or above minPriority and able to
// displace the current best: a strictly higher priority, or the same priority
// with a strictly higher render order (drawn later, so visually on top).
// Candidates needing an exact test are excluded unless includeExact is set.
func eligible(c Candidate, minPriority, bestPriority, bestOrder int, includeExact bool) bool {
	if !c.Enabled() {
		return false
	}
	pri := c.Priority()
	if pri < minPriority {
		return false
	}
	if !includeExact {
		if _, ok := needsExact(c); ok {
			return false
		}
	}
	return pri > bestPriority || (pri == bestPriority && c.RenderOrder() > bestOrder)
}

func cheapHit(c Candidate, p *Pointer, fromClick bool) bool {
	if fromClick {
		return c.CheckDown(p)
	}
	return c.CheckOver(p)
}

// resolve finds p's current target among the registered candidates and
// applies the resulting transition. Reports whether p has a target afterwards.
func (in *Input) resolve(p *Pointer, fromClick bool) bool {
	winner := in.scratch.best(p, in.candidates, in.cfg.MinPriority, fromClick)
	return in.transition(p, winner)
}

// transition compares winner against p's previous target and fires exactly
// one of: nothing, out, over, out then over, or the stay update.
func (in *Input) transition(p *Pointer, winner Candidate) bool {
	prev := p.target
	switch {
	case winner == nil:
		if prev != nil {
			prev.PointerOut(p)
			p.target = nil
			in.emit(EventPointerOut, p, prev)
			in.trace("pointer out", p)
		}
	case prev == nil:
		p.target = winner
		winner.PointerOver(p)
		in.emit(EventPointerOver, p, winner)
		in.trace("pointer over", p, "priority", winner.Priority(), "order", winner.RenderOrder())
	case prev == winner:
		if !winner.Update(p) {
			p.target = nil
		}
	default:
		prev.PointerOut(p)
		in.emit(EventPointerOut, p, prev)
		p.target = winner
		winner.PointerOver(p)
		in.emit(EventPointerOver, p, winner)
		in.trace("pointer target changed", p, "priority", winner.Priority(), "order", winner.RenderOrder())
	}
	return p.target != nil
}
