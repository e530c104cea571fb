package touchpoint

// history is a bounded FIFO of recent pointer positions. The backing array is
// reused across presses so recording never allocates once warmed up.
type history struct {
	samples []Vec2
}

// push appends a sample and evicts from the front until at most limit remain.
func (h *history) push(s Vec2, limit int) {
	h.samples = append(h.samples, s)
	if limit < 0 {
		limit = 0
	}
	if over := len(h.samples) - limit; over > 0 {
		n := copy(h.samples, h.samples[over:])
		clear(h.samples[n:])
		h.samples = h.samples[:n]
	}
}

func (h *history) reset() {
	h.samples = h.samples[:0]
}

func (h *history) len() int {
	return len(h.samples)
}

// snapshot returns a copy of the samples, oldest first.
func (h *history) snapshot() []Vec2 {
	if len(h.samples) == 0 {
		return nil
	}
	out := make([]Vec2, len(h.samples))
	copy(out, h.samples)
	return out
}
