package touchpoint

import "testing"

func TestHistoryEvictsOldestFirst(t *testing.T) {
	var h history
	for i := 1; i <= 5; i++ {
		h.push(Vec2{float64(i), 0}, 3)
	}
	got := h.snapshot()
	want := []Vec2{{3, 0}, {4, 0}, {5, 0}}
	if len(got) != len(want) {
		t.Fatalf("snapshot = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestHistoryLimitChangeShrinks(t *testing.T) {
	var h history
	for i := 0; i < 10; i++ {
		h.push(Vec2{float64(i), 0}, 10)
	}
	h.push(Vec2{10, 0}, 2)
	if h.len() != 2 {
		t.Fatalf("len = %d, want 2", h.len())
	}
	if s := h.snapshot(); s[0].X != 9 || s[1].X != 10 {
		t.Errorf("snapshot = %v, want [9 10]", s)
	}
}

func TestHistoryZeroLimit(t *testing.T) {
	var h history
	h.push(Vec2{1, 1}, 0)
	h.push(Vec2{2, 2}, -1)
	if h.len() != 0 {
		t.Errorf("len = %d, want 0", h.len())
	}
	if s := h.snapshot(); s != nil {
		t.Errorf("snapshot = %v, want nil", s)
	}
}

func TestHistorySnapshotIsCopy(t *testing.T) {
	var h history
	h.push(Vec2{1, 1}, 5)
	s := h.snapshot()
	s[0] = Vec2{99, 99}
	if got := h.snapshot()[0]; got != (Vec2{1, 1}) {
		t.Errorf("mutating the snapshot changed the buffer: %v", got)
	}
}

func TestHistoryResetReusesBuffer(t *testing.T) {
	var h history
	for i := 0; i < 4; i++ {
		h.push(Vec2{float64(i), 0}, 4)
	}
	c := cap(h.samples)
	h.reset()
	if h.len() != 0 {
		t.Fatalf("len after reset = %d, want 0", h.len())
	}
	h.push(Vec2{7, 7}, 4)
	if cap(h.samples) != c {
		t.Errorf("cap after reset = %d, want %d", cap(h.samples), c)
	}
}

func BenchmarkHistoryPush(b *testing.B) {
	var h history
	b.ReportAllocs()
	for b.Loop() {
		h.push(Vec2{1, 2}, 100)
	}
}
