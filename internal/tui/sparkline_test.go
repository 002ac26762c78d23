package tui

import "testing"

func TestRingBuffer_PushAndLen(t *testing.T) {
	r := NewRingBuffer(3)
	if r.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", r.Len())
	}

	r.Push(1)
	r.Push(2)
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRingBuffer_OverwritesOldest(t *testing.T) {
	r := NewRingBuffer(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		r.Push(v)
	}

	got := r.Slice()
	want := []float64{3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Slice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Slice()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	r := NewRingBuffer(3)
	r.Push(1)
	r.Reset()
	if r.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", r.Len())
	}
	if r.Slice() != nil {
		t.Errorf("Slice() after Reset = %v, want nil", r.Slice())
	}
}

func TestRingBuffer_ZeroCapacity(t *testing.T) {
	r := NewRingBuffer(0)
	r.Push(42)
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestRenderSparkline(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"min and max", []float64{0, 100}, "▁█"},
		{"clamped", []float64{-10, 150}, "▁█"},
		{"midrange", []float64{50}, "▄"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
