package debugui

// History is a fixed-size ring of samples for plotting.
type History struct {
	samples []float32
	next    int
	filled  bool
}

// NewHistory creates a ring holding size samples. Size is at least 1.
func NewHistory(size int) *History {
	return &History{samples: make([]float32, max(size, 1))}
}

func (h *History) Push(v float32) {
	h.samples[h.next] = v
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.filled = true
	}
}

// Len returns the number of samples pushed, up to the ring size.
func (h *History) Len() int {
	if h.filled {
		return len(h.samples)
	}
	return h.next
}

// Values returns the samples oldest first.
func (h *History) Values() []float32 {
	if !h.filled {
		return append([]float32(nil), h.samples[:h.next]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

// Average returns the mean of the pushed samples, 0 when empty.
func (h *History) Average() float32 {
	n := h.Len()
	if n == 0 {
		return 0
	}
	var total float32
	for _, v := range h.Values() {
		total += v
	}
	return total / float32(n)
}
