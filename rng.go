package streetmix

// Stream is a Mulberry32 seeded pseudo-random stream producing float64
// values in [0, 1). The same seed always produces the same sequence on
// every platform, which is what makes packed layouts reproducible.
//
// A Stream is cheap to create and is instantiated fresh per Pack call;
// it is never shared between invocations.
type Stream struct {
	state uint32
}

// NewStream returns a stream seeded with the given value.
func NewStream(seed uint32) *Stream {
	return &Stream{state: seed}
}

// Float64 advances the stream and returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn advances the stream and returns an integer in [0, n).
// n must be positive.
func (s *Stream) Intn(n int) int {
	return int(s.Float64() * float64(n))
}
