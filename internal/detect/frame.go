package detect

import "math/rand"

// Frame is an opaque handle to one camera capture. The detector treats
// it as evidence of a capture, not as pixel data; real perception is an
// external collaborator.
type Frame struct {
	Seq   int     `json:"seq"`
	Noise float64 `json:"noise"`
}

// FrameSource supplies a frame handle for a given tick. A false return
// means the frame is unavailable this tick; the caller must skip
// detection, not fail.
type FrameSource interface {
	Frame(tick int) (Frame, bool)
}

// SyntheticFrameSource stands in for a camera feed, producing
// deterministic frame handles with an optional dropout rate.
type SyntheticFrameSource struct {
	rng     *rand.Rand
	dropout float64
}

// NewSyntheticFrameSource creates a frame source with the given dropout
// probability per tick.
func NewSyntheticFrameSource(rng *rand.Rand, dropout float64) *SyntheticFrameSource {
	if dropout < 0 {
		dropout = 0
	} else if dropout > 1 {
		dropout = 1
	}
	return &SyntheticFrameSource{rng: rng, dropout: dropout}
}

// Frame returns the next frame handle, or false on a simulated dropout.
func (s *SyntheticFrameSource) Frame(tick int) (Frame, bool) {
	if s.dropout > 0 && s.rng.Float64() < s.dropout {
		return Frame{}, false
	}
	return Frame{Seq: tick, Noise: s.rng.Float64() * 30}, true
}
