package detect

import (
	"fmt"
	"math/rand"

	"droneinspect-sim/internal/mission"

	"github.com/google/uuid"
)

// TypeProfile configures one anomaly type. Probability is the per-tick
// firing chance; SeverityCuts are the bucket edges. The two are distinct
// axes and must not be conflated.
type TypeProfile struct {
	Probability   float64
	ConfidenceMin float64
	ConfidenceMax float64
	SeverityCuts  SeverityCuts
	bboxSpec      bboxSpec
}

// bboxSpec bounds the synthetic camera-frame box drawn for a type.
type bboxSpec struct {
	maxX, maxY             int
	minW, maxW, minH, maxH int
}

// Config maps anomaly types to their profiles. Types without a profile
// never fire.
type Config struct {
	Profiles map[Type]TypeProfile
}

// DefaultConfig returns the per-type firing probabilities and confidence
// ranges of the reference inspection model.
func DefaultConfig() Config {
	return Config{Profiles: map[Type]TypeProfile{
		TypeCrack: {
			Probability:   0.30,
			ConfidenceMin: 0.70,
			ConfidenceMax: 0.95,
			SeverityCuts:  DefaultSeverityCuts,
			bboxSpec:      bboxSpec{maxX: 550, maxY: 400, minW: 80, maxW: 150, minH: 10, maxH: 30},
		},
		TypeRust: {
			Probability:   0.25,
			ConfidenceMin: 0.60,
			ConfidenceMax: 0.90,
			SeverityCuts:  DefaultSeverityCuts,
			bboxSpec:      bboxSpec{maxX: 500, maxY: 350, minW: 40, maxW: 100, minH: 40, maxH: 100},
		},
		TypeLooseBolt: {
			Probability:   0.15,
			ConfidenceMin: 0.80,
			ConfidenceMax: 0.95,
			SeverityCuts:  DefaultSeverityCuts,
			bboxSpec:      bboxSpec{maxX: 580, maxY: 420, minW: 60, maxW: 60, minH: 60, maxH: 60},
		},
		TypeCorrosion: {
			Probability:   0.20,
			ConfidenceMin: 0.65,
			ConfidenceMax: 0.85,
			SeverityCuts:  DefaultSeverityCuts,
			bboxSpec:      bboxSpec{maxX: 450, maxY: 300, minW: 60, maxW: 120, minH: 60, maxH: 120},
		},
	}}
}

// Detector scores positions for structural anomalies. Stateless per
// call apart from the injected RNG stream: a fixed seed with a fixed
// tick sequence reproduces the anomaly sequence bit for bit.
type Detector struct {
	cfg Config
	rng *rand.Rand
}

// NewDetector creates a detector drawing from the given RNG. The RNG is
// never shared with other components.
func NewDetector(cfg Config, rng *rand.Rand) *Detector {
	return &Detector{cfg: cfg, rng: rng}
}

// Detect evaluates every configured anomaly type at the given position
// and frame. Zero records is the common case; detection is
// probabilistic, not every tick produces output.
func (d *Detector) Detect(pos mission.Vec3, frame Frame, tick int) []Anomaly {
	var out []Anomaly
	for _, typ := range Types() {
		p, ok := d.cfg.Profiles[typ]
		if !ok || d.rng.Float64() >= p.Probability {
			continue
		}
		conf := p.ConfidenceMin + d.rng.Float64()*(p.ConfidenceMax-p.ConfidenceMin)
		out = append(out, Anomaly{
			ID:         anomalyID(typ, tick, len(out)),
			Type:       typ,
			Confidence: conf,
			Severity:   SeverityFor(p.SeverityCuts, conf),
			Position:   pos,
			BBox:       p.bboxSpec.draw(d.rng),
			Tick:       tick,
		})
	}
	return out
}

// draw tolerates a zero spec (profiles built outside DefaultConfig
// have none) by producing a zero box.
func (s bboxSpec) draw(rng *rand.Rand) BBox {
	b := BBox{W: s.minW, H: s.minH}
	if s.maxX > 0 {
		b.X = rng.Intn(s.maxX)
	}
	if s.maxY > 0 {
		b.Y = rng.Intn(s.maxY)
	}
	if s.maxW > s.minW {
		b.W += rng.Intn(s.maxW - s.minW)
	}
	if s.maxH > s.minH {
		b.H += rng.Intn(s.maxH - s.minH)
	}
	return b
}

// anomalyID derives a name-based UUID so seeded runs produce identical
// IDs across repeats.
func anomalyID(typ Type, tick, seq int) string {
	name := fmt.Sprintf("%s/%d/%d", typ, tick, seq)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
