package systems

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/heartbloom/components"
	"github.com/pthm-cable/heartbloom/config"
)

// ReferenceDT is the frame duration the per-frame heart constants
// (spring, damping, fades) are tuned for.
const ReferenceDT = 1.0 / 60.0

// HeartView is a read-only snapshot of one heart for drawing.
type HeartView struct {
	Entity ecs.Entity
	Pos    r2.Vec
	Target r2.Vec
	Size   float64
	Color  color.RGBA
	Alpha  float64
	Phase  components.Phase
}

// HeartCounters are cumulative lifecycle event counts.
type HeartCounters struct {
	Spawned int
	Refused int
	Evicted int
	Retired int
}

// HeartSystem owns the heart entities and advances them once per step.
type HeartSystem struct {
	cfg     config.HeartsConfig
	palette []color.RGBA
	rng     *rand.Rand

	world  *ecs.World
	mapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Target,
		components.Appearance,
		components.Bloom,
	]
	filter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Target,
		components.Appearance,
		components.Bloom,
	]

	alive    int
	serial   uint64
	counters HeartCounters
	dead     []ecs.Entity
}

// NewHeartSystem creates an empty heart system. palette must not be empty.
func NewHeartSystem(cfg config.HeartsConfig, palette []color.RGBA, rng *rand.Rand) *HeartSystem {
	world := ecs.NewWorld()
	return &HeartSystem{
		cfg:     cfg,
		palette: palette,
		rng:     rng,
		world:   world,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Target,
			components.Appearance,
			components.Bloom,
		](world),
		filter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Target,
			components.Appearance,
			components.Bloom,
		](world),
		dead: make([]ecs.Entity, 0, 16),
	}
}

// Spawn creates a heart at the tree base with a target on the heart curve
// above it. At the population cap the spawn is refused, or the oldest heart
// is evicted when EvictOldest is set.
func (s *HeartSystem) Spawn(l Layout) (ecs.Entity, bool) {
	if s.alive >= s.cfg.Max {
		if !s.cfg.EvictOldest || s.alive == 0 {
			s.counters.Refused++
			return ecs.Entity{}, false
		}
		s.evictOldest()
	}

	pos := components.Position{Vec: r2.Vec{
		X: l.Base.X + (s.rng.Float64()-0.5)*s.cfg.SpawnSpread,
		Y: l.Height,
	}}

	// Small surfaces cut off part of the crown; those hearts settle on the edge.
	curve := HeartCurve(s.rng.Float64() * 2 * math.Pi)
	target := components.Target{Vec: l.Clamp(r2.Vec{
		X: l.Base.X + curve.X*s.cfg.CurveScale + (s.rng.Float64()-0.5)*s.cfg.TargetJitter,
		Y: l.Base.Y - s.cfg.CurveLift + curve.Y*s.cfg.CurveScale + (s.rng.Float64()-0.5)*s.cfg.TargetJitter,
	})}

	burstAngle := -math.Pi/2 + (s.rng.Float64()-0.5)*s.cfg.BurstSpread
	burstSpeed := s.cfg.BurstSpeedMin + s.rng.Float64()*(s.cfg.BurstSpeedMax-s.cfg.BurstSpeedMin)
	vel := components.Velocity{Vec: r2.Vec{
		X: math.Cos(burstAngle) * burstSpeed,
		Y: math.Sin(burstAngle) * burstSpeed,
	}}

	look := components.Appearance{
		Size:  s.cfg.SizeMin + s.rng.Float64()*(s.cfg.SizeMax-s.cfg.SizeMin),
		Color: s.palette[s.rng.Intn(len(s.palette))],
		Alpha: 0,
	}

	s.serial++
	bloom := components.Bloom{
		Phase:       components.PhaseGrowing,
		FloatOffset: s.rng.Float64() * 2 * math.Pi,
		Life:        s.cfg.FloatLife,
		Serial:      s.serial,
	}

	e := s.mapper.NewEntity(&pos, &vel, &target, &look, &bloom)
	s.alive++
	s.counters.Spawned++
	return e, true
}

// evictOldest removes the heart with the lowest spawn serial.
func (s *HeartSystem) evictOldest() {
	var oldest ecs.Entity
	found := false
	var best uint64

	query := s.filter.Query()
	for query.Next() {
		_, _, _, _, bloom := query.Get()
		if !found || bloom.Serial < best {
			best = bloom.Serial
			oldest = query.Entity()
			found = true
		}
	}

	if found {
		s.world.RemoveEntity(oldest)
		s.alive--
		s.counters.Evicted++
	}
}

// Step advances every heart by dt seconds. now is the animation clock in
// seconds and drives the idle drift. Hearts whose alpha reaches zero are
// retired.
func (s *HeartSystem) Step(dt, now float64) {
	k := dt / ReferenceDT
	damping := math.Pow(s.cfg.Damping, k)
	s.dead = s.dead[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, vel, target, look, bloom := query.Get()

		switch bloom.Phase {
		case components.PhaseGrowing:
			d := r2.Sub(target.Vec, pos.Vec)
			if r2.Norm(d) < s.cfg.BloomDistance {
				bloom.Advance(components.PhaseBlooming)
				look.Alpha += 2 * s.cfg.FadeIn * k
			} else {
				vel.Vec = r2.Scale(damping, r2.Add(vel.Vec, r2.Scale(s.cfg.Spring*k, d)))
				pos.Vec = r2.Add(pos.Vec, r2.Scale(k, vel.Vec))
				look.Alpha += s.cfg.FadeIn * k
			}

		case components.PhaseBlooming:
			look.Alpha += s.cfg.BloomFade * k
			if look.Alpha >= 1 {
				bloom.Advance(components.PhaseFloating)
			}
			pos.X += math.Sin(now*2+bloom.FloatOffset) * 0.3 * k
			pos.Y += math.Cos(now*1.5+bloom.FloatOffset) * 0.2 * k

		case components.PhaseFloating:
			pos.X += math.Sin(now+bloom.FloatOffset) * 0.2 * k
			pos.Y += math.Cos(now*0.8+bloom.FloatOffset) * 0.15 * k

			if s.cfg.FloatLife > 0 {
				bloom.Life -= dt
				if bloom.Life <= 0 {
					look.Alpha -= s.cfg.FadeOut * k
				}
			}
		}

		look.Alpha = clamp01(look.Alpha)
		if look.Alpha <= 0 && bloom.Phase == components.PhaseFloating {
			s.dead = append(s.dead, query.Entity())
		}
	}

	// Structural changes only after the query has finished
	for _, e := range s.dead {
		s.world.RemoveEntity(e)
		s.alive--
		s.counters.Retired++
	}
}

// Relayout moves hearts with the tree when the surface changes size. Targets
// and positions are shifted by the tree base delta and clamped into the new
// bounds.
func (s *HeartSystem) Relayout(from, to Layout) {
	delta := r2.Sub(to.Base, from.Base)

	query := s.filter.Query()
	for query.Next() {
		pos, _, target, _, _ := query.Get()
		pos.Vec = to.Clamp(r2.Add(pos.Vec, delta))
		target.Vec = to.Clamp(r2.Add(target.Vec, delta))
	}
}

// ForEach calls fn for every live heart.
func (s *HeartSystem) ForEach(fn func(HeartView)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, target, look, bloom := query.Get()
		fn(HeartView{
			Entity: query.Entity(),
			Pos:    pos.Vec,
			Target: target.Vec,
			Size:   look.Size,
			Color:  look.Color,
			Alpha:  look.Alpha,
			Phase:  bloom.Phase,
		})
	}
}

// Alive reports whether e is a live heart.
func (s *HeartSystem) Alive(e ecs.Entity) bool {
	return s.world.Alive(e)
}

// Count returns the number of live hearts.
func (s *HeartSystem) Count() int {
	return s.alive
}

// Max returns the population cap.
func (s *HeartSystem) Max() int {
	return s.cfg.Max
}

// PhaseCounts returns live hearts per phase.
func (s *HeartSystem) PhaseCounts() [components.NumPhases]int {
	var counts [components.NumPhases]int
	query := s.filter.Query()
	for query.Next() {
		_, _, _, _, bloom := query.Get()
		counts[bloom.Phase]++
	}
	return counts
}

// Counters returns cumulative spawn and removal counts.
func (s *HeartSystem) Counters() HeartCounters {
	return s.counters
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
