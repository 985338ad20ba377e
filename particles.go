package constellation

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// linkParticle is a short-lived dot travelling from src to dst along a
// quadratic curve.
type linkParticle struct {
	src, dst *node
	cpx, cpy float64
	x, y     float64
	t        float64
	speed    float64
	size     float64
	opacity  float64
	color    gg.RGBA
}

// linkParticles owns every live link particle of one graph.
type linkParticles struct {
	list  []*linkParticle
	limit int
}

func newLinkParticles(limit int) *linkParticles {
	if limit <= 0 {
		limit = defaultMaxParticles
	}
	return &linkParticles{list: make([]*linkParticle, 0, limit), limit: limit}
}

func (lp *linkParticles) len() int { return len(lp.list) }

// spawn may add one particle travelling from src to dst. The chance is
// scaled by the edge strength and raised while either end is hovered.
func (lp *linkParticles) spawn(src, dst *node, strength float64, rng *rand.Rand) {
	if len(lp.list) >= lp.limit || !src.visible || !dst.visible {
		return
	}
	p := spawnChance
	if src.hovered || dst.hovered {
		p = spawnChanceHovered
	}
	if rng.Float64() > p*strength {
		return
	}

	ang := rng.Float64() * 2 * math.Pi
	lp.list = append(lp.list, &linkParticle{
		src:     src,
		dst:     dst,
		x:       src.x + math.Cos(ang)*src.radius*0.8,
		y:       src.y + math.Sin(ang)*src.radius*0.8,
		size:    1 + rng.Float64()*1.3,
		speed:   0.01 + rng.Float64()*0.01,
		opacity: 0.28 + rng.Float64()*0.35,
		color:   src.particleColor,
		cpx:     (src.x+dst.x)/2 + (rng.Float64()-0.5)*controlJitter,
		cpy:     (src.y+dst.y)/2 + (rng.Float64()-0.5)*controlJitter,
	})
}

// update advances and retires particles, then spawns new ones along every
// edge in both directions.
func (lp *linkParticles) update(edges []edge, rng *rand.Rand) {
	kept := lp.list[:0]
	for _, p := range lp.list {
		boost := 1.0
		if p.src.hovered || p.dst.hovered {
			boost = hoveredParticleBoost
		}
		p.t += p.speed * boost
		if p.t >= 1 {
			continue
		}
		p.x, p.y = quadPoint(p.src.x, p.src.y, p.cpx, p.cpy, p.dst.x, p.dst.y, p.t)
		if p.t > particleFadeStart {
			p.opacity *= particleFade
		}
		kept = append(kept, p)
	}
	clear(lp.list[len(kept):])
	lp.list = kept

	for _, e := range edges {
		lp.spawn(e.a, e.b, e.strength, rng)
		lp.spawn(e.b, e.a, e.strength, rng)
	}
}

// reset drops every particle.
func (lp *linkParticles) reset() {
	clear(lp.list)
	lp.list = lp.list[:0]
}
