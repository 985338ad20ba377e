package constellation

import (
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"

	"github.com/gogpu/constellation/noise"
)

// orbitDot is one decorative particle circling a node.
type orbitDot struct {
	angle    float64
	distance float64
	speed    float64
	size     float64
	opacity  float64
}

// node is the visual and physical state of one skill.
type node struct {
	skill Skill
	index int

	x, y             float64
	vx, vy           float64
	targetX, targetY float64

	noiseX, noiseY float64
	noiseSpeed     float64
	noiseMag       float64

	baseRadius float64
	radius     float64
	mass       float64

	orbitRadius   float64
	orbitProgress float64
	pulsePhase    float64
	pulseSpeed    float64

	visible       bool
	opacity       float64
	targetOpacity float64
	hovered       bool
	selected      bool
	dragging      bool
	z             int

	glow       float64
	targetGlow float64

	color         gg.RGBA
	particleColor gg.RGBA
	orbit         []orbitDot

	level float64
}

// pointer is the last known pointer position in CSS pixels.
type pointer struct {
	x, y float64
	ok   bool
}

// stepEnv is everything one physics step reads besides the node itself.
type stepEnv struct {
	time          float64
	pointer       pointer
	dragged       *node
	nodes         []*node
	width         float64
	height        float64
	bottomInset   float64
	reducedMotion bool
	noise         *noise.Simplex
}

func newNode(s Skill, index int, colors GroupColors, width, height float64, rng *rand.Rand) *node {
	size := s.visualSize()
	base := size * radiusPerSize
	n := &node{
		skill: s,
		index: index,

		x: width/2 + (rng.Float64()-0.5)*width*0.9,
		y: height/2 + (rng.Float64()-0.5)*height*0.9,

		noiseX:     rng.Float64() * 1000,
		noiseY:     rng.Float64() * 1000,
		noiseSpeed: 0.00018 + rng.Float64()*0.00012,
		noiseMag:   0.14 + rng.Float64()*0.12,

		baseRadius: base,
		radius:     base,
		mass:       math.Max(1, base/6),

		orbitRadius:   base * 1.5,
		orbitProgress: rng.Float64() * 2 * math.Pi,
		pulsePhase:    rng.Float64() * 2 * math.Pi,
		pulseSpeed:    0.03 + rng.Float64()*0.01,

		visible:       true,
		opacity:       1,
		targetOpacity: 1,
		z:             zBaseline,

		glow:       glowIdle,
		targetGlow: glowIdle,

		color:         nodeColor(colors.Color),
		particleColor: nodeColor(colors.Particle),
		level:         s.Level.Normalized(),
	}
	n.targetX, n.targetY = n.x, n.y

	count := int(math.Round(size / 6))
	n.orbit = make([]orbitDot, count)
	for i := range n.orbit {
		n.orbit[i] = orbitDot{
			angle:    rng.Float64() * 2 * math.Pi,
			distance: base * (1.2 + rng.Float64()*0.8),
			speed:    0.01 + rng.Float64()*0.01,
			size:     1 + rng.Float64()*1.5,
			opacity:  0.35 + rng.Float64()*0.35,
		}
	}
	return n
}

// contains reports whether (px, py) lies within the node's hit area.
func (n *node) contains(px, py float64) bool {
	return math.Hypot(px-n.x, py-n.y) <= n.radius*hoverReach
}

func (n *node) setColors(c GroupColors) {
	n.color = nodeColor(c.Color)
	n.particleColor = nodeColor(c.Particle)
}

// update runs one physics step: easing, drift, spring, collisions, hover,
// integration and bounds.
func (n *node) update(env *stepEnv) {
	if !n.visible {
		n.opacity += (dimmedOpacity - n.opacity) * easeRate
		return
	}
	n.opacity += (n.targetOpacity - n.opacity) * easeRate
	n.glow += (n.targetGlow - n.glow) * easeRate

	n.applyNoise(env)

	if !n.dragging && !env.reducedMotion {
		dx, dy := n.targetX-n.x, n.targetY-n.y
		if math.Hypot(dx, dy) > springDeadZone {
			n.vx += dx * springK
			n.vy += dy * springK
		}
	}

	n.collide(env.nodes)
	n.detectHover(env)

	if n.dragging && env.pointer.ok {
		n.x, n.y = env.pointer.x, env.pointer.y
		n.vx, n.vy = 0, 0
		n.z = zDragged
	} else {
		n.vx *= friction
		n.vy *= friction
		if sp := math.Hypot(n.vx, n.vy); sp > maxSpeed {
			n.vx = n.vx / sp * maxSpeed
			n.vy = n.vy / sp * maxSpeed
		}
		n.x += n.vx
		n.y += n.vy
	}

	n.clampBounds(env.width, env.height, env.bottomInset)
}

func (n *node) applyNoise(env *stepEnv) {
	if n.dragging || env.reducedMotion || env.noise == nil {
		return
	}
	n.noiseX += n.noiseSpeed
	n.noiseY += n.noiseSpeed
	t := env.time * noiseTimeScale
	n.vx += env.noise.Noise2D(n.noiseX, t) * n.noiseMag * noiseAccel
	n.vy += env.noise.Noise2D(n.noiseY, t) * n.noiseMag * noiseAccel
}

// collide pushes n and every overlapping visible node apart. The impulse
// is split by inverse mass; a dragged node pushes but is never pushed.
func (n *node) collide(nodes []*node) {
	for _, o := range nodes {
		if o == n || !o.visible || !n.visible {
			continue
		}
		dx, dy := o.x-n.x, o.y-n.y
		dist := math.Hypot(dx, dy)
		minDist := (n.radius + o.radius) * collisionReach
		if dist >= minDist || dist <= 0 {
			continue
		}
		angle := math.Atan2(dy, dx)
		cos, sin := math.Cos(angle), math.Sin(angle)
		force := (minDist - dist) * collisionForce
		total := n.mass + o.mass
		if !n.dragging {
			f := force * (o.mass / total)
			n.vx -= cos * f
			n.vy -= sin * f
		}
		if !o.dragging {
			f := force * (n.mass / total)
			o.vx += cos * f
			o.vy += sin * f
		}
	}
}

func (n *node) detectHover(env *stepEnv) {
	n.hovered = false
	if env.pointer.ok && env.dragged != n {
		if math.Hypot(env.pointer.x-n.x, env.pointer.y-n.y) < n.radius*hoverReach {
			n.hovered = true
			n.targetGlow = glowActive
			n.z = zRaised
			return
		}
	}
	if !n.selected {
		n.targetGlow = glowIdle
		n.z = zBaseline
	}
}

func (n *node) clampBounds(width, height, bottomInset float64) {
	margin := n.radius + boundsMargin
	maxX := width - margin
	maxY := height - bottomInset

	if n.x < margin {
		n.x = margin
		n.vx = math.Abs(n.vx) * bounceDamp
	}
	if n.x > maxX {
		n.x = maxX
		n.vx = -math.Abs(n.vx) * bounceDamp
	}
	if n.y < margin {
		n.y = margin
		n.vy = math.Abs(n.vy) * bounceDamp
	}
	if n.y > maxY {
		n.y = maxY
		n.vy = -math.Abs(n.vy) * bounceDamp
	}
}

// pulse breathes the radius, turns the orbit ring and moves the
// decorative dots. Nothing moves under reduced motion.
func (n *node) pulse(time float64, reducedMotion bool) {
	if reducedMotion {
		return
	}
	pf := math.Sin(time*n.pulseSpeed+n.pulsePhase) * pulseAmplitude
	target := n.baseRadius * (1 + pf)
	n.radius += (target - n.radius) * easeRate

	n.orbitProgress += orbitSpeed
	if n.orbitProgress > 2*math.Pi {
		n.orbitProgress -= 2 * math.Pi
	}

	boost := 1.0
	if n.hovered {
		boost = hoverOrbitBoost
	}
	for i := range n.orbit {
		d := &n.orbit[i]
		d.angle += d.speed * boost
		if d.angle > 2*math.Pi {
			d.angle -= 2 * math.Pi
		}
	}
}
