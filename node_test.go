package constellation

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/constellation/noise"
)

func testRNG() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) }

func testNode(t *testing.T, name string, x, y float64) *node {
	t.Helper()
	n := newNode(Skill{Name: name, Size: 40}, 0, DefaultTheme().Colors(DefaultGroup), 800, 500, testRNG())
	n.x, n.y = x, y
	n.targetX, n.targetY = x, y
	return n
}

func testEnv(nodes ...*node) *stepEnv {
	return &stepEnv{
		nodes:       nodes,
		width:       800,
		height:      500,
		bottomInset: defaultPanelHeight + physicsInsetExtra,
		noise:       noise.New(7),
	}
}

func TestNewNode(t *testing.T) {
	n := newNode(Skill{Name: "Go", Size: 48, Level: LevelString("85%")}, 3, GroupColors{Color: "#ff0000", Particle: "bad"}, 800, 500, testRNG())
	if math.Abs(n.baseRadius-48*radiusPerSize) > 1e-9 || n.radius != n.baseRadius {
		t.Errorf("radius = %v/%v, want %v", n.radius, n.baseRadius, 48*radiusPerSize)
	}
	if n.mass != math.Max(1, n.baseRadius/6) {
		t.Errorf("mass = %v", n.mass)
	}
	if len(n.orbit) != 8 {
		t.Errorf("orbit dots = %d, want 8", len(n.orbit))
	}
	if n.level != 0.85 {
		t.Errorf("level = %v, want 0.85", n.level)
	}
	if n.color.R != 1 || n.color.G != 0 {
		t.Errorf("color = %+v, want red", n.color)
	}
	if n.particleColor != fallbackNodeColor {
		t.Errorf("particle color = %+v, want fallback", n.particleColor)
	}
	if n.z != zBaseline || !n.visible || n.opacity != 1 {
		t.Errorf("initial state = z %d visible %v opacity %v", n.z, n.visible, n.opacity)
	}
}

func TestPulseBound(t *testing.T) {
	n := testNode(t, "Go", 400, 200)
	lo, hi := n.baseRadius*(1-pulseAmplitude), n.baseRadius*(1+pulseAmplitude)
	for frame := range 5000 {
		n.pulse(float64(frame)*16.7, false)
		if n.radius < lo-1e-9 || n.radius > hi+1e-9 {
			t.Fatalf("frame %d: radius %v outside [%v, %v]", frame, n.radius, lo, hi)
		}
	}
}

func TestPulseReducedMotion(t *testing.T) {
	n := testNode(t, "Go", 400, 200)
	before, orbit := n.radius, n.orbitProgress
	for frame := range 100 {
		n.pulse(float64(frame)*16.7, true)
	}
	if n.radius != before || n.orbitProgress != orbit {
		t.Errorf("reduced motion changed radius %v->%v or orbit %v->%v", before, n.radius, orbit, n.orbitProgress)
	}
}

func TestUpdateKeepsUnitRanges(t *testing.T) {
	rng := testRNG()
	nodes := make([]*node, 6)
	for i := range nodes {
		nodes[i] = testNode(t, "n", 100+float64(i)*20, 150)
	}
	env := testEnv(nodes...)
	for frame := range 2000 {
		env.time = float64(frame) * 16.7
		env.pointer = pointer{x: rng.Float64() * 800, y: rng.Float64() * 500, ok: frame%3 != 0}
		for i, n := range nodes {
			if frame%97 == 0 {
				n.visible = i%2 == 0
				n.targetOpacity = 1
				if !n.visible {
					n.targetOpacity = dimmedOpacity
				}
			}
			n.update(env)
			n.pulse(env.time, false)
			for name, v := range map[string]float64{"opacity": n.opacity, "glow": n.glow, "level": n.level} {
				if v < 0 || v > 1 {
					t.Fatalf("frame %d: %s = %v outside [0, 1]", frame, name, v)
				}
			}
		}
	}
}

func TestUpdateInvisibleEasesToDimmed(t *testing.T) {
	n := testNode(t, "Go", 400, 200)
	n.visible = false
	x, y := n.x, n.y
	for range 200 {
		n.update(testEnv(n))
	}
	if math.Abs(n.opacity-dimmedOpacity) > 1e-6 {
		t.Errorf("opacity = %v, want %v", n.opacity, dimmedOpacity)
	}
	if n.x != x || n.y != y {
		t.Error("invisible node moved")
	}
}

func TestUpdateClampsToBounds(t *testing.T) {
	n := testNode(t, "Go", -50, 900)
	n.vx, n.vy = -4, 4
	env := testEnv(n)
	env.reducedMotion = true
	n.update(env)

	margin := n.radius + boundsMargin
	if n.x != margin {
		t.Errorf("x = %v, want %v", n.x, margin)
	}
	if want := env.height - env.bottomInset; n.y != want {
		t.Errorf("y = %v, want %v", n.y, want)
	}
	if n.vx <= 0 || n.vy >= 0 {
		t.Errorf("velocity = (%v, %v), want reflected", n.vx, n.vy)
	}
}

func TestUpdateSpeedLimit(t *testing.T) {
	n := testNode(t, "Go", 400, 200)
	n.vx, n.vy = 30, -40
	env := testEnv(n)
	env.reducedMotion = true
	n.update(env)
	if sp := math.Hypot(n.vx, n.vy); sp > maxSpeed+1e-9 {
		t.Errorf("speed = %v, want <= %v", sp, maxSpeed)
	}
}

func TestCollisionSeparates(t *testing.T) {
	a := testNode(t, "A", 400, 200)
	b := testNode(t, "B", 410, 200)
	a.collide([]*node{a, b})
	if a.vx >= 0 || b.vx <= 0 {
		t.Errorf("velocities = %v, %v, want a pushed left and b right", a.vx, b.vx)
	}
}

func TestCollisionSparesDraggedNode(t *testing.T) {
	a := testNode(t, "A", 400, 200)
	b := testNode(t, "B", 410, 200)
	a.dragging = true
	a.collide([]*node{a, b})
	b.collide([]*node{a, b})
	if a.vx != 0 || a.vy != 0 {
		t.Errorf("dragged node velocity = (%v, %v), want zero", a.vx, a.vy)
	}
	if b.vx <= 0 {
		t.Errorf("b.vx = %v, want pushed away", b.vx)
	}
}

func TestDraggedNodeFollowsPointer(t *testing.T) {
	n := testNode(t, "Go", 400, 200)
	n.dragging = true
	n.vx, n.vy = 1, 1
	env := testEnv(n)
	env.dragged = n
	env.pointer = pointer{x: 300, y: 250, ok: true}
	n.update(env)
	if n.x != 300 || n.y != 250 || n.vx != 0 || n.vy != 0 || n.z != zDragged {
		t.Errorf("dragged node = (%v, %v) v(%v, %v) z %d", n.x, n.y, n.vx, n.vy, n.z)
	}
	if n.hovered {
		t.Error("dragged node must not be hovered")
	}
}

func TestHoverRaisesNode(t *testing.T) {
	n := testNode(t, "Go", 400, 200)
	env := testEnv(n)
	env.reducedMotion = true
	env.pointer = pointer{x: 405, y: 200, ok: true}
	n.update(env)
	if !n.hovered || n.z != zRaised || n.targetGlow != glowActive {
		t.Errorf("hover state = %v z %d glow %v", n.hovered, n.z, n.targetGlow)
	}
	env.pointer = pointer{}
	n.update(env)
	if n.hovered || n.z != zBaseline || n.targetGlow != glowIdle {
		t.Errorf("idle state = %v z %d glow %v", n.hovered, n.z, n.targetGlow)
	}
}

func TestSpringPullsTowardTarget(t *testing.T) {
	n := testNode(t, "Go", 200, 200)
	n.targetX = 400
	env := testEnv(n)
	env.noise = nil
	n.update(env)
	if n.vx <= 0 {
		t.Errorf("vx = %v, want positive", n.vx)
	}

	m := testNode(t, "Go", 200, 200)
	m.targetX = 400
	env.reducedMotion = true
	m.update(env)
	if m.vx != 0 {
		t.Errorf("reduced motion vx = %v, want 0", m.vx)
	}
}

func TestContains(t *testing.T) {
	n := testNode(t, "Go", 100, 100)
	if !n.contains(100+n.radius*hoverReach*0.999, 100) {
		t.Error("point inside hit area not contained")
	}
	if n.contains(100+n.radius*hoverReach*1.001, 100) {
		t.Error("point outside hit area contained")
	}
}

func BenchmarkNodeUpdate(b *testing.B) {
	nodes := make([]*node, 20)
	rng := testRNG()
	for i := range nodes {
		nodes[i] = newNode(Skill{Name: "n"}, i, DefaultTheme().Colors(DefaultGroup), 800, 500, rng)
	}
	env := &stepEnv{nodes: nodes, width: 800, height: 500, bottomInset: 116, noise: noise.New(1)}
	b.ReportAllocs()
	for b.Loop() {
		env.time += 16.7
		for _, n := range nodes {
			n.update(env)
			n.pulse(env.time, false)
		}
	}
}

func testRNGSeed(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed+1)) }
