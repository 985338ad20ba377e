package constellation

import "testing"

func TestParticleCap(t *testing.T) {
	nodes := make([]*node, 8)
	for i := range nodes {
		nodes[i] = testNode(t, "n", 100+float64(i)*60, 200)
		nodes[i].hovered = true
	}
	var edges []edge
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			edges = append(edges, edge{a: nodes[i], b: nodes[j], strength: 1})
		}
	}

	for _, limit := range []int{defaultMaxParticles, 10} {
		lp := newLinkParticles(limit)
		rng := testRNG()
		for frame := range 500 {
			lp.update(edges, rng)
			if lp.len() > limit {
				t.Fatalf("limit %d, frame %d: %d live particles", limit, frame, lp.len())
			}
		}
		if lp.len() == 0 {
			t.Errorf("limit %d: no particles spawned", limit)
		}
	}
}

func TestParticlesNeedVisibleEndpoints(t *testing.T) {
	a := testNode(t, "A", 100, 100)
	b := testNode(t, "B", 300, 100)
	b.visible = false
	lp := newLinkParticles(0)
	rng := testRNG()
	for range 200 {
		lp.update([]edge{{a: a, b: b, strength: 1}}, rng)
	}
	if lp.len() != 0 {
		t.Errorf("%d particles spawned toward an invisible node", lp.len())
	}
	if lp.limit != defaultMaxParticles {
		t.Errorf("limit = %d, want default %d", lp.limit, defaultMaxParticles)
	}
}

func TestParticleLifecycle(t *testing.T) {
	a := testNode(t, "A", 100, 100)
	b := testNode(t, "B", 300, 100)
	lp := newLinkParticles(10)
	p := &linkParticle{src: a, dst: b, cpx: 200, cpy: 50, speed: 0.02, opacity: 0.5}
	lp.list = append(lp.list, p)

	rng := testRNG()
	var faded bool
	for i := 0; i < 49; i++ {
		lp.update(nil, rng)
		if p.t < 0 || p.t > 1 {
			t.Fatalf("t = %v outside [0, 1]", p.t)
		}
		if p.t > particleFadeStart && p.opacity < 0.5 {
			faded = true
		}
	}
	if !faded {
		t.Error("particle did not fade near the end of its path")
	}
	lp.update(nil, rng)
	lp.update(nil, rng)
	if lp.len() != 0 {
		t.Errorf("particle not retired: t = %v", p.t)
	}
}

func TestParticlesFasterWhenHovered(t *testing.T) {
	a := testNode(t, "A", 100, 100)
	b := testNode(t, "B", 300, 100)
	lp := newLinkParticles(10)
	slow := &linkParticle{src: a, dst: b, speed: 0.01, opacity: 1}
	lp.list = append(lp.list, slow)
	lp.update(nil, testRNG())
	idle := slow.t

	a.hovered = true
	slow.t = 0
	lp.update(nil, testRNG())
	if slow.t <= idle {
		t.Errorf("hovered t = %v, want > %v", slow.t, idle)
	}
}

func TestParticlesReset(t *testing.T) {
	a := testNode(t, "A", 100, 100)
	lp := newLinkParticles(5)
	lp.list = append(lp.list, &linkParticle{src: a, dst: a})
	lp.reset()
	if lp.len() != 0 {
		t.Errorf("len after reset = %d", lp.len())
	}
}
