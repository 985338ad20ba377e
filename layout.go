package constellation

import (
	"math"
	"math/rand/v2"
)

// layoutBounds is the area the layout may place targets in.
type layoutBounds struct {
	width, height float64
	inset         float64 // reserved band at the bottom
}

// arrange assigns every node a target inside its group's cluster.
// Clusters sit on a ring around the canvas centre, one per group in
// first-seen order. With place set the nodes are also moved next to their
// targets; otherwise only targets change and the spring pulls the nodes
// over on later frames.
func arrange(nodes []*node, b layoutBounds, rng *rand.Rand, place bool) {
	var keys []string
	groups := make(map[string][]*node)
	for _, n := range nodes {
		g := n.skill.GroupKey()
		if _, ok := groups[g]; !ok {
			keys = append(keys, g)
		}
		groups[g] = append(groups[g], n)
	}

	cx, cy := b.width/2, b.height/2
	maxR := math.Min(b.width, b.height) * clusterRadiusFactor
	floor := b.height - b.inset

	for idx, g := range keys {
		angle := float64(idx)/float64(len(keys))*2*math.Pi + rng.Float64()*0.25
		dist := maxR * (0.7 + rng.Float64()*0.25)

		gx := cx + math.Cos(angle)*dist
		gy := cy + math.Sin(angle)*dist
		if gy > floor {
			gy = floor - 40
		}

		for i, n := range groups[g] {
			a := float64(i)*2.4 + rng.Float64()
			d := n.baseRadius*4 + rng.Float64()*maxR*0.25

			n.targetX = gx + math.Cos(a)*d
			n.targetY = math.Min(gy+math.Sin(a)*d, floor)

			if place {
				n.x = n.targetX + (rng.Float64()-0.5)*90
				n.y = math.Min(n.targetY+(rng.Float64()-0.5)*80, floor)
			}
		}
	}

	Logger().Debug("constellation: layout", "groups", len(keys), "nodes", len(nodes), "placed", place)
}
