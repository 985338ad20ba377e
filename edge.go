package constellation

// edge is a resolved relationship between two nodes.
type edge struct {
	a, b     *node
	strength float64
}

// buildEdges resolves relationships against the node set. Dangling
// relationships are dropped.
func buildEdges(nodes []*node, rels []Relationship) []edge {
	byName := make(map[string]*node, len(nodes))
	for _, n := range nodes {
		byName[nameKey(n.skill.Name)] = n
	}
	out := make([]edge, 0, len(rels))
	for _, r := range rels {
		a, b := byName[nameKey(r.Source)], byName[nameKey(r.Target)]
		if a == nil || b == nil {
			continue
		}
		out = append(out, edge{a: a, b: b, strength: r.StrengthOrDefault()})
	}
	return out
}

// active reports whether either endpoint is hovered or selected.
func (e edge) active() bool {
	return e.a.hovered || e.b.hovered || e.a.selected || e.b.selected
}
