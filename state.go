package constellation

// NodeState is a read-only view of one node.
type NodeState struct {
	Name     string  `json:"name"`
	Group    string  `json:"group"`
	Level    float64 `json:"level"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetX  float64 `json:"targetX"`
	TargetY  float64 `json:"targetY"`
	Radius   float64 `json:"radius"`
	Base     float64 `json:"baseRadius"`
	Opacity  float64 `json:"opacity"`
	Glow     float64 `json:"glow"`
	Z        int     `json:"z"`
	Visible  bool    `json:"visible"`
	Hovered  bool    `json:"hovered"`
	Selected bool    `json:"selected"`
	Dragging bool    `json:"dragging"`
}

// EdgeState is a read-only view of one resolved relationship.
type EdgeState struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	Active   bool    `json:"active"`
}

// Stats summarises the animation for metrics.
type Stats struct {
	Frames       uint64
	Particles    int
	VisibleNodes int
	Nodes        int
	Edges        int
	Running      bool
}

// Nodes returns the nodes in dataset order.
func (g *Graph) Nodes() []NodeState {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]NodeState, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = NodeState{
			Name:     n.skill.Name,
			Group:    n.skill.GroupKey(),
			Level:    n.level,
			X:        n.x,
			Y:        n.y,
			TargetX:  n.targetX,
			TargetY:  n.targetY,
			Radius:   n.radius,
			Base:     n.baseRadius,
			Opacity:  n.opacity,
			Glow:     n.glow,
			Z:        n.z,
			Visible:  n.visible,
			Hovered:  n.hovered,
			Selected: n.selected,
			Dragging: n.dragging,
		}
	}
	return out
}

// Edges returns the resolved relationships.
func (g *Graph) Edges() []EdgeState {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]EdgeState, len(g.edges))
	for i, e := range g.edges {
		out[i] = EdgeState{
			Source:   e.a.skill.Name,
			Target:   e.b.skill.Name,
			Strength: e.strength,
			Active:   e.active(),
		}
	}
	return out
}

// Skill returns the skill with the given name.
func (g *Graph) Skill(name string) (Skill, bool) {
	if g == nil {
		return Skill{}, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	key := nameKey(name)
	for _, n := range g.nodes {
		if nameKey(n.skill.Name) == key {
			return n.skill, true
		}
	}
	return Skill{}, false
}

// Stats returns counters for the current frame.
func (g *Graph) Stats() Stats {
	if g == nil {
		return Stats{}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	s := Stats{
		Frames:    g.frames,
		Particles: g.particles.len(),
		Nodes:     len(g.nodes),
		Edges:     len(g.edges),
		Running:   g.running,
	}
	for _, n := range g.nodes {
		if n.visible {
			s.VisibleNodes++
		}
	}
	return s
}
