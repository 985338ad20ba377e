package constellation

import "slices"

// FilterAll is the category that shows every skill.
const FilterAll = "all"

// PointerMove records the pointer position in CSS pixels and reports the
// skill under it, or the dragged skill, to the details sink.
func (g *Graph) PointerMove(x, y float64) {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.ptr = pointer{x: x, y: y, ok: true}
	if g.mouseDown && g.dragged != nil {
		g.dragMoved = true
	}

	var hovered *node
	if !g.dragMoved || g.dragged != nil {
		hovered = g.hitTest(x, y)
	}
	switch {
	case hovered != nil:
		g.showDetails(skillDetails(hovered, DetailsHover))
	case g.dragged != nil:
		g.showDetails(skillDetails(g.dragged, DetailsDrag))
	default:
		g.showDetails(placeholderDetails(DetailsNone))
	}
}

// PointerDown presses at (x, y). A visible skill under the pointer is
// picked up for dragging and becomes the selection. A skill still held
// from an earlier press is released first.
func (g *Graph) PointerDown(x, y float64) {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.releaseDragged()
	g.mouseDown = true
	g.ptr = pointer{x: x, y: y, ok: true}

	n := g.hitTest(x, y)
	if n == nil {
		return
	}
	g.dragged = n
	n.dragging = true
	n.z = zDragged

	if g.selected != nil && g.selected != n {
		g.selected.selected = false
		g.selected.targetGlow = glowIdle
	}
	g.selected = n
	n.selected = true
	n.targetGlow = glowActive
}

// PointerUp releases a dragged skill. Its z-order drops back a short
// while later unless the pointer still hovers it.
func (g *Graph) PointerUp() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.mouseDown = false
	g.releaseDragged()
}

// releaseDragged drops the held node, if any, and queues its z-order
// restore.
func (g *Graph) releaseDragged() {
	if released := g.dragged; released != nil {
		released.dragging = false
		g.after(releaseDelayMS, func() {
			if released.hovered || released.dragging {
				return
			}
			if released.selected {
				released.z = zRaised
			} else {
				released.z = zBaseline
			}
		})
		g.dragged = nil
	}
	g.dragMoved = false
}

// PointerLeave forgets the pointer position.
func (g *Graph) PointerLeave() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.ptr = pointer{}
	g.showDetails(placeholderDetails(DetailsLeave))
}

// SetCategoryFilter shows only the skills of one group, dimming the rest,
// or every skill for FilterAll. A selection that becomes hidden is
// cleared. Layout targets are recomputed; nodes drift to them.
func (g *Graph) SetCategoryFilter(category string) {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.filter = category
	visible := 0
	for _, n := range g.nodes {
		ok := category == FilterAll || n.skill.GroupKey() == category
		n.visible = ok
		if ok {
			n.targetOpacity = 1
			visible++
		} else {
			n.targetOpacity = dimmedOpacity
		}
	}
	if g.selected != nil && !g.selected.visible {
		g.selected.selected = false
		g.selected = nil
	}
	arrange(g.nodes, g.layoutBounds(), g.rng, false)
	Logger().Debug("constellation: filter", "id", g.id, "category", category, "visible", visible)
}

// Filter returns the active category filter.
func (g *Graph) Filter() string {
	if g == nil {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.filter
}

// hitTest returns the top-most visible node containing (x, y).
func (g *Graph) hitTest(x, y float64) *node {
	top := slices.Clone(g.nodes)
	slices.SortStableFunc(top, func(a, b *node) int { return b.z - a.z })
	for _, n := range top {
		if n.visible && n.contains(x, y) {
			return n
		}
	}
	return nil
}

func (g *Graph) showDetails(d Details) {
	if g.opts.details != nil {
		g.opts.details.ShowDetails(d)
	}
}
