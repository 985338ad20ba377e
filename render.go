package constellation

import (
	"math"

	"github.com/gogpu/gg"
)

// Label and ring styling.
const (
	orbitRingAlpha = 0.18
	orbitRingWidth = 3
	glowAlpha      = 0.18
	glowInner      = 0.5
	glowOuter      = 4
	fadedOpacity   = 0.6

	labelPadX      = 10
	labelPadY      = 6
	labelRadius    = 6
	labelMinFont   = 12
	labelFontRatio = 2.2

	labelShadowAlpha = 0.45
	labelShadowBlur  = 6
)

var (
	white      = gg.RGBA{R: 1, G: 1, B: 1, A: 1}
	black      = gg.RGBA{A: 1}
	labelLight = gg.RGBA{A: 0.65}
)

// labelShadowTaps spread the label shadow over the blur radius: axis taps
// at a third of it and diagonal taps at two thirds.
var labelShadowTaps = func() [][2]float64 {
	near, far := labelShadowBlur/3.0, labelShadowBlur*2/3.0/math.Sqrt2
	return [][2]float64{
		{near, 0}, {-near, 0}, {0, near}, {0, -near},
		{far, far}, {-far, far}, {far, -far}, {-far, -far},
	}
}()

// labelShadowTapAlpha makes the taps add up to labelShadowAlpha where
// they all overlap.
var labelShadowTapAlpha = 1 - math.Pow(1-labelShadowAlpha, 1/float64(len(labelShadowTaps)))

// scene is what one frame draws. nodes are in ascending z-order.
type scene struct {
	nodes         []*node
	edges         []edge
	particles     []*linkParticle
	time          float64
	reducedMotion bool
	dark          bool
}

// drawScene paints links, then link particles, then nodes.
func drawScene(p Painter, sc *scene) {
	p.Clear()
	for _, e := range sc.edges {
		drawLink(p, e)
	}
	for _, lp := range sc.particles {
		drawLinkParticle(p, lp)
	}
	for _, n := range sc.nodes {
		drawNode(p, n, sc)
	}
}

func drawLink(p Painter, e edge) {
	a, b := e.a, e.b
	if a.opacity < hiddenOpacityCut || b.opacity < hiddenOpacityCut {
		return
	}
	alpha := linkAlpha
	if e.active() {
		alpha = linkAlphaActive
	}
	alpha *= math.Min(a.opacity, b.opacity)

	cx, cy := linkControl(a.x, a.y, b.x, b.y)
	p.StrokeQuad(a.x, a.y, cx, cy, b.x, b.y, linkWidth,
		LinearPaint(a.x, a.y, b.x, b.y, withAlpha(a.color, alpha), withAlpha(b.color, alpha)))
}

func drawLinkParticle(p Painter, lp *linkParticle) {
	if lp.src.opacity < hiddenOpacityCut || lp.dst.opacity < hiddenOpacityCut {
		return
	}
	a := lp.opacity * math.Min(lp.src.opacity, lp.dst.opacity)
	p.FillCircle(lp.x, lp.y, lp.size, SolidPaint(withAlpha(lp.color, a)))
}

func drawNode(p Painter, n *node, sc *scene) {
	if n.opacity < invisibleCut {
		return
	}

	if n.glow > hiddenOpacityCut && !sc.reducedMotion {
		c := n.color
		if n.opacity < fadedOpacity {
			c = desaturate(c)
		}
		p.FillCircle(n.x, n.y, n.radius*glowOuter, RadialPaint(n.x, n.y,
			n.radius*glowInner, n.radius*glowOuter,
			withAlpha(c, glowAlpha*n.glow*n.opacity), withAlpha(c, 0)))
	}

	for _, d := range n.orbit {
		px := n.x + math.Cos(d.angle)*d.distance
		py := n.y + math.Sin(d.angle)*d.distance
		p.FillCircle(px, py, d.size, SolidPaint(withAlpha(n.particleColor, d.opacity*n.opacity)))
	}

	p.StrokeArc(n.x, n.y, n.orbitRadius, 0, 2*math.Pi, orbitRingWidth,
		SolidPaint(withAlpha(n.color, orbitRingAlpha*n.opacity)))

	level := n.level
	if !sc.reducedMotion {
		level = math.Min(sc.time*levelSweepPerMS, n.level)
	}
	if level > 0 {
		start := -math.Pi / 2
		p.StrokeArc(n.x, n.y, n.orbitRadius, start, start+level*2*math.Pi, orbitRingWidth,
			SolidPaint(withAlpha(n.color, n.opacity)))
	}

	p.FillCircle(n.x, n.y, n.radius, RadialPaint(n.x, n.y, 0, n.radius,
		withAlpha(n.color, 0.9*n.opacity), withAlpha(n.color, 0.7*n.opacity)))
	border, width := 0.25, 1.0
	if n.hovered {
		border, width = 0.6, 2
	}
	p.StrokeArc(n.x, n.y, n.radius, 0, 2*math.Pi, width, SolidPaint(withAlpha(white, border*n.opacity)))

	drawLabel(p, n, sc.dark)
}

func drawLabel(p Painter, n *node, dark bool) {
	size := math.Max(labelMinFont, n.radius/labelFontRatio)
	name := n.skill.Name
	w := p.MeasureText(name, size, n.hovered) + labelPadX*2
	h := size + labelPadY*2

	bg := labelLight
	if dark {
		bg = withAlpha(n.color, 0.85)
	}
	bg.A *= n.opacity
	left, top, r := pillRect(n.x, n.y, w, h, labelRadius)
	p.FillRoundedRect(left, top, w, h, r, SolidPaint(bg))

	shadow := withAlpha(black, labelShadowTapAlpha*n.opacity)
	for _, d := range labelShadowTaps {
		p.DrawText(name, n.x+d[0], n.y+d[1], size, n.hovered, shadow)
	}
	p.DrawText(name, n.x, n.y, size, n.hovered, withAlpha(white, n.opacity))
}
