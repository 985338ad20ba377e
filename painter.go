package constellation

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// GradientKind selects the geometry of a Gradient.
type GradientKind uint8

const (
	// LinearGradient runs from (X0, Y0) to (X1, Y1).
	LinearGradient GradientKind = iota
	// RadialGradient runs from radius R0 to R1 around (X0, Y0).
	RadialGradient
)

// Gradient is a two-stop gradient in CSS pixel coordinates.
type Gradient struct {
	Kind           GradientKind
	X0, Y0, X1, Y1 float64
	R0, R1         float64
	From, To       gg.RGBA
}

// Paint is either a solid colour or, when Gradient is non-nil, a gradient.
type Paint struct {
	Color    gg.RGBA
	Gradient *Gradient
}

// SolidPaint returns a solid Paint.
func SolidPaint(c gg.RGBA) Paint { return Paint{Color: c} }

// LinearPaint returns a gradient from (x0, y0) to (x1, y1).
func LinearPaint(x0, y0, x1, y1 float64, from, to gg.RGBA) Paint {
	return Paint{Gradient: &Gradient{Kind: LinearGradient, X0: x0, Y0: y0, X1: x1, Y1: y1, From: from, To: to}}
}

// RadialPaint returns a gradient between radii r0 and r1 around (cx, cy).
func RadialPaint(cx, cy, r0, r1 float64, from, to gg.RGBA) Paint {
	return Paint{Gradient: &Gradient{Kind: RadialGradient, X0: cx, Y0: cy, R0: r0, R1: r1, From: from, To: to}}
}

// Painter is the small set of canvas operations the renderer needs.
// Coordinates are CSS pixels; implementations map them to device pixels.
type Painter interface {
	// Clear erases the whole surface to transparent.
	Clear()
	// FillCircle fills a disc.
	FillCircle(x, y, r float64, p Paint)
	// StrokeArc strokes the arc from angle a1 to a2 (radians, clockwise
	// in screen space) with round caps.
	StrokeArc(x, y, r, a1, a2, width float64, p Paint)
	// StrokeQuad strokes a quadratic curve.
	StrokeQuad(x0, y0, cx, cy, x1, y1, width float64, p Paint)
	// FillRoundedRect fills a rectangle with rounded corners.
	FillRoundedRect(x, y, w, h, r float64, p Paint)
	// MeasureText returns the advance width of s at the given size.
	MeasureText(s string, size float64, bold bool) float64
	// DrawText draws s centred on (x, y).
	DrawText(s string, x, y, size float64, bold bool, c gg.RGBA)
}

// ggPainter draws into a gg.Context whose pixels are scale times the CSS
// size. gg's arc and rounded-rectangle helpers do not apply the context
// transform to radii, so coordinates are scaled here instead.
type ggPainter struct {
	dc    *gg.Context
	scale float64
	fonts *Fonts
	faces map[faceKey]text.Face
}

type faceKey struct {
	bold bool
	size int // device pixels * 2
}

func newGGPainter(dc *gg.Context, scale float64, fonts *Fonts) *ggPainter {
	return &ggPainter{dc: dc, scale: scale, fonts: fonts, faces: make(map[faceKey]text.Face)}
}

func (p *ggPainter) s(v float64) float64 { return v * p.scale }

func (p *ggPainter) brush(pt Paint) gg.Brush {
	g := pt.Gradient
	if g == nil {
		return gg.Solid(pt.Color)
	}
	if g.Kind == RadialGradient {
		return gg.NewRadialGradientBrush(p.s(g.X0), p.s(g.Y0), p.s(g.R0), p.s(g.R1)).
			AddColorStop(0, g.From).
			AddColorStop(1, g.To)
	}
	return gg.NewLinearGradientBrush(p.s(g.X0), p.s(g.Y0), p.s(g.X1), p.s(g.Y1)).
		AddColorStop(0, g.From).
		AddColorStop(1, g.To)
}

func (p *ggPainter) Clear() {
	p.dc.ClearWithColor(gg.RGBA{})
}

func (p *ggPainter) FillCircle(x, y, r float64, pt Paint) {
	if r <= 0 {
		return
	}
	p.dc.SetFillBrush(p.brush(pt))
	p.dc.DrawCircle(p.s(x), p.s(y), p.s(r))
	p.report(p.dc.Fill())
}

func (p *ggPainter) StrokeArc(x, y, r, a1, a2, width float64, pt Paint) {
	if r <= 0 || a2 <= a1 {
		return
	}
	p.dc.ClearPath()
	p.dc.SetStrokeBrush(p.brush(pt))
	p.dc.SetLineWidth(p.s(width))
	p.dc.SetLineCap(gg.LineCapRound)
	if a2-a1 >= 2*math.Pi {
		p.dc.DrawCircle(p.s(x), p.s(y), p.s(r))
	} else {
		p.dc.DrawArc(p.s(x), p.s(y), p.s(r), a1, a2)
	}
	p.report(p.dc.Stroke())
}

func (p *ggPainter) StrokeQuad(x0, y0, cx, cy, x1, y1, width float64, pt Paint) {
	p.dc.SetStrokeBrush(p.brush(pt))
	p.dc.SetLineWidth(p.s(width))
	p.dc.MoveTo(p.s(x0), p.s(y0))
	p.dc.QuadraticTo(p.s(cx), p.s(cy), p.s(x1), p.s(y1))
	p.report(p.dc.Stroke())
}

func (p *ggPainter) FillRoundedRect(x, y, w, h, r float64, pt Paint) {
	p.dc.SetFillBrush(p.brush(pt))
	p.dc.DrawRoundedRectangle(p.s(x), p.s(y), p.s(w), p.s(h), p.s(r))
	p.report(p.dc.Fill())
}

func (p *ggPainter) face(size float64, bold bool) text.Face {
	if p.fonts == nil {
		return nil
	}
	key := faceKey{bold: bold, size: int(math.Round(p.s(size) * 2))}
	if f, ok := p.faces[key]; ok {
		return f
	}
	f := p.fonts.face(float64(key.size)/2, bold)
	p.faces[key] = f
	return f
}

func (p *ggPainter) MeasureText(s string, size float64, bold bool) float64 {
	f := p.face(size, bold)
	if f == nil {
		// Rough advance so label pills keep a sensible size without fonts.
		return float64(len([]rune(s))) * size * 0.55
	}
	w, _ := text.Measure(s, f)
	return w / p.scale
}

func (p *ggPainter) DrawText(s string, x, y, size float64, bold bool, c gg.RGBA) {
	f := p.face(size, bold)
	if f == nil {
		return
	}
	p.dc.SetFont(f)
	p.dc.SetRGBA(c.R, c.G, c.B, c.A)
	p.dc.DrawStringAnchored(s, p.s(x), p.s(y), 0.5, 0.5)
}

func (p *ggPainter) report(err error) {
	if err != nil {
		Logger().Debug("constellation: draw failed", "error", err)
	}
}
