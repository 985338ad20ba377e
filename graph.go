package constellation

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gg"
	"github.com/google/uuid"

	"github.com/gogpu/constellation/noise"
	"github.com/gogpu/constellation/surface"
)

// Errors returned by New. Both leave the caller with a nil graph that is
// safe to call methods on.
var (
	ErrNoTarget     = errors.New("constellation: no target")
	ErrEmptyDataset = errors.New("constellation: no skills to show")
)

// Graph is one animated skills constellation. All methods are safe for
// concurrent use and are no-ops on a nil *Graph.
type Graph struct {
	mu sync.Mutex

	id     string
	target surface.Target
	opts   options
	load   LoadResult
	theme  Theme

	nodes     []*node
	order     []*node // nodes by ascending z, rebuilt every frame
	edges     []edge
	particles *linkParticles
	rng       *rand.Rand
	noise     *noise.Simplex

	dc      *gg.Context
	painter *ggPainter

	width, height float64
	ratio         float64
	panel         float64
	reducedMotion bool
	dark          bool

	epoch   time.Time
	started bool
	time    float64 // ms since the first frame
	frames  uint64

	ptr       pointer
	dragged   *node
	selected  *node
	mouseDown bool
	dragMoved bool
	filter    string
	deferred  []deferredTask

	scheduler Scheduler
	running   bool
	gen       uint64
	cancel    func()
	disposed  bool
}

// deferredTask runs once the frame clock reaches at.
type deferredTask struct {
	at float64
	fn func()
}

// New loads the dataset, lays out the nodes and prepares the frame
// surface. The graph does not animate until Start is called.
//
// A nil target yields ErrNoTarget; a dataset without skills, after the
// API and fallback were tried, yields ErrEmptyDataset. Both return a nil
// graph.
func New(ctx context.Context, target surface.Target, opts ...Option) (*Graph, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.seeded {
		o.seed = rand.Int64()
	}

	load := LoadDataset(ctx, o.api, o.fallback)
	skills := load.Dataset.UniqueSkills()
	if len(skills) == 0 {
		return nil, ErrEmptyDataset
	}

	g := &Graph{
		id:        uuid.NewString(),
		target:    target,
		opts:      o,
		load:      load,
		theme:     DefaultTheme().merge(o.groups),
		height:    o.height,
		rng:       rand.New(rand.NewPCG(uint64(o.seed), uint64(o.seed)>>1^0x9e3779b97f4a7c15)),
		noise:     noise.New(o.seed),
		particles: newLinkParticles(o.maxParticles),
		scheduler: o.scheduler,
		filter:    FilterAll,
	}
	g.theme.DarkClass = o.darkClass
	if g.scheduler == nil {
		g.scheduler = NewTickerScheduler(DefaultFrameRate)
	}

	g.panel = o.panelHeight
	if ps, ok := o.details.(PanelSizer); ok && !o.panelSet {
		g.panel = ps.PanelHeight()
	}
	if mp, ok := target.(surface.MotionPreference); ok && o.respectMotion {
		g.reducedMotion = mp.PrefersReducedMotion()
	}
	g.dark = g.readDark()

	fonts := o.fonts
	if fonts == nil {
		var err error
		if fonts, err = DefaultFonts(); err != nil {
			Logger().Warn("constellation: labels disabled", "error", err)
		}
	}

	g.width = math.Max(1, target.Width())
	g.ratio = clamp(target.PixelRatio(), 1, maxPixelRatio)
	pw, ph := g.pixelSize()
	g.dc = gg.NewContext(pw, ph)
	g.painter = newGGPainter(g.dc, g.ratio, fonts)

	g.nodes = make([]*node, len(skills))
	for i, s := range skills {
		g.nodes[i] = newNode(s, i, g.theme.Colors(s.GroupKey()), g.width, g.height, g.rng)
	}
	g.order = slices.Clone(g.nodes)
	g.edges = buildEdges(g.nodes, load.Dataset.Relationships)
	arrange(g.nodes, g.layoutBounds(), g.rng, true)

	Logger().Info("constellation: graph created",
		"id", g.id, "source", load.Source, "skills", len(g.nodes), "edges", len(g.edges),
		"width", g.width, "height", g.height, "pixelRatio", g.ratio, "reducedMotion", g.reducedMotion)
	return g, nil
}

func (g *Graph) pixelSize() (int, int) {
	return max(1, int(math.Floor(g.width*g.ratio))), max(1, int(math.Floor(g.height*g.ratio)))
}

func (g *Graph) layoutBounds() layoutBounds {
	return layoutBounds{width: g.width, height: g.height, inset: g.panel + layoutInsetExtra}
}

func (g *Graph) readDark() bool {
	ts, ok := g.target.(surface.ThemeSource)
	return ok && ts.HasClass(g.theme.DarkClass)
}

// ID returns the unique identifier of this graph instance.
func (g *Graph) ID() string {
	if g == nil {
		return ""
	}
	return g.id
}

// Load returns how the dataset was resolved.
func (g *Graph) Load() LoadResult {
	if g == nil {
		return LoadResult{}
	}
	return g.load
}

// Start begins the animation. It is a no-op when already running or
// after Dispose.
func (g *Graph) Start() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running || g.disposed {
		return
	}
	g.running = true
	g.gen++
	g.scheduleLocked()
	Logger().Info("constellation: started", "id", g.id)
}

func (g *Graph) scheduleLocked() {
	gen := g.gen
	g.cancel = g.scheduler.Schedule(func(now time.Time) {
		g.frame(gen, now)
	})
}

func (g *Graph) frame(gen uint64, now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.running || g.gen != gen {
		return
	}
	if err := g.stepLocked(now); err != nil {
		Logger().Warn("constellation: present failed", "id", g.id, "error", err)
	}
	if g.running && g.gen == gen {
		g.scheduleLocked()
	}
}

// Stop cancels the pending frame. Start resumes the animation.
func (g *Graph) Stop() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
}

func (g *Graph) stopLocked() {
	if !g.running {
		return
	}
	g.running = false
	g.gen++
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
	Logger().Info("constellation: stopped", "id", g.id)
}

// Running reports whether frames are being scheduled.
func (g *Graph) Running() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Dispose stops the animation, releases nodes and particles, and closes
// the surface and the target. Every other method is a no-op afterwards.
func (g *Graph) Dispose() error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return nil
	}
	g.stopLocked()
	g.disposed = true

	g.particles.reset()
	g.nodes, g.order, g.edges, g.deferred = nil, nil, nil, nil
	g.dragged, g.selected = nil, nil

	var errs []error
	if err := g.dc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("constellation: close surface: %w", err))
	}
	if err := g.target.Close(); err != nil {
		errs = append(errs, fmt.Errorf("constellation: close target: %w", err))
	}
	Logger().Info("constellation: disposed", "id", g.id)
	return errors.Join(errs...)
}

// Step runs one frame synchronously at time now and presents it to the
// target. It works whether or not the graph is running, which lets
// offline renderers drive the animation with a synthetic clock.
func (g *Graph) Step(now time.Time) error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stepLocked(now)
}

func (g *Graph) stepLocked(now time.Time) error {
	if g.disposed {
		return nil
	}
	if !g.started {
		g.epoch = now
		g.started = true
	}
	g.time = float64(now.Sub(g.epoch)) / float64(time.Millisecond)
	g.frames++

	g.runDeferred()

	slices.SortStableFunc(g.order, func(a, b *node) int { return a.z - b.z })
	env := stepEnv{
		time:          g.time,
		pointer:       g.ptr,
		dragged:       g.dragged,
		nodes:         g.order,
		width:         g.width,
		height:        g.height,
		bottomInset:   g.panel + physicsInsetExtra,
		reducedMotion: g.reducedMotion,
		noise:         g.noise,
	}
	for _, n := range g.order {
		n.update(&env)
		n.pulse(g.time, g.reducedMotion)
	}
	g.particles.update(g.edges, g.rng)

	drawScene(g.painter, &scene{
		nodes:         g.order,
		edges:         g.edges,
		particles:     g.particles.list,
		time:          g.time,
		reducedMotion: g.reducedMotion,
		dark:          g.dark,
	})
	return g.target.Present(g.snapshot())
}

// snapshot copies the surface into a frame the target may keep.
func (g *Graph) snapshot() *image.RGBA {
	src := g.dc.Image()
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img
}

func (g *Graph) runDeferred() {
	if len(g.deferred) == 0 {
		return
	}
	due := g.deferred[:0:0]
	keep := g.deferred[:0]
	for _, t := range g.deferred {
		if t.at <= g.time {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	g.deferred = keep
	for _, t := range due {
		t.fn()
	}
}

func (g *Graph) after(ms float64, fn func()) {
	g.deferred = append(g.deferred, deferredTask{at: g.time + ms, fn: fn})
}

// Resize sets the CSS width, re-reads the target's pixel ratio, resizes
// the frame surface and recomputes layout targets. A non-positive width
// re-reads the width from the target. Nodes drift to the new targets.
func (g *Graph) Resize(width float64) error {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return nil
	}
	if width <= 0 {
		width = g.target.Width()
	}
	g.width = math.Max(1, width)
	g.ratio = clamp(g.target.PixelRatio(), 1, maxPixelRatio)
	pw, ph := g.pixelSize()
	if err := g.dc.Resize(pw, ph); err != nil {
		return fmt.Errorf("constellation: resize: %w", err)
	}
	g.painter.scale = g.ratio
	arrange(g.nodes, g.layoutBounds(), g.rng, false)
	Logger().Debug("constellation: resized", "id", g.id, "width", g.width, "pixels", fmt.Sprintf("%dx%d", pw, ph))
	return nil
}

// RefreshTheme re-reads dark mode from the target and reapplies the
// group colours. Call it after toggling the host theme.
func (g *Graph) RefreshTheme() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disposed {
		return
	}
	g.dark = g.readDark()
	for _, n := range g.nodes {
		n.setColors(g.theme.Colors(n.skill.GroupKey()))
	}
}

// Dark reports whether labels are drawn in dark mode.
func (g *Graph) Dark() bool {
	if g == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dark
}

// Size returns the CSS size of the graph.
func (g *Graph) Size() (width, height float64) {
	if g == nil {
		return 0, 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.width, g.height
}

// ReducedMotion reports whether non-essential animation is disabled.
func (g *Graph) ReducedMotion() bool {
	if g == nil {
		return false
	}
	return g.reducedMotion
}
