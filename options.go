package constellation

// Option configures a Graph during creation.
//
// Example:
//
//	g, err := constellation.New(ctx, target,
//	    constellation.WithFallback(data),
//	    constellation.WithHeight(420),
//	)
type Option func(*options)

// options holds the creation settings of a Graph.
type options struct {
	details       DetailsSink
	api           *APIConfig
	fallback      Dataset
	height        float64
	respectMotion bool
	groups        map[string]GroupColors
	darkClass     string
	seed          int64
	seeded        bool
	scheduler     Scheduler
	maxParticles  int
	panelHeight   float64
	panelSet      bool
	fonts         *Fonts
}

// defaultOptions returns the documented defaults.
func defaultOptions() options {
	return options{
		height:        defaultHeight,
		respectMotion: true,
		darkClass:     DefaultTheme().DarkClass,
		maxParticles:  defaultMaxParticles,
		panelHeight:   defaultPanelHeight,
	}
}

// WithDetails sets where hover and drag details are reported. When the
// sink also implements PanelSizer its height is reserved at the bottom of
// the graph.
func WithDetails(d DetailsSink) Option {
	return func(o *options) {
		o.details = d
	}
}

// WithAPI enables the remote data source. The API is fetched once in New.
func WithAPI(api APIConfig) Option {
	return func(o *options) {
		o.api = &api
	}
}

// WithFallback sets the dataset used when the API is absent or fails.
func WithFallback(d Dataset) Option {
	return func(o *options) {
		o.fallback = d
	}
}

// WithHeight sets the CSS height of the graph. Non-positive values keep
// the default of 500.
func WithHeight(h float64) Option {
	return func(o *options) {
		if h > 0 {
			o.height = h
		}
	}
}

// WithReducedMotion controls whether the target's reduced-motion
// preference is honoured. The default is true.
func WithReducedMotion(respect bool) Option {
	return func(o *options) {
		o.respectMotion = respect
	}
}

// WithGroupColors overlays group colours on the default palette. A
// "default" entry is always present.
func WithGroupColors(groups map[string]GroupColors) Option {
	return func(o *options) {
		if o.groups == nil {
			o.groups = make(map[string]GroupColors, len(groups))
		}
		for k, v := range groups {
			o.groups[k] = v
		}
	}
}

// WithDarkClass sets the class name that marks dark mode on the target.
func WithDarkClass(name string) Option {
	return func(o *options) {
		if name != "" {
			o.darkClass = name
		}
	}
}

// WithSeed makes layout, jitter, particles and noise deterministic.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithScheduler sets the frame scheduler used by Start. The default is a
// TickerScheduler at 60 frames per second.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithMaxParticles caps the live link particles. Non-positive values keep
// the default of 120.
func WithMaxParticles(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxParticles = n
		}
	}
}

// WithPanelHeight sets the height of the details panel that covers the
// bottom of the graph. It overrides a PanelSizer sink.
func WithPanelHeight(h float64) Option {
	return func(o *options) {
		if h >= 0 {
			o.panelHeight = h
			o.panelSet = true
		}
	}
}

// WithFonts sets the label fonts. The default is DefaultFonts.
func WithFonts(f *Fonts) Option {
	return func(o *options) {
		o.fonts = f
	}
}
