package constellation

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
)

// Fonts holds the label typefaces: Regular for idle labels and Bold for
// the hovered one.
type Fonts struct {
	Regular *text.FontSource
	Bold    *text.FontSource
}

func (f *Fonts) face(size float64, bold bool) text.Face {
	src := f.Regular
	if bold && f.Bold != nil {
		src = f.Bold
	}
	if src == nil {
		return nil
	}
	return src.Face(size)
}

var (
	defaultFontsOnce sync.Once
	defaultFonts     *Fonts
	defaultFontsErr  error
)

// DefaultFonts returns the embedded Go fonts (medium and bold). They are
// parsed once and shared by every graph.
func DefaultFonts() (*Fonts, error) {
	defaultFontsOnce.Do(func() {
		regular, err := text.NewFontSource(gomedium.TTF)
		if err != nil {
			defaultFontsErr = fmt.Errorf("constellation: load medium font: %w", err)
			return
		}
		bold, err := text.NewFontSource(gobold.TTF)
		if err != nil {
			defaultFontsErr = fmt.Errorf("constellation: load bold font: %w", err)
			return
		}
		defaultFonts = &Fonts{Regular: regular, Bold: bold}
	})
	return defaultFonts, defaultFontsErr
}
