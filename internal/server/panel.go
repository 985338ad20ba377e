// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	"sync"

	"github.com/gogpu/constellation"
)

// DefaultPanelHeight is the height of the details panel rendered under
// the frame by the embedded page, in CSS pixels.
const DefaultPanelHeight = 90

// Panel is the details sink of a served graph. It keeps the latest
// details so that HTTP clients can poll them.
type Panel struct {
	mu      sync.RWMutex
	height  float64
	current constellation.Details
	updates uint64
}

// NewPanel returns a panel of the given height showing the intro text.
func NewPanel(height float64) *Panel {
	if height <= 0 {
		height = DefaultPanelHeight
	}
	return &Panel{
		height: height,
		current: constellation.Details{
			Mode:        constellation.DetailsLeave,
			Name:        constellation.PromptHover,
			Level:       "-",
			Description: constellation.PromptIntro,
		},
	}
}

// ShowDetails implements constellation.DetailsSink.
func (p *Panel) ShowDetails(d constellation.Details) {
	p.mu.Lock()
	p.current = d
	p.updates++
	p.mu.Unlock()
}

// PanelHeight implements constellation.PanelSizer.
func (p *Panel) PanelHeight() float64 {
	return p.height
}

// Current returns the details shown last and how many updates arrived.
func (p *Panel) Current() (constellation.Details, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current, p.updates
}
