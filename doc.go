// Package constellation renders an interactive, physics-animated graph of
// skills: labelled nodes grouped into coloured clusters, joined by curved
// links along which small particles flow.
//
// # Overview
//
// Each frame runs a stylised force simulation (simplex-noise drift, a weak
// spring toward each node's cluster target, pairwise collision impulses,
// friction and bounds clamping), advances the link particles and then
// paints everything into a gg.Context. The finished frame is handed to a
// surface.Target, which may keep it in memory, write PNG files or serve it
// over HTTP.
//
// # Quick Start
//
//	target := surface.NewMemoryTarget(960, 1)
//	g, err := constellation.New(ctx, target,
//	    constellation.WithFallback(dataset.Default()),
//	    constellation.WithHeight(500),
//	)
//	if err != nil {
//	    return err // ErrNoTarget or ErrEmptyDataset: nothing to show
//	}
//	defer g.Dispose()
//
//	g.Start()
//	g.SetCategoryFilter("frontend")
//
// # Data
//
// Skills and relationships come from an optional JSON endpoint (see
// APIConfig) with a static fallback. Fetch failures never surface as
// errors; the graph reports which path was taken through Graph.Load.
//
// # Interaction
//
// Hosts forward pointer input through PointerMove, PointerDown, PointerUp
// and PointerLeave. Hovering a node feeds its details to an optional
// DetailsSink; pressing on a node selects and drags it.
//
// # Coordinate System
//
// All positions are CSS pixels with the origin at the top-left corner.
// The backing gg.Context is sized width*dpr by height*dpr, with dpr capped
// at 2.
//
// # Concurrency
//
// A Graph serialises frames and host calls with an internal mutex, so the
// pointer and filter methods may be called from any goroutine.
package constellation
