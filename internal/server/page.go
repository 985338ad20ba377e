// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package server

import (
	_ "embed"
	"html/template"
	"net/http"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type pageData struct {
	Title  string
	Width  float64
	Height float64
	Panel  float64
	Groups []string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	width, height := s.graph.Size()
	data := pageData{
		Title:  "Skills constellation",
		Width:  width,
		Height: height,
		Panel:  s.panel.PanelHeight(),
		Groups: s.groups(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Warn("server: render page", "err", err)
	}
}

// groups lists the distinct skill groups in dataset order.
func (s *Server) groups() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range s.graph.Nodes() {
		if !seen[n.Group] {
			seen[n.Group] = true
			out = append(out, n.Group)
		}
	}
	return out
}
