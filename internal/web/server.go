package web

import (
	"fmt"
	"net/http"

	"github.com/intelligrit/listnorm/internal/catalog"
)

// Server exposes the run catalog as a small status API.
type Server struct {
	Catalog *catalog.Catalog
	Addr    string
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	fmt.Printf("Serving at http://%s\n", s.Addr)
	return http.ListenAndServe(s.Addr, s.Handler())
}

// Handler builds the API mux; split out so tests can drive it directly.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/runs", s.handleRuns)
	mux.HandleFunc("/api/files", s.handleFiles)
	return mux
}
