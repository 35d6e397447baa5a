package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fsindex/app"
	"fsindex/models"
)

// Server exposes the engine boundaries as a JSON API. It is a thin consumer:
// all semantics live in the app package.
type Server struct {
	indexer  *app.Indexer
	searcher *app.Searcher
	cfg      *models.AppConfig
}

func NewServer(indexer *app.Indexer, searcher *app.Searcher, cfg *models.AppConfig) *Server {
	return &Server{indexer: indexer, searcher: searcher, cfg: cfg}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/api/search", s.handleSearch)
	r.Get("/api/recent", s.handleRecent)
	r.Get("/api/duplicates", s.handleDuplicates)
	r.Get("/api/stats", s.handleStats)
	r.Post("/api/scan", s.handleScan)

	return r
}
