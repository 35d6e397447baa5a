package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"fsindex/app"
	"fsindex/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := parseSearchQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results, err := s.searcher.Search(r.Context(), q)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := parseInt64Param(r, "limit", 50)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	results, err := s.searcher.Recent(r.Context(), limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	limit, err := parseInt64Param(r, "limit", 25)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	groups, err := s.searcher.Duplicates(r.Context(), limit)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.searcher.Stats(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type scanRequest struct {
	Root  string `json:"root"`
	Hash  bool   `json:"hash"`
	Prune bool   `json:"prune"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := app.ScanOptions{
		ComputeHash:  req.Hash,
		Prune:        req.Prune,
		Workers:      s.cfg.Index.ScanWorkers,
		ExcludePaths: s.cfg.Index.ExcludePaths,
	}
	summary, err := s.indexer.Scan(r.Context(), req.Root, opts)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func parseSearchQuery(r *http.Request) (*models.SearchQuery, error) {
	q := &models.SearchQuery{
		NameLike: r.URL.Query().Get("q"),
		Ext:      r.URL.Query().Get("ext"),
		Desc:     r.URL.Query().Get("desc") == "true",
	}

	if v := r.URL.Query().Get("sort"); v != "" {
		q.Sort = models.SortKey(v)
	}

	var err error
	if q.MinSize, err = parseOptInt64(r, "min_size"); err != nil {
		return nil, err
	}
	if q.MaxSize, err = parseOptInt64(r, "max_size"); err != nil {
		return nil, err
	}
	if q.From, err = parseOptDate(r, "from", false); err != nil {
		return nil, err
	}
	if q.To, err = parseOptDate(r, "to", true); err != nil {
		return nil, err
	}
	if q.Limit, err = parseInt64Param(r, "limit", 50); err != nil {
		return nil, err
	}
	if q.Offset, err = parseInt64Param(r, "offset", 0); err != nil {
		return nil, err
	}

	return q, nil
}

func parseInt64Param(r *http.Request, name string, fallback int64) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func parseOptInt64(r *http.Request, name string) (*int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// parseOptDate reads a YYYY-MM-DD parameter; an end-of-range date covers the
// whole day.
func parseOptDate(r *http.Request, name string, endOfDay bool) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeEngineError maps the engine's error classes to HTTP statuses: rejected
// input is the client's fault, everything else is ours.
func writeEngineError(w http.ResponseWriter, err error) {
	var cfgErr *app.ConfigError
	if errors.As(err, &cfgErr) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	log.Printf("Request failed: %v", err)
	writeError(w, http.StatusInternalServerError, err)
}
