package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/dexview/internal/catalog"
	"github.com/ziadkadry99/dexview/internal/overlay"
	"github.com/ziadkadry99/dexview/internal/view"
)

// RegisterRoutes mounts the page, help, script and catalog routes.
func RegisterRoutes(r chi.Router, s *Site) {
	r.Get("/", s.handleIndex)
	r.Get("/help", s.handleHelp)
	r.Get("/static/app.js", s.handleScript)
	r.Route("/api/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalog)
		r.Get("/{id}", s.handleRecord)
	})
}

type catalogResponse struct {
	catalog.Status
	PageSize int         `json:"page_size"`
	Cards    []view.Card `json:"cards"`
}

type recordResponse struct {
	Key      catalog.Key  `json:"key"`
	Complete bool         `json:"complete"`
	Card     view.Card    `json:"card"`
	Detail   *view.Detail `json:"detail,omitempty"`
}

func (s *Site) handleCatalog(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{PageSize: s.cfg.PageSize}
	if s.status != nil {
		resp.Status = s.status.Status()
	} else {
		resp.Status = catalog.Status{Complete: s.cache.CompleteCount(), Total: s.cache.Size()}
	}
	resp.Cards = make([]view.Card, 0, s.cache.Size())
	for k := catalog.Key(1); int(k) <= s.cache.Size(); k++ {
		rec, ok := s.cache.Get(k)
		resp.Cards = append(resp.Cards, view.NewCard(k, rec, ok))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Site) handleRecord(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid record id"})
		return
	}
	key := catalog.Key(id)
	rec, ok := s.cache.Get(key)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "record not found"})
		return
	}
	resp := recordResponse{Key: key, Complete: rec.Complete(), Card: view.NewCard(key, rec, ok)}
	if rec.Complete() {
		d := view.NewDetail(rec, overlay.SubviewAbout, s.cfg.NewsEntryIndex, nil)
		resp.Detail = &d
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
