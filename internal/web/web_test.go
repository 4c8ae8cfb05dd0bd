package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

type fixedStatus catalog.Status

func (f fixedStatus) Status() catalog.Status { return catalog.Status(f) }

func setupSite(t *testing.T) (chi.Router, *catalog.Cache) {
	t.Helper()
	cache := catalog.NewCache(5)
	cache.SetPrimary(1, catalog.Primary{ID: 1, Name: "bulbasaur", Sprite: "b.png", Types: []string{"grass"}, Height: 7, Weight: 69})
	cache.SetSecondary(1, catalog.Secondary{ID: 1, Color: "green", FlavorTexts: []catalog.FlavorText{{Text: "seed"}}})
	cache.SetPrimary(2, catalog.Primary{ID: 2, Name: "ivysaur"})

	site, err := New(Config{PageSize: 2, SearchMinChars: 3, NewsEntryIndex: 2}, cache, fixedStatus{Loading: true, Complete: 1, Total: 5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	RegisterRoutes(r, site)
	return r, cache
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func TestIndexPage(t *testing.T) {
	r, _ := setupSite(t)
	w := get(t, r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	body := doc.Find("body")
	if size, _ := body.Attr("data-size"); size != "5" {
		t.Errorf("data-size = %q", size)
	}
	if ps, _ := body.Attr("data-page-size"); ps != "2" {
		t.Errorf("data-page-size = %q", ps)
	}
	if n := doc.Find("#overlay button[data-subview]").Length(); n != 4 {
		t.Errorf("subview buttons = %d, want 4", n)
	}
	if doc.Find(`script[src="/static/app.js"]`).Length() != 1 {
		t.Error("client script not referenced")
	}
}

func TestHelpPage(t *testing.T) {
	r, _ := setupSite(t)
	w := get(t, r, "/help")
	doc, err := goquery.NewDocumentFromReader(w.Body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if h := doc.Find("h1").First().Text(); h != "dexview help" {
		t.Errorf("h1 = %q", h)
	}
	if id, _ := doc.Find("h2").First().Attr("id"); id != "cards-and-details" {
		t.Errorf("first h2 id = %q", id)
	}
	if doc.Find("pre").Length() == 0 {
		t.Error("expected the protocol example code block")
	}
	if !strings.Contains(doc.Find("pre").Text(), `"subview"`) {
		t.Errorf("code block text = %q", doc.Find("pre").Text())
	}
}

func TestScript(t *testing.T) {
	r, _ := setupSite(t)
	w := get(t, r, "/static/app.js")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/ws/session") {
		t.Errorf("unexpected script response %d", w.Code)
	}
}

func TestCatalogEndpoint(t *testing.T) {
	r, _ := setupSite(t)
	w := get(t, r, "/api/catalog/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp catalogResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Loading || resp.Complete != 1 || resp.Total != 5 || resp.PageSize != 2 {
		t.Errorf("unexpected status %+v", resp.Status)
	}
	if len(resp.Cards) != 5 {
		t.Fatalf("cards = %d, want 5", len(resp.Cards))
	}
	if !resp.Cards[0].Loaded || resp.Cards[1].Loaded || resp.Cards[4].Name != "" {
		t.Errorf("unexpected cards %+v", resp.Cards)
	}
}

func TestRecordEndpoint(t *testing.T) {
	r, _ := setupSite(t)

	w := get(t, r, "/api/catalog/1")
	var resp recordResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Complete || resp.Detail == nil || resp.Detail.About.Height != "0.7 m" {
		t.Errorf("unexpected record %s", w.Body.String())
	}

	w = get(t, r, "/api/catalog/2")
	resp = recordResponse{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Complete || resp.Detail != nil {
		t.Errorf("partial record should have no detail: %s", w.Body.String())
	}

	if w := get(t, r, "/api/catalog/4"); w.Code != http.StatusNotFound {
		t.Errorf("missing record: expected 404, got %d", w.Code)
	}
	if w := get(t, r, "/api/catalog/zero"); w.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", w.Code)
	}
}
