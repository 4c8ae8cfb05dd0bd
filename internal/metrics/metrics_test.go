package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ziadkadry99/dexview/internal/catalog"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	return string(body)
}

func TestCollectors(t *testing.T) {
	m := New()
	var _ catalog.Observer = m

	m.FragmentStored(catalog.SlotPrimary)
	m.FragmentStored(catalog.SlotPrimary)
	m.FetchFailed(catalog.SlotSecondary)
	m.OverlayOpened()
	m.NoticeRaised("too_small")
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()

	body := scrape(t, m)
	for _, want := range []string{
		`dexview_fragments_stored_total{slot="primary"} 2`,
		`dexview_fetch_failures_total{source="secondary"} 1`,
		`dexview_overlay_opens_total 1`,
		`dexview_notices_total{kind="too_small"} 1`,
		`dexview_sessions_active 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}
