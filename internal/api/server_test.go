package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merch/internal/config"
	"merch/internal/game"
	"merch/internal/store"
)

func testServer() *Server {
	cfg := config.APIConfig{Addr: ":0", RequestTimeout: 5 * time.Second}
	recon := game.NewReconcilerWithConfig(game.ReconcilerConfig{
		Clock: func() time.Time { return time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC) },
	})
	return New(cfg, nil, store.NewSessionStore(), recon)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestForecastEndpoint(t *testing.T) {
	s := testServer()

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/forecast", map[string]any{
		"product_id":      "tee",
		"fabric":          "jersey",
		"rrp":             24,
		"base_units":      100000,
		"reference_price": 24,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		OK    bool  `json:"ok"`
		Units int64 `json:"units"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.OK || out.Units != 100000 {
		t.Fatalf("got %+v", out)
	}
}

func TestForecastEndpointNotComputable(t *testing.T) {
	s := testServer()

	rec := doJSON(t, s.Handler(), http.MethodPost, "/v1/forecast", map[string]any{
		"product_id": "tee",
		"base_units": 100000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.OK {
		t.Fatalf("expected not-computable response, got %s", rec.Body.String())
	}
}

func TestWeekIngestAndSummary(t *testing.T) {
	s := testServer()
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/v1/sessions", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session: %d", rec.Code)
	}
	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	week4 := game.GameWeekState{WeekNumber: 4, CashOnHand: 90000, WeeklyRevenue: 42000}
	week5 := game.GameWeekState{WeekNumber: 5, CashOnHand: 87500}
	ledger5 := []game.LedgerEntry{
		{WeekNumber: 5, EntryType: game.EntryMarketing, Amount: 500},
		{WeekNumber: 5, EntryType: game.EntryProduction, Amount: 1200},
	}

	for w := 1; w <= 3; w++ {
		rec = doJSON(t, h, http.MethodPut, fmt.Sprintf("/v1/sessions/%s/weeks/%d", created.SessionID, w),
			map[string]any{"state": game.GameWeekState{WeekNumber: w}})
		if rec.Code != http.StatusCreated {
			t.Fatalf("ingest week %d: %d %s", w, rec.Code, rec.Body.String())
		}
	}
	rec = doJSON(t, h, http.MethodPut, "/v1/sessions/"+created.SessionID+"/weeks/4",
		map[string]any{"state": week4})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ingest week 4: %d %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodPut, "/v1/sessions/"+created.SessionID+"/weeks/5",
		map[string]any{"state": week5, "ledger": ledger5})
	if rec.Code != http.StatusCreated {
		t.Fatalf("ingest week 5: %d %s", rec.Code, rec.Body.String())
	}

	// Snapshots are immutable: re-ingest conflicts.
	rec = doJSON(t, h, http.MethodPut, "/v1/sessions/"+created.SessionID+"/weeks/5",
		map[string]any{"state": week5})
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-ingest: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/v1/sessions/"+created.SessionID+"/weeks/5/summary", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: %d %s", rec.Code, rec.Body.String())
	}
	var summary game.WeeklySummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.WeekNumber != 5 {
		t.Fatalf("week %d", summary.WeekNumber)
	}
	if summary.Cash.Outflows.Marketing != 500 || summary.Cash.Outflows.Production != 1200 {
		t.Fatalf("outflows: %+v", summary.Cash.Outflows)
	}
	if summary.Cash.Revenue != 42000 {
		t.Fatalf("revenue: %v", summary.Cash.Revenue)
	}
}

func TestSummaryUnknownSession(t *testing.T) {
	s := testServer()
	rec := doJSON(t, s.Handler(), http.MethodGet, "/v1/sessions/ghost/weeks/5/summary", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d", rec.Code)
	}
}
