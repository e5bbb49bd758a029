package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GabrieleMelucci/cedictserve/pkg/cedict"
	"github.com/GabrieleMelucci/cedictserve/pkg/config"
	"github.com/GabrieleMelucci/cedictserve/pkg/search"
)

func newTestHTTPServer(t *testing.T) *HTTPServer {
	t.Helper()
	raw := []cedict.Entry{
		{Traditional: "你好", Simplified: "你好", Pinyin: "ni3 hao3", English: "hello/hi"},
		{Traditional: "您好", Simplified: "您好", Pinyin: "nin2 hao3", English: "hello (polite)"},
	}
	norm := search.NewNormalizer(search.DefaultCacheSize)
	engine := search.NewEngine(search.BuildIndex(raw, norm), norm, search.DefaultMinScore, search.DefaultMaxResults)
	return NewHTTPServer(engine, search.DefaultLang, config.DefaultConfig().Server)
}

func doSearch(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch(t *testing.T) {
	handler := newTestHTTPServer(t).Handler()

	rec := doSearch(t, handler, "/api/search?q=nihao&lang=chinese")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var result search.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.SearchTerm != "nihao" {
		t.Errorf("search_term = %q, want nihao", result.SearchTerm)
	}
	if result.Count < 1 || result.Results[0].Simplified != "你好" {
		t.Errorf("unexpected results: %+v", result.Results)
	}
}

func TestHandleSearchDefaultLang(t *testing.T) {
	handler := newTestHTTPServer(t).Handler()

	// omitted lang falls back to the configured default (chinese)
	rec := doSearch(t, handler, "/api/search?q=nihao")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result search.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.Count == 0 {
		t.Error("default lang did not select script mode")
	}
}

func TestHandleSearchGlossMode(t *testing.T) {
	handler := newTestHTTPServer(t).Handler()

	rec := doSearch(t, handler, "/api/search?q=hello&lang=english")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result search.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.Count == 0 {
		t.Error("gloss mode returned no results for exact definition")
	}
}

func TestHandleSearchExactMode(t *testing.T) {
	handler := newTestHTTPServer(t).Handler()

	rec := doSearch(t, handler, "/api/search?q=nihao&lang=chinese&mode=exact")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result search.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.Count != 1 || result.Results[0].Pinyin != "ni3 hao3" {
		t.Errorf("exact mode results: %+v", result.Results)
	}
}

func TestHandleSearchErrors(t *testing.T) {
	handler := newTestHTTPServer(t).Handler()

	testCases := []struct {
		target      string
		description string
	}{
		{"/api/search?q=", "Missing query"},
		{"/api/search?q=%20%20", "Whitespace query"},
		{"/api/search?q=123", "Query normalizes to empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			rec := doSearch(t, handler, tc.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Error == "" {
				t.Error("error body is empty")
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHTTPServer(t).Handler()

	rec := doSearch(t, handler, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}
