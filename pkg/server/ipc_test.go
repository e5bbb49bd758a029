package server

import (
	"bytes"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/GabrieleMelucci/cedictserve/pkg/cedict"
	"github.com/GabrieleMelucci/cedictserve/pkg/search"
)

func newTestEngine(t *testing.T) *search.Engine {
	t.Helper()
	raw := []cedict.Entry{
		{Traditional: "你好", Simplified: "你好", Pinyin: "ni3 hao3", English: "hello/hi"},
	}
	norm := search.NewNormalizer(search.DefaultCacheSize)
	return search.NewEngine(search.BuildIndex(raw, norm), norm, search.DefaultMinScore, search.DefaultMaxResults)
}

// runIPC feeds the encoded requests to an IPC server and returns the raw
// response stream once the server hits EOF.
func runIPC(t *testing.T, requests ...SearchRequest) *bytes.Buffer {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, req := range requests {
		if err := enc.Encode(req); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := NewIPCServer(newTestEngine(t), &in, &out)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	return &out
}

func TestIPCSearch(t *testing.T) {
	out := runIPC(t, SearchRequest{ID: "req1", Query: "nihao", Lang: "chinese"})

	var resp SearchResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ID != "req1" {
		t.Errorf("id = %q, want req1", resp.ID)
	}
	if resp.SearchTerm != "nihao" || resp.Count != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Results) != 1 || resp.Results[0].Simplified != "你好" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestIPCExactSearch(t *testing.T) {
	out := runIPC(t, SearchRequest{ID: "req2", Query: "你好", Lang: "chinese", Exact: true})

	var resp SearchResponse
	if err := msgpack.NewDecoder(out).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("exact search count = %d, want 1", resp.Count)
	}
}

func TestIPCRejectsInvalidQueries(t *testing.T) {
	testCases := []struct {
		query       string
		description string
	}{
		{"   ", "Whitespace query"},
		{"123", "Query normalizes to empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			out := runIPC(t, SearchRequest{ID: "bad", Query: tc.query})

			var errResp SearchError
			if err := msgpack.NewDecoder(out).Decode(&errResp); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if errResp.ID != "bad" || errResp.Code != 400 || errResp.Error == "" {
				t.Errorf("unexpected error response: %+v", errResp)
			}
		})
	}
}

func TestIPCServesMultipleRequests(t *testing.T) {
	out := runIPC(t,
		SearchRequest{ID: "a", Query: "nihao"},
		SearchRequest{ID: "b", Query: "hello", Lang: "english"},
	)

	dec := msgpack.NewDecoder(out)
	for _, wantID := range []string{"a", "b"} {
		var resp SearchResponse
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("decoding response %q: %v", wantID, err)
		}
		if resp.ID != wantID {
			t.Errorf("id = %q, want %q", resp.ID, wantID)
		}
		if resp.Count != 1 {
			t.Errorf("response %q count = %d, want 1", wantID, resp.Count)
		}
	}
}
