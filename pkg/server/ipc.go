package server

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/GabrieleMelucci/cedictserve/pkg/search"
)

// IPCServer handles msgpack search requests over a byte stream,
// normally stdin/stdout.
type IPCServer struct {
	engine *search.Engine
	dec    *msgpack.Decoder
	enc    *msgpack.Encoder
}

// NewIPCServer creates an IPC server reading requests from r and
// writing responses to w.
func NewIPCServer(engine *search.Engine, r io.Reader, w io.Writer) *IPCServer {
	return &IPCServer{
		engine: engine,
		dec:    msgpack.NewDecoder(r),
		enc:    msgpack.NewEncoder(w),
	}
}

// Start processes requests until the input stream closes.
func (s *IPCServer) Start() error {
	log.Debug("Starting IPC server")

	for {
		var req SearchRequest
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client disconnected (EOF)")
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleSearch(req)
	}
}

// handleSearch runs one query and writes the response. Engine errors
// (empty or unmatchable queries) map to a 400-style error message; they
// never terminate the server.
func (s *IPCServer) handleSearch(req SearchRequest) {
	start := time.Now()

	var result *search.Result
	var err error
	if req.Exact {
		result, err = s.engine.SearchExact(req.Query, req.Lang)
	} else {
		result, err = s.engine.Search(req.Query, req.Lang)
	}
	if err != nil {
		log.Debugf("Rejected query %q: %v", req.Query, err)
		s.send(SearchError{ID: req.ID, Error: err.Error(), Code: 400})
		return
	}

	entries := make([]ResultEntry, len(result.Results))
	for i, r := range result.Results {
		entries[i] = ResultEntry{
			Traditional: r.Traditional,
			Simplified:  r.Simplified,
			Pinyin:      r.Pinyin,
			Definitions: r.Definitions,
		}
	}

	s.send(SearchResponse{
		ID:         req.ID,
		SearchTerm: result.SearchTerm,
		Count:      result.Count,
		Results:    entries,
		TimeTaken:  time.Since(start).Microseconds(),
	})
}

func (s *IPCServer) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}
