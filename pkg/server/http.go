package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/GabrieleMelucci/cedictserve/internal/logger"
	"github.com/GabrieleMelucci/cedictserve/pkg/config"
	"github.com/GabrieleMelucci/cedictserve/pkg/search"
)

// errorResponse is the JSON body for rejected queries.
type errorResponse struct {
	Error string `json:"error"`
}

// HTTPServer serves the JSON search API.
type HTTPServer struct {
	engine      *search.Engine
	defaultLang string
	cfg         config.ServerConfig
	log         *log.Logger
}

// NewHTTPServer wires the engine to an HTTP API. defaultLang is
// substituted when a request omits the lang parameter.
func NewHTTPServer(engine *search.Engine, defaultLang string, cfg config.ServerConfig) *HTTPServer {
	return &HTTPServer{
		engine:      engine,
		defaultLang: defaultLang,
		cfg:         cfg,
		log:         logger.New("http"),
	}
}

// Handler returns the routed HTTP handler.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.logRequests(mux)
}

// Start listens on the configured address until the listener fails.
func (s *HTTPServer) Start() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
	}
	s.log.Infof("Listening on %s", s.cfg.Addr)
	return srv.ListenAndServe()
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	lang := params.Get("lang")
	if lang == "" {
		lang = s.defaultLang
	}

	var result *search.Result
	var err error
	if params.Get("mode") == "exact" {
		result, err = s.engine.SearchExact(query, lang)
	} else {
		result, err = s.engine.Search(query, lang)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// logRequests records method, path and latency at debug level.
func (s *HTTPServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debugf("%s %s took [ %v ]", r.Method, r.URL.Path, time.Since(start))
	})
}
