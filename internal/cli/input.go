// Package cli handles interactive dictionary queries for DBG and testing.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/GabrieleMelucci/cedictserve/pkg/search"
)

// InputHandler reads queries from stdin and prints ranked matches.
// Inline directives switch the lookup language and variant:
//
//	/lang english
//	/exact on
type InputHandler struct {
	engine *search.Engine
	lang   string
	exact  bool
}

// NewInputHandler handles initialization of the InputHandler.
func NewInputHandler(engine *search.Engine, lang string) *InputHandler {
	return &InputHandler{
		engine: engine,
		lang:   lang,
	}
}

// Start begins the interface loop. It terminates when stdin closes or
// a read fails.
func (h *InputHandler) Start() error {
	log.Print("CedictServe CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Printf("type a term and press Enter to search (lang: %s, Ctrl+C to exit):", h.lang)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			h.handleDirective(line)
			continue
		}
		h.handleQuery(line)
	}
}

// handleDirective switches session options.
func (h *InputHandler) handleDirective(line string) {
	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "lang":
		if arg == "" {
			log.Errorf("usage: /lang <language>")
			return
		}
		h.lang = arg
		log.Printf("lang set to %q", h.lang)
	case "exact":
		h.exact = arg == "on"
		log.Printf("exact mode: %v", h.exact)
	default:
		log.Errorf("Unknown directive: /%s", cmd)
	}
}

// handleQuery runs a single search and prints the results.
func (h *InputHandler) handleQuery(term string) {
	start := time.Now()

	var result *search.Result
	var err error
	if h.exact {
		result, err = h.engine.SearchExact(term, h.lang)
	} else {
		result, err = h.engine.Search(term, h.lang)
	}
	if err != nil {
		log.Errorf("%v", err)
		return
	}

	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for term '%s'", elapsed, term)

	if result.Count == 0 {
		log.Warnf("No matches found for '%s'", term)
		return
	}

	log.Printf("Found %d matches for '%s':", result.Count, term)
	for i, entry := range result.Results {
		clSimplified := fmt.Sprintf("\033[38;5;75m%s\033[0m", entry.Simplified)
		log.Printf("%2d. %-12s %-24s %s", i+1, clSimplified, entry.Pinyin, strings.Join(entry.Definitions, " / "))
	}
}
