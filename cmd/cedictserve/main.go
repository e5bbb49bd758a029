// Copyright 2025 The CedictServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the CC-CEDICT dictionary search server and CLI.

CedictServe answers approximate dictionary lookups over a CC-CEDICT
file: a query is normalized, scored against every entry with a
directional greedy overlap measure, thresholded, ranked and capped. The
index is built once at startup and shared read-only by all queries.

# Usage

Start the HTTP server with default settings:

	cedictserve -dict data/cedict_ts.u8

Enable debug logging and a custom listen address:

	cedictserve -dict data/cedict_ts.u8 -addr :9090 -d

Run in CLI mode for interactive testing:

	cedictserve -dict data/cedict_ts.u8 -c

Run as a msgpack IPC child process:

	cedictserve -dict data/cedict_ts.u8 -ipc

# Configuration

Runtime configuration is managed through a TOML file. The score
threshold and result cap are plain configuration constants carried over
from the original deployment:

	[search]
	min_score = 0.8
	max_results = 15
	cache_size = 1000
	default_lang = "chinese"

	[server]
	addr = ":8080"

	[dict]
	path = "data/cedict_ts.u8"

The config file is created with defaults if it doesn't exist. Flags
override file values.

# HTTP API

A single search endpoint plus a health check:

	GET /api/search?q=nihao&lang=chinese
	GET /api/search?q=hello&lang=english&mode=exact
	GET /healthz

lang selects the candidate fields: "chinese" (the default) matches the
simplified, traditional and pinyin fields; any other value matches the
English definitions. mode=exact switches to the exact-match variant,
which returns only entries with a field equal to the normalized query.

# IPC Protocol

IPC mode streams msgpack messages over stdin/stdout:

	{"id": "req1", "q": "nihao", "lang": "chinese"}
	{"id": "req1", "term": "nihao", "c": 1, "r": [...], "tm": 180}

Logs go to stderr in every mode so stdout stays clean for the protocol.

# Command Line Flags

	-config string
	    Path to the TOML config file
	-dict string
	    Path to the CC-CEDICT dictionary file
	-addr string
	    HTTP listen address
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-ipc
	    Run the msgpack IPC server instead of HTTP
	-lang string
	    Default lookup language
	-limit int
	    Maximum results per query
	-min-score float
	    Strict lower bound on match scores
	-cache int
	    Normalization cache capacity
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/GabrieleMelucci/cedictserve/internal/cli"
	"github.com/GabrieleMelucci/cedictserve/pkg/cedict"
	"github.com/GabrieleMelucci/cedictserve/pkg/config"
	"github.com/GabrieleMelucci/cedictserve/pkg/search"
	"github.com/GabrieleMelucci/cedictserve/pkg/server"
)

const (
	Version = "1.0.0"
	AppName = "cedictserve"
	gh      = "https://github.com/GabrieleMelucci/cedictserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, dictionary, index and the selected frontend.
// It does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	log.SetOutput(os.Stderr)
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "cedictserve.toml", "Path to the TOML config file")
	dictPath := flag.String("dict", "", "Path to the CC-CEDICT dictionary file")
	addr := flag.String("addr", "", "HTTP listen address")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	ipcMode := flag.Bool("ipc", false, "Run the msgpack IPC server instead of HTTP")
	lang := flag.String("lang", "", "Default lookup language")
	limit := flag.Int("limit", 0, fmt.Sprintf("Maximum results per query (default %d)", defaults.Search.MaxResults))
	minScore := flag.Float64("min-score", 0, fmt.Sprintf("Strict lower bound on match scores (default %v)", defaults.Search.MinScore))
	cacheSize := flag.Int("cache", 0, fmt.Sprintf("Normalization cache capacity (default %d)", defaults.Search.CacheSize))

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, err := config.InitConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg, *dictPath, *addr, *lang, *limit, *minScore, *cacheSize)

	entries, err := cedict.Load(cfg.Dict.Path)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	if len(entries) == 0 {
		log.Warnf("Dictionary %s has no entries", cfg.Dict.Path)
	}

	norm := search.NewNormalizer(cfg.Search.CacheSize)
	index := search.BuildIndex(entries, norm)
	engine := search.NewEngine(index, norm, cfg.Search.MinScore, cfg.Search.MaxResults)

	if *cliMode {
		log.SetReportTimestamp(false)
		handler := cli.NewInputHandler(engine, cfg.Search.DefaultLang)
		if err := handler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	if *ipcMode {
		log.Debug("spawning IPC")
		srv := server.NewIPCServer(engine, os.Stdin, os.Stdout)
		if err := srv.Start(); err != nil {
			log.Fatalf("IPC server error: %v", err)
		}
		return
	}

	showStartupInfo(cfg.Dict.Path, index.Len())
	srv := server.NewHTTPServer(engine, cfg.Search.DefaultLang, cfg.Server)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// applyFlags lets explicit flags override file values.
func applyFlags(cfg *config.Config, dictPath, addr, lang string, limit int, minScore float64, cacheSize int) {
	if dictPath != "" {
		cfg.Dict.Path = dictPath
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if lang != "" {
		cfg.Search.DefaultLang = lang
	}
	if limit > 0 {
		cfg.Search.MaxResults = limit
	}
	if minScore > 0 && minScore < 1 {
		cfg.Search.MinScore = minScore
	}
	if cacheSize > 0 {
		cfg.Search.CacheSize = cacheSize
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ CedictServe ] Fuzzy CC-CEDICT dictionary search!")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dictPath string, entryCount int) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("=============")
	println(" CedictServe ")
	println("=============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Infof("dictionary: ( %s )", dictPath)
	log.Infof("entries indexed: %d", entryCount)
	log.Info("status: ready")
	println("=============")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
