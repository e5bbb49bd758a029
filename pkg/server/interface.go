/*
Package server exposes the dictionary search engine over two transports.

The HTTP server is the primary surface: a JSON API with a single search
endpoint plus a health check. The IPC server speaks msgpack over
stdin/stdout for embedding the process into editors and other tools.

# HTTP

	GET /api/search?q=你好&lang=chinese
	GET /api/search?q=hello&lang=english&mode=exact

Successful responses carry the trimmed search term, a count and the
ranked entries:

	{"search_term": "你好", "count": 1, "results": [
	  {"traditional": "你好", "simplified": "你好",
	   "pinyin": "ni3 hao3", "definitions": ["hello", "hi"]}]}

An empty or unmatchable query yields {"error": "..."} with status 400.

# IPC

Requests and responses are single msgpack messages streamed over
stdin/stdout. A request carries an ID, the query, an optional lang and
an exact-mode flag:

	{"id": "req_001", "q": "nihao", "lang": "chinese"}

The response mirrors the HTTP shape plus elapsed microseconds:

	{"id": "req_001", "term": "nihao", "c": 1, "r": [...], "tm": 180}

Failed requests produce {"id", "e", "c"} with a 400-style code. Both
transports share one engine; queries are independent and may be served
concurrently.
*/
package server

// SearchRequest is an incoming IPC search request.
type SearchRequest struct {
	ID    string `msgpack:"id"`
	Query string `msgpack:"q"`
	Lang  string `msgpack:"lang,omitempty"`
	Exact bool   `msgpack:"x,omitempty"`
}

// ResultEntry is one dictionary entry in an IPC response.
type ResultEntry struct {
	Traditional string   `msgpack:"t"`
	Simplified  string   `msgpack:"s"`
	Pinyin      string   `msgpack:"p"`
	Definitions []string `msgpack:"d"`
}

// SearchResponse answers a successful IPC search.
type SearchResponse struct {
	ID         string        `msgpack:"id"`
	SearchTerm string        `msgpack:"term"`
	Count      int           `msgpack:"c"`
	Results    []ResultEntry `msgpack:"r"`
	TimeTaken  int64         `msgpack:"tm"`
}

// SearchError holds basic error information for failed IPC requests.
type SearchError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
