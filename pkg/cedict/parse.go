/*
Package cedict reads CC-CEDICT dictionary files into raw entries.

A CC-CEDICT line looks like:

	傳統 传统 [chuan2 tong3] /tradition/traditional/convention/

Comment lines start with '#'. Lines that do not carry at least a
traditional form, a simplified form, a pinyin block and one definition
are skipped; the dictionary file is trusted input and malformed lines
are only counted, not reported as errors.
*/
package cedict

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ParseLine parses a single CC-CEDICT line. The second return value is
// false for comments, blank lines and lines that do not fit the format.
func ParseLine(line string) (Entry, bool) {
	if line == "" || strings.HasPrefix(line, "#") {
		return Entry{}, false
	}

	head, defs, ok := strings.Cut(line, "/")
	if !ok || strings.TrimSpace(defs) == "" {
		return Entry{}, false
	}

	chars, pinyin, ok := strings.Cut(head, "[")
	if !ok {
		return Entry{}, false
	}
	end := strings.IndexByte(pinyin, ']')
	if end < 0 {
		return Entry{}, false
	}
	pinyin = pinyin[:end]

	fields := strings.Fields(chars)
	if len(fields) < 2 {
		return Entry{}, false
	}

	return Entry{
		Traditional: fields[0],
		Simplified:  fields[1],
		Pinyin:      pinyin,
		English:     strings.TrimSuffix(strings.TrimSpace(defs), "/"),
	}, true
}

// Parse reads every well-formed entry from r, preserving file order.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		entry, ok := ParseLine(line)
		if !ok {
			if line != "" && !strings.HasPrefix(line, "#") {
				skipped++
			}
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading dictionary: %w", err)
	}

	if skipped > 0 {
		log.Debugf("Skipped %d malformed dictionary lines", skipped)
	}
	return entries, nil
}

// Load parses the CC-CEDICT file at path.
func Load(path string) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	entries, err := Parse(file)
	if err != nil {
		return nil, err
	}
	log.Debugf("Parsed %d dictionary entries from %s in %v", len(entries), path, time.Since(start))
	return entries, nil
}
