package cedict

// Entry is a single raw CC-CEDICT record. The English field keeps the
// definitions joined by "/" exactly as they appear in the source file;
// splitting happens when the search index is built.
type Entry struct {
	Traditional string
	Simplified  string
	Pinyin      string
	English     string
}
