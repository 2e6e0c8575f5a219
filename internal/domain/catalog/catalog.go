// Package catalog resolves free-form item descriptions to reimbursement
// subrubro codes using a tab-delimited reference list.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultCode is assigned when no catalog entry matches a description.
const DefaultCode = 22

// maxSuggestions caps how many near-miss catalog keys a Miss carries.
const maxSuggestions = 3

// Entry is one catalog line: a normalized description key and the subrubro
// code it maps to.
type Entry struct {
	Key  string
	Code int
}

// Miss records a description that fell through to DefaultCode, with the
// closest catalog keys by edit distance for operator review.
type Miss struct {
	Description string
	Suggestions []string
}

// Index holds catalog entries in insertion order. Lookup prefers exact key
// matches, then containment in either direction, earliest-loaded entry
// winning. It is immutable after Load and safe for concurrent use.
type Index struct {
	entries []Entry
	byKey   map[string]int
	matcher *ahocorasick.Matcher
}

// Normalize canonicalizes a description for lookup: lowercase, trimmed,
// internal whitespace collapsed to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Load reads a tab-delimited catalog: one entry per line, integer code after
// the last tab. The first line is a column header and is skipped. Lines
// without a tab, with an empty key, or whose code is not an integer are
// skipped. A key seen twice keeps its original position but takes the later
// code.
func Load(r io.Reader) (*Index, error) {
	idx := &Index{byKey: make(map[string]int)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for sc.Scan() {
		line := sc.Text()
		if first {
			first = false
			continue
		}
		cut := strings.LastIndex(line, "\t")
		if cut < 0 {
			continue
		}
		key := Normalize(line[:cut])
		code, convErr := strconv.Atoi(strings.TrimSpace(line[cut+1:]))
		if key == "" || convErr != nil {
			continue
		}
		if at, seen := idx.byKey[key]; seen {
			idx.entries[at].Code = code
			continue
		}
		idx.byKey[key] = len(idx.entries)
		idx.entries = append(idx.entries, Entry{Key: key, Code: code})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	keys := make([]string, len(idx.entries))
	for i, e := range idx.entries {
		keys[i] = e.Key
	}
	idx.matcher = ahocorasick.NewStringMatcher(keys)
	return idx, nil
}

// LoadFile opens path and delegates to Load.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	idx, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return idx, nil
}

// Len returns the number of entries loaded.
func (idx *Index) Len() int { return len(idx.entries) }

// Resolve maps a raw item description to a subrubro code. Exact key matches
// win; otherwise the earliest-loaded entry whose key contains, or is
// contained in, the normalized description wins. When nothing matches it
// returns DefaultCode and a Miss describing the gap.
func (idx *Index) Resolve(description string) (int, *Miss) {
	key := Normalize(description)

	if at, ok := idx.byKey[key]; ok {
		return idx.entries[at].Code, nil
	}

	// Earliest entry whose key is a substring of the description.
	best := len(idx.entries)
	for _, at := range idx.matcher.MatchThreadSafe([]byte(key)) {
		if at < best {
			best = at
		}
	}
	// An entry loaded before that one still wins if the description is a
	// substring of its key.
	for at := 0; at < best; at++ {
		if strings.Contains(idx.entries[at].Key, key) {
			best = at
			break
		}
	}
	if best < len(idx.entries) {
		return idx.entries[best].Code, nil
	}

	return DefaultCode, &Miss{Description: description, Suggestions: idx.suggest(key)}
}

// suggest returns the catalog keys closest to key by Levenshtein distance.
func (idx *Index) suggest(key string) []string {
	type ranked struct {
		key  string
		dist int
	}
	all := make([]ranked, len(idx.entries))
	for i, e := range idx.entries {
		all[i] = ranked{key: e.Key, dist: fuzzy.LevenshteinDistance(key, e.Key)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	n := maxSuggestions
	if len(all) < n {
		n = len(all)
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = all[i].key
	}
	return out
}
