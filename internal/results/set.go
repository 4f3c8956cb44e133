package results

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// SortKey selects the order applied by Set.Sort.
type SortKey int

const (
	SortNone SortKey = iota
	SortName
	SortInstallDate
	SortSize
	SortVotes
	SortPopularity
	SortRelevance
)

var sortKeyNames = map[SortKey]string{
	SortNone:        "none",
	SortName:        "name",
	SortInstallDate: "installdate",
	SortSize:        "size",
	SortVotes:       "votes",
	SortPopularity:  "popularity",
	SortRelevance:   "relevance",
}

// short aliases kept from the classic command line
var sortKeyAliases = map[string]SortKey{
	"n": SortName,
	"1": SortInstallDate,
	"2": SortSize,
	"w": SortVotes,
	"p": SortPopularity,
	"r": SortRelevance,
}

func (k SortKey) String() string {
	if s, ok := sortKeyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey accepts the long names and the one-letter aliases. An empty
// string is SortNone.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortNone, nil
	}
	if k, ok := sortKeyAliases[s]; ok {
		return k, nil
	}
	for k, name := range sortKeyNames {
		if name == s {
			return k, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort key: %s", s)
}

// Set accumulates the entries of one query cycle.
type Set struct {
	entries []*Entry
}

func NewSet() *Set { return &Set{} }

func (s *Set) Insert(e *Entry) { s.entries = append(s.entries, e) }

func (s *Set) Len() int { return len(s.entries) }

// Sort reorders the entries stably; arrival order breaks ties.
func (s *Set) Sort(key SortKey) {
	cmpFn := compareFunc(key)
	if cmpFn == nil {
		return
	}
	slices.SortStableFunc(s.entries, cmpFn)
}

// All yields every entry once, last to first when reverse is set.
func (s *Set) All(reverse bool) iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		if reverse {
			for i := len(s.entries) - 1; i >= 0; i-- {
				if !yield(s.entries[i]) {
					return
				}
			}
			return
		}
		for _, e := range s.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Drain releases every entry and empties the set.
func (s *Set) Drain() {
	for _, e := range s.entries {
		e.release()
	}
	clear(s.entries)
	s.entries = s.entries[:0]
}

func compareFunc(key SortKey) func(a, b *Entry) int {
	switch key {
	case SortName:
		return func(a, b *Entry) int {
			an, bn := a.Name(), b.Name()
			if an == "" || bn == "" {
				return 0
			}
			return strings.Compare(an, bn)
		}
	case SortInstallDate:
		return func(a, b *Entry) int { return cmpInt64(a.installDate(), b.installDate()) }
	case SortSize:
		return func(a, b *Entry) int { return cmpInt64(a.size(), b.size()) }
	case SortVotes:
		// highest first
		return func(a, b *Entry) int { return b.votes().Compare(a.votes()) }
	case SortPopularity:
		return func(a, b *Entry) int { return b.popularity().Compare(a.popularity()) }
	case SortRelevance:
		return func(a, b *Entry) int { return a.relevance.Compare(b.relevance) }
	}
	return nil
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
