// Package aggregator computes frequency tables over parsed chat records.
package aggregator

import (
	"cmp"
	"slices"
	"time"
)

// Tables holds the aggregate statistics for one transcript.
// Tables are read-only once returned.
type Tables struct {
	// TotalMessages is the number of records aggregated.
	TotalMessages int `json:"total_messages"`

	// TotalAuthors is the number of distinct authors.
	TotalAuthors int `json:"total_authors"`

	// Authors maps author name to message count. System lines are excluded.
	Authors map[string]int `json:"authors"`

	// Hours maps hour of day (0-23) to message count.
	Hours map[int]int `json:"hours"`

	// Weekdays maps weekday name ("Monday") to message count.
	Weekdays map[string]int `json:"weekdays"`

	// Words maps lowercased word to occurrence count.
	Words map[string]int `json:"words"`

	// Excluded counts records left out of individual tables.
	Excluded Excluded `json:"excluded"`
}

// Excluded counts records whose time or date could not be parsed.
type Excluded struct {
	Hours    int `json:"hours"`
	Weekdays int `json:"weekdays"`
}

// Total returns the number of table exclusions.
func (e Excluded) Total() int {
	return e.Hours + e.Weekdays
}

// Entry is one row of a ranked table.
type Entry[K cmp.Ordered] struct {
	Key   K   `json:"key"`
	Count int `json:"count"`
}

// Rank orders a table by count descending, then key ascending.
// A positive n keeps only the first n entries.
func Rank[K cmp.Ordered](m map[K]int, n int) []Entry[K] {
	entries := make([]Entry[K], 0, len(m))
	for k, c := range m {
		entries = append(entries, Entry[K]{Key: k, Count: c})
	}
	slices.SortFunc(entries, func(a, b Entry[K]) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopAuthors returns the n most active authors.
func (t *Tables) TopAuthors(n int) []Entry[string] {
	return Rank(t.Authors, n)
}

// TopHours returns the n busiest hours.
func (t *Tables) TopHours(n int) []Entry[int] {
	return Rank(t.Hours, n)
}

// TopWeekdays returns the n busiest weekdays.
func (t *Tables) TopWeekdays(n int) []Entry[string] {
	return Rank(t.Weekdays, n)
}

// TopWords returns the n most used words.
func (t *Tables) TopWords(n int) []Entry[string] {
	return Rank(t.Words, n)
}

// WeekdayCounts returns counts for Monday through Sunday, zeros included.
func (t *Tables) WeekdayCounts() []Entry[string] {
	days := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	out := make([]Entry[string], len(days))
	for i, d := range days {
		out[i] = Entry[string]{Key: d.String(), Count: t.Weekdays[d.String()]}
	}
	return out
}

// HourCounts returns counts for hours 0 through 23, zeros included.
func (t *Tables) HourCounts() []Entry[int] {
	out := make([]Entry[int], 24)
	for h := range out {
		out[h] = Entry[int]{Key: h, Count: t.Hours[h]}
	}
	return out
}

func newTables() *Tables {
	return &Tables{
		Authors:  make(map[string]int),
		Hours:    make(map[int]int),
		Weekdays: make(map[string]int),
		Words:    make(map[string]int),
	}
}

func (t *Tables) clone() *Tables {
	c := &Tables{
		TotalMessages: t.TotalMessages,
		TotalAuthors:  t.TotalAuthors,
		Authors:       make(map[string]int, len(t.Authors)),
		Hours:         make(map[int]int, len(t.Hours)),
		Weekdays:      make(map[string]int, len(t.Weekdays)),
		Words:         make(map[string]int, len(t.Words)),
		Excluded:      t.Excluded,
	}
	for k, v := range t.Authors {
		c.Authors[k] = v
	}
	for k, v := range t.Hours {
		c.Hours[k] = v
	}
	for k, v := range t.Weekdays {
		c.Weekdays[k] = v
	}
	for k, v := range t.Words {
		c.Words[k] = v
	}
	return c
}
