package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded session event.
type SimLogEntry struct {
	Tick     int
	Entity   string  // "P" player, "A" adversary, "I3" pickup #3, "--" session
	Category string  // player, adversary, pickup, session
	Key      string  // event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // numeric payload for threshold checks
}

// String formats the entry as one fixed-width line:
//
//	[T=0600] A    adversary state            dormant → pursuing
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-4s %-9s %-16s %s",
		e.Tick, e.Entity, e.Category, e.Key, e.Value)
}

// LogQuery selects entries. Empty string fields match anything; Since is
// the first tick considered.
type LogQuery struct {
	Entity   string
	Category string
	Key      string
	Contains string // substring of Value
	Since    int
}

func (q LogQuery) matches(e SimLogEntry) bool {
	switch {
	case e.Tick < q.Since:
		return false
	case q.Entity != "" && e.Entity != q.Entity:
		return false
	case q.Category != "" && e.Category != q.Category:
		return false
	case q.Key != "" && e.Key != q.Key:
		return false
	}
	return q.Contains == "" || strings.Contains(e.Value, q.Contains)
}

// SimLog is the session's unbounded event record. Entries are appended in
// tick order.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. Verbose logs also keep high-frequency events
// such as adversary re-plans.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

func (sl *SimLog) Add(tick int, entity, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick: tick, Entity: entity, Category: category,
		Key: key, Value: value, NumVal: numVal,
	})
}

// AddVerbose is Add for events only a verbose log keeps.
func (sl *SimLog) AddVerbose(tick int, entity, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, entity, category, key, value, numVal)
	}
}

func (sl *SimLog) Entries() []SimLogEntry { return sl.entries }

func (sl *SimLog) Select(q LogQuery) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if q.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (sl *SimLog) Count(q LogQuery) int {
	n := 0
	for _, e := range sl.entries {
		if q.matches(e) {
			n++
		}
	}
	return n
}

// First returns the earliest matching entry.
func (sl *SimLog) First(q LogQuery) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if q.matches(e) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// Last returns the latest matching entry.
func (sl *SimLog) Last(q LogQuery) (SimLogEntry, bool) {
	for i := len(sl.entries) - 1; i >= 0; i-- {
		if q.matches(sl.entries[i]) {
			return sl.entries[i], true
		}
	}
	return SimLogEntry{}, false
}

// Has reports whether any category/key entry's value contains the substring.
func (sl *SimLog) Has(category, key, contains string) bool {
	_, ok := sl.First(LogQuery{Category: category, Key: key, Contains: contains})
	return ok
}

// Dump formats every entry from tick since onward, one per line.
func (sl *SimLog) Dump(since int) string {
	var sb strings.Builder
	for _, e := range sl.Select(LogQuery{Since: since}) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
