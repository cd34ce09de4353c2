// Package eventlog keeps a fixed-capacity, oldest-evicted-first record of
// human-readable table events, decoupled from any rendering concern.
package eventlog

import "sync"

// DefaultCapacity - entries kept before FIFO eviction starts.
const DefaultCapacity = 30

// Entry categories. Raw operator and server messages carry one of the first
// four; formatted game events carry KindGameEvent.
const (
	KindInfo      = "info"
	KindError     = "error"
	KindBanner    = "banner"
	KindServerMsg = "server-message"
	KindGameEvent = "game-event"
)

// Entry - one rendered log line.
type Entry struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type Log struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Log{capacity: capacity}
}

// Push - appends an entry, evicting the oldest one once the log is full.
func (that *Log) Push(kind, text string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if len(that.entries) == that.capacity {
		that.entries = append(that.entries[:0], that.entries[1:]...)
		that.entries = that.entries[:that.capacity-1]
	}

	that.entries = append(that.entries, Entry{Kind: kind, Text: text})
}

// Entries - snapshot copy, oldest first.
func (that *Log) Entries() []Entry {
	that.mu.Lock()
	defer that.mu.Unlock()

	out := make([]Entry, len(that.entries))
	copy(out, that.entries)

	return out
}

func (that *Log) Len() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.entries)
}
