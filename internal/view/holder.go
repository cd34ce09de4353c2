package view

import "sync"

// Holder - the latest published View. The session loop renders and publishes
// from its single goroutine; the status API reads from its own. Keeping the
// coordinator itself single-threaded, only finished projections cross over.
type Holder struct {
	mu        sync.RWMutex
	current   View
	published bool
}

func NewHolder() *Holder {
	return &Holder{}
}

func (that *Holder) Publish(v View) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.current = v
	that.published = true
}

func (that *Holder) Current() (View, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return that.current, that.published
}
