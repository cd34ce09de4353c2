// Package state holds the single latest authoritative snapshot. Every push
// replaces it wholesale; there is no diffing or merging, so a stale partial
// view is impossible by construction.
package state

import (
	"sync"

	"github.com/greenfelt/holdemsync/internal/entity"
)

type Store struct {
	mu       sync.RWMutex
	snapshot *entity.GameSnapshot
}

func NewStore() *Store {
	return &Store{}
}

// Replace - installs a new snapshot, discarding the previous one. The store
// does not validate beyond shape; consumers detect empty payloads themselves.
func (that *Store) Replace(snapshot *entity.GameSnapshot) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.snapshot = snapshot
}

// Current - returns the latest snapshot, or false while nothing has arrived.
func (that *Store) Current() (*entity.GameSnapshot, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.snapshot == nil {
		return nil, false
	}

	return that.snapshot, true
}
