// Package history tracks which content items have already been served, one
// tracker per content category. The set persists as a JSON array and only
// grows; recycling is the drawer's job, not the tracker's.
package history

import (
	"sort"
	"sync"

	"otiyot/internal/models"
	"otiyot/internal/statestore"
)

// Tracker is the persisted "already seen" key set for one category. It is
// safe for concurrent use; round refills call it from timer goroutines.
type Tracker struct {
	mu       sync.Mutex
	store    statestore.Store
	category models.Category
	keys     map[string]bool
}

// NewTracker loads the persisted history for a category. Missing or corrupt
// data falls back to an empty set without error.
func NewTracker(store statestore.Store, category models.Category) *Tracker {
	t := &Tracker{
		store:    store,
		category: category,
	}
	t.Reload()
	return t
}

// Reload replaces the in-memory set with whatever is persisted, dropping any
// keys merged since the last store write. Used after an import overwrites
// the stored history out from under the tracker.
func (t *Tracker) Reload() {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := make(map[string]bool)
	var persisted []string
	if statestore.LoadJSON(t.store, t.storageKey(), &persisted) {
		for _, key := range persisted {
			keys[key] = true
		}
	}
	t.keys = keys
}

// Seen returns a copy of the current key set
func (t *Tracker) Seen() map[string]bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := make(map[string]bool, len(t.keys))
	for key := range t.keys {
		seen[key] = true
	}
	return seen
}

// Len returns the number of distinct keys seen
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.keys)
}

// Merge adds keys to the set and persists immediately. Keys already present
// are kept; the set never shrinks through Merge.
func (t *Tracker) Merge(keys []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, key := range keys {
		t.keys[key] = true
	}
	return t.persistLocked()
}

// Reset clears the history entirely. This is the only way the set shrinks.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys = make(map[string]bool)
	return t.store.Delete(t.storageKey())
}

// persistLocked runs under t.mu
func (t *Tracker) persistLocked() error {
	persisted := make([]string, 0, len(t.keys))
	for key := range t.keys {
		persisted = append(persisted, key)
	}
	sort.Strings(persisted)
	return statestore.SaveJSON(t.store, t.storageKey(), persisted)
}

func (t *Tracker) storageKey() string {
	return statestore.PrefixHistory + string(t.category)
}
