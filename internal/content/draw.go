package content

import (
	"math/rand"

	"otiyot/internal/models"
)

// Draw returns up to batchSize items from pool, preferring items whose key is
// not in history. When fewer than batchSize unseen items remain the full pool
// is recycled for this draw. History is not cleared, it simply stops
// filtering, so already-seen items may reappear immediately.
//
// Draw is pure: it never mutates pool or history. Callers merge the returned
// keys into history themselves.
func Draw(pool []models.ContentItem, history map[string]bool, batchSize int) []models.ContentItem {
	if batchSize <= 0 || len(pool) == 0 {
		return nil
	}

	available := make([]models.ContentItem, 0, len(pool))
	for _, item := range pool {
		if !history[item.Key] {
			available = append(available, item)
		}
	}

	// Recycle: fewer than one full batch remains unseen
	if len(available) < batchSize {
		available = append(available[:0:0], pool...)
	}

	rand.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	if len(available) > batchSize {
		available = available[:batchSize]
	}
	return available
}

// Options returns the answer plus distractors for an item in random order
func Options(item models.ContentItem) []string {
	opts := make([]string, 0, len(item.Distractors)+1)
	opts = append(opts, item.Answer)
	opts = append(opts, item.Distractors...)
	rand.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts
}
