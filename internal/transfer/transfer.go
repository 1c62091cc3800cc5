// Package transfer implements progress export and import. Exports are plain
// JSON documents a parent can move between machines; imports are validated
// before any state changes, so a malformed file never partially applies.
package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"otiyot/internal/ledger"
	"otiyot/internal/models"
	"otiyot/internal/statestore"
)

// ErrInvalidImport is returned with a user-visible message when an import
// document fails validation
var ErrInvalidImport = errors.New("הקובץ אינו תקין")

// ProgressExport is the on-disk progress document
type ProgressExport struct {
	ExportedAt time.Time           `json:"exportedAt"`
	ChildName  string              `json:"childName,omitempty"`
	Progress   models.Ledger       `json:"progress"`
	History    map[string][]string `json:"history,omitempty"`
}

// ExportProgress serializes the current ledger and per-category history
func ExportProgress(l *ledger.Ledger, store statestore.Store, childName string) ([]byte, error) {
	doc := ProgressExport{
		ExportedAt: time.Now().UTC(),
		ChildName:  childName,
		Progress:   l.Snapshot(),
		History:    make(map[string][]string),
	}

	for _, category := range models.TrackedCategories {
		var keys []string
		if statestore.LoadJSON(store, statestore.PrefixHistory+string(category), &keys) && len(keys) > 0 {
			sort.Strings(keys)
			doc.History[string(category)] = keys
		}
	}

	return json.MarshalIndent(doc, "", "  ")
}

// ImportProgress validates an exported document and applies it atomically.
// The coin total must be a non-negative number and completedLevels must be
// an array of strings; anything else is rejected before any state changes.
func ImportProgress(data []byte, l *ledger.Ledger, store statestore.Store) error {
	var raw struct {
		Progress *struct {
			TotalCoins      *int      `json:"totalCoins"`
			CompletedLevels *[]string `json:"completedLevels"`
		} `json:"progress"`
		History map[string][]string `json:"history"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if raw.Progress == nil || raw.Progress.TotalCoins == nil || raw.Progress.CompletedLevels == nil {
		return fmt.Errorf("%w: missing progress fields", ErrInvalidImport)
	}
	if *raw.Progress.TotalCoins < 0 {
		return fmt.Errorf("%w: negative coin total", ErrInvalidImport)
	}
	for category := range raw.History {
		if !isTrackedCategory(category) {
			return fmt.Errorf("%w: unknown history category %q", ErrInvalidImport, category)
		}
	}

	l.Replace(models.Ledger{
		TotalCoins:      *raw.Progress.TotalCoins,
		CompletedLevels: *raw.Progress.CompletedLevels,
	})

	for category, keys := range raw.History {
		sort.Strings(keys)
		if err := statestore.SaveJSON(store, statestore.PrefixHistory+string(category), keys); err != nil {
			return fmt.Errorf("failed to store imported history for %s: %w", category, err)
		}
	}
	return nil
}

func isTrackedCategory(name string) bool {
	for _, category := range models.TrackedCategories {
		if string(category) == name {
			return true
		}
	}
	return false
}
