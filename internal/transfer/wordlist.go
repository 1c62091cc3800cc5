package transfer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"otiyot/internal/statestore"
)

// WordListType tags exported word list documents
const WordListType = "word-list"

// WordListExport is the word list document. Older exports were a bare JSON
// string array; ParseWordList accepts both forms.
type WordListExport struct {
	Type       string    `json:"type"`
	ExportedAt time.Time `json:"exportedAt,omitempty"`
	Items      []string  `json:"items"`
}

// ExportWordList serializes a custom word list in the enveloped form
func ExportWordList(words []string) ([]byte, error) {
	doc := WordListExport{
		Type:       WordListType,
		ExportedAt: time.Now().UTC(),
		Items:      words,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ParseWordList decodes an enveloped or legacy word list document. Blank
// entries are dropped; an empty result is invalid.
func ParseWordList(data []byte) ([]string, error) {
	var doc WordListExport
	if err := json.Unmarshal(data, &doc); err == nil && doc.Type == WordListType {
		return cleanWords(doc.Items)
	}

	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: not a word list", ErrInvalidImport)
	}
	return cleanWords(legacy)
}

// LoadCustomWords returns the stored custom word list for a game, if any
func LoadCustomWords(store statestore.Store, game string) []string {
	var words []string
	if !statestore.LoadJSON(store, statestore.PrefixCustomWords+game, &words) {
		return nil
	}
	return words
}

// SaveCustomWords stores a custom word list for a game
func SaveCustomWords(store statestore.Store, game string, words []string) error {
	cleaned, err := cleanWords(words)
	if err != nil {
		return err
	}
	return statestore.SaveJSON(store, statestore.PrefixCustomWords+game, cleaned)
}

func cleanWords(words []string) ([]string, error) {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w != "" {
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty word list", ErrInvalidImport)
	}
	return out, nil
}
