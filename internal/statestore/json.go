package statestore

import (
	"encoding/json"
	"fmt"
	"log"
)

// LoadJSON reads the value at key into dst. A missing key or a corrupt value
// leaves dst untouched and returns false; corruption is logged and silently
// replaced by the caller's default; it never propagates as a failure.
func LoadJSON(s Store, key string, dst interface{}) bool {
	raw, ok, err := s.Get(key)
	if err != nil {
		log.Printf("state: failed to read %q: %v", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("state: discarding corrupt value at %q: %v", key, err)
		return false
	}
	return true
}

// SaveJSON writes v at key as JSON
func SaveJSON(s Store, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode state for %q: %w", key, err)
	}
	return s.Put(key, string(raw))
}
