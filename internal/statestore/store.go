package statestore

// Store persists JSON-encoded application state under string keys. It is the
// server-side stand-in for the browser's local storage: one entry per key,
// written through on every change, read once at startup.
type Store interface {
	// Get returns the stored value and whether the key exists
	Get(key string) (value string, ok bool, err error)

	// Put writes a value, replacing any previous value for the key
	Put(key, value string) error

	// Delete removes a key; deleting a missing key is not an error
	Delete(key string) error
}

// Well-known state keys. Category histories, tutorial flags and round
// snapshots append their own suffix.
const (
	KeyLedger         = "ledger"
	KeySettings       = "settings"
	KeyPetSelected    = "pet_selected"
	PrefixHistory     = "history:"
	PrefixLocalScore  = "local_score:"
	PrefixSnapshot    = "snapshot:"
	PrefixTutorial    = "tutorial:"
	PrefixCustomWords = "custom_words:"
)
