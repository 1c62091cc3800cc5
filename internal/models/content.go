package models

// Category identifies a content pool
type Category string

const (
	CategorySentences  Category = "sentences"
	CategoryHangman    Category = "hangman"
	CategoryRhymes     Category = "rhymes"
	CategoryReading    Category = "reading"
	CategoryVocabulary Category = "vocabulary"
)

// TrackedCategories are the pools whose draw history is persisted across
// sessions. Vocabulary is drawn fresh every time and carries no history.
var TrackedCategories = []Category{
	CategorySentences,
	CategoryHangman,
	CategoryRhymes,
	CategoryReading,
}

// Language selects which variant of a pool is served
type Language string

const (
	LanguageHebrew  Language = "he"
	LanguageEnglish Language = "en"
)

// ContentItem is one drawable prompt with its correct answer and distractors.
// Key is the natural key used for history tracking and must be stable for the
// lifetime of the pool.
type ContentItem struct {
	Key         string   `json:"key"`
	Prompt      string   `json:"prompt"`
	Answer      string   `json:"answer"`
	Distractors []string `json:"distractors,omitempty"`
	ImageTerm   string   `json:"image_term,omitempty"`
}

// Keys returns the natural keys of a batch, in order
func Keys(items []ContentItem) []string {
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = item.Key
	}
	return keys
}
