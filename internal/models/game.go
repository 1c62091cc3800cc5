package models

import "time"

// GameID enumerates every mini-game variant. Dispatch over GameID must be
// exhaustive so a new variant cannot be silently unrouted.
type GameID string

const (
	GameMatching      GameID = "matching"
	GameNaming        GameID = "naming"
	GameSentences     GameID = "sentences"
	GameRhymes        GameID = "rhymes"
	GameReading       GameID = "reading"
	GameHangman       GameID = "hangman"
	GameMemory        GameID = "memory"
	GameDictation     GameID = "dictation"
	GameWriting       GameID = "writing"
	GamePronunciation GameID = "pronunciation"
)

// AllGames lists every variant, used by routing and exhaustiveness tests
var AllGames = []GameID{
	GameMatching,
	GameNaming,
	GameSentences,
	GameRhymes,
	GameReading,
	GameHangman,
	GameMemory,
	GameDictation,
	GameWriting,
	GamePronunciation,
}

// CategoryFor maps a mini-game to the content pool it draws from
func CategoryFor(game GameID) Category {
	switch game {
	case GameSentences:
		return CategorySentences
	case GameHangman, GameDictation, GameWriting, GamePronunciation:
		return CategoryHangman
	case GameRhymes:
		return CategoryRhymes
	case GameReading:
		return CategoryReading
	case GameMatching, GameNaming, GameMemory:
		return CategoryVocabulary
	}
	return CategoryVocabulary
}

// Evaluation is the verdict an external evaluator returns for a free-form
// response (recorded audio, handwriting, typed text).
type Evaluation struct {
	IsCorrect bool   `json:"is_correct"`
	Feedback  string `json:"feedback"`
}

// Attempt records one submitted answer, for the stats endpoints
type Attempt struct {
	ID          int64
	Game        GameID
	Category    Category
	ItemKey     string
	Answer      string
	IsCorrect   bool
	AttemptedAt time.Time
}

// MissedItem is an item a child keeps getting wrong
type MissedItem struct {
	ItemKey     string  `json:"item_key"`
	Attempts    int     `json:"attempts"`
	Correct     int     `json:"correct"`
	SuccessRate float64 `json:"success_rate"`
}
