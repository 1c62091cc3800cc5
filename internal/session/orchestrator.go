// Package session owns which mini-game is active, routes earned points to
// the ledger, supplies rounds with drawn content and history callbacks, and
// gates one-time tutorials.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	"otiyot/internal/content"
	"otiyot/internal/engine"
	"otiyot/internal/history"
	"otiyot/internal/ledger"
	"otiyot/internal/models"
	"otiyot/internal/statestore"
	"otiyot/internal/transfer"
)

// Screen is the active view discriminant
type Screen string

const (
	ScreenMenu    Screen = "menu"
	ScreenGame    Screen = "game"
	ScreenResults Screen = "results"
	ScreenVictory Screen = "victory"
)

// ErrNoContent means the drawn batch came back empty: the pool has nothing
// for the requested category/language
var ErrNoContent = errors.New("no content available")

// Orchestrator wires the round engines to the ledger, trackers and store
type Orchestrator struct {
	mu sync.Mutex

	store     statestore.Store
	ledger    *ledger.Ledger
	trackers  map[models.Category]*history.Tracker
	language  models.Language
	batchSize int

	settings models.Settings

	screen     Screen
	activeGame models.GameID
	choice     *engine.ChoiceRound
	hangman    *engine.HangmanRound
	memory     *engine.MemoryRound
	dictation  *engine.DictationRound
	open       *engine.OpenRound

	evaluators map[models.GameID]engine.Evaluator

	petMu sync.Mutex
	petID string

	rewardMu      sync.Mutex
	pendingReward *models.MilestoneEvent
}

// New loads persisted settings and history, and builds the ledger with the
// active pet's reward list as its reward source
func New(store statestore.Store, language models.Language, batchSize int) *Orchestrator {
	o := &Orchestrator{
		store:      store,
		language:   language,
		batchSize:  batchSize,
		screen:     ScreenMenu,
		settings:   models.DefaultSettings(),
		trackers:   make(map[models.Category]*history.Tracker),
		evaluators: make(map[models.GameID]engine.Evaluator),
	}

	statestore.LoadJSON(store, statestore.KeySettings, &o.settings)
	o.petID = o.settings.SelectedPetID

	for _, category := range models.TrackedCategories {
		o.trackers[category] = history.NewTracker(store, category)
	}

	o.ledger = ledger.New(store, o.activeRewards)
	return o
}

// SetEvaluator plugs in the external evaluator collaborator for an
// open-response game
func (o *Orchestrator) SetEvaluator(game models.GameID, evaluator engine.Evaluator) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.evaluators[game] = evaluator
}

// Ledger exposes the global score ledger
func (o *Orchestrator) Ledger() *ledger.Ledger {
	return o.ledger
}

// StartGame creates the round for a mini-game, restoring a persisted
// snapshot when one exists. The dispatch over GameID is exhaustive; an
// unknown id is an error, never a silent miss.
func (o *Orchestrator) StartGame(game models.GameID, teamMode bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closeActiveLocked()
	award := o.awardPoints

	switch game {
	case models.GameMatching, models.GameNaming, models.GameSentences,
		models.GameRhymes, models.GameReading:
		var snap engine.ChoiceSnapshot
		if statestore.LoadJSON(o.store, snapshotKey(game), &snap) && snap.Game == game && len(snap.Batch) > 0 {
			o.choice = engine.RestoreChoiceRound(snap, award, o.refillFunc(game), o.snapshotFunc(game))
		} else {
			batch, err := o.drawBatch(game)
			if err != nil {
				return err
			}
			o.choice = engine.NewChoiceRound(game, batch, award, o.refillFunc(game), o.snapshotFunc(game))
		}

	case models.GameHangman:
		var snap engine.HangmanSnapshot
		if statestore.LoadJSON(o.store, snapshotKey(game), &snap) && len(snap.Batch) > 0 {
			o.hangman = engine.RestoreHangmanRound(snap, award, o.refillFunc(game), o.snapshotFunc(game))
		} else {
			batch, err := o.drawBatch(game)
			if err != nil {
				return err
			}
			o.hangman = engine.NewHangmanRound(batch, award, o.refillFunc(game), o.snapshotFunc(game))
		}

	case models.GameMemory:
		batch, err := o.drawBatch(game)
		if err != nil {
			return err
		}
		o.memory = engine.NewMemoryRound(batch, teamMode, award)

	case models.GameDictation:
		var snap engine.DictationSnapshot
		if statestore.LoadJSON(o.store, snapshotKey(game), &snap) && len(snap.Words) > 0 {
			o.dictation = engine.RestoreDictationRound(snap, award, o.snapshotFunc(game))
		} else {
			batch, err := o.drawBatch(game)
			if err != nil {
				return err
			}
			o.dictation = engine.NewDictationRound(batch, award, o.snapshotFunc(game))
		}

	case models.GameWriting, models.GamePronunciation:
		batch, err := o.drawBatch(game)
		if err != nil {
			return err
		}
		evaluator := o.evaluators[game]
		if evaluator == nil {
			evaluator = alwaysRight{}
		}
		o.open = engine.NewOpenRound(game, batch, evaluator, award, o.refillFunc(game))

	default:
		return fmt.Errorf("unknown game: %s", game)
	}

	o.activeGame = game
	o.screen = ScreenGame
	return nil
}

// EndGame tears down the active round, clears its snapshot and records the
// local score, then returns to the menu
func (o *Orchestrator) EndGame() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closeActiveLocked()
	o.screen = ScreenMenu
}

// ActiveGame returns the running mini-game id, if any
func (o *Orchestrator) ActiveGame() (models.GameID, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeGame, o.activeGame != ""
}

// Screen returns the active screen
func (o *Orchestrator) Screen() Screen {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.screen
}

// SetScreen moves between the non-game screens
func (o *Orchestrator) SetScreen(s Screen) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.screen = s
}

// Round accessors; each returns false when that variant is not active.

func (o *Orchestrator) ChoiceRound() (*engine.ChoiceRound, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.choice, o.choice != nil
}

func (o *Orchestrator) HangmanRound() (*engine.HangmanRound, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.hangman, o.hangman != nil
}

func (o *Orchestrator) MemoryRound() (*engine.MemoryRound, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.memory, o.memory != nil
}

func (o *Orchestrator) DictationRound() (*engine.DictationRound, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.dictation, o.dictation != nil
}

func (o *Orchestrator) OpenRound() (*engine.OpenRound, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.open, o.open != nil
}

// PendingReward returns the milestone reward waiting to be shown, if any
func (o *Orchestrator) PendingReward() *models.MilestoneEvent {
	o.rewardMu.Lock()
	defer o.rewardMu.Unlock()
	return o.pendingReward
}

// DismissReward clears the pending reward overlay
func (o *Orchestrator) DismissReward() {
	o.rewardMu.Lock()
	defer o.rewardMu.Unlock()
	o.pendingReward = nil
}

// TutorialSeen reports whether a one-time tutorial has been dismissed
func (o *Orchestrator) TutorialSeen(key string) bool {
	value, ok, err := o.store.Get(statestore.PrefixTutorial + key)
	if err != nil {
		log.Printf("session: failed to read tutorial flag %q: %v", key, err)
		return false
	}
	return ok && value == "true"
}

// MarkTutorialSeen records a tutorial dismissal so it never shows again
func (o *Orchestrator) MarkTutorialSeen(key string) error {
	return o.store.Put(statestore.PrefixTutorial+key, "true")
}

// Settings returns a copy of the current settings
func (o *Orchestrator) Settings() models.Settings {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settings
}

// UpdateSettings persists new settings and refreshes the reward source
func (o *Orchestrator) UpdateSettings(s models.Settings) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settings = s
	o.petMu.Lock()
	o.petID = s.SelectedPetID
	o.petMu.Unlock()
	return statestore.SaveJSON(o.store, statestore.KeySettings, s)
}

// SelectPet sets the active pet profile and the one-time selection sentinel
func (o *Orchestrator) SelectPet(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settings.SelectedPetID = id
	o.petMu.Lock()
	o.petID = id
	o.petMu.Unlock()
	if err := statestore.SaveJSON(o.store, statestore.KeySettings, o.settings); err != nil {
		return err
	}
	return o.store.Put(statestore.KeyPetSelected, "true")
}

// PetSelected reports whether a pet has ever been chosen
func (o *Orchestrator) PetSelected() bool {
	value, ok, err := o.store.Get(statestore.KeyPetSelected)
	if err != nil {
		return false
	}
	return ok && value == "true"
}

// HistoryLen returns how many distinct items a category has served
func (o *Orchestrator) HistoryLen(category models.Category) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	tracker := o.trackers[category]
	if tracker == nil {
		return 0
	}
	return tracker.Len()
}

// ResetHistory clears one category's history, the only way it ever shrinks
func (o *Orchestrator) ResetHistory(category models.Category) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	tracker := o.trackers[category]
	if tracker == nil {
		return nil
	}
	return tracker.Reset()
}

// ResetAll wipes progress back to defaults: ledger, histories, local scores
// and snapshots. Parent-gated at the HTTP layer.
func (o *Orchestrator) ResetAll() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closeActiveLocked()
	o.ledger.Replace(models.DefaultLedger())
	for _, tracker := range o.trackers {
		if err := tracker.Reset(); err != nil {
			return err
		}
	}
	for _, game := range models.AllGames {
		if err := o.store.Delete(snapshotKey(game)); err != nil {
			return err
		}
		if err := o.store.Delete(statestore.PrefixLocalScore + string(game)); err != nil {
			return err
		}
	}
	o.screen = ScreenMenu
	return nil
}

// ImportProgress applies an exported progress document and refreshes the
// in-memory trackers from the freshly written store, so the next draw sees
// the imported history instead of re-persisting the stale set. The active
// round is closed first; its batch belongs to the replaced progress.
func (o *Orchestrator) ImportProgress(data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closeActiveLocked()
	if err := transfer.ImportProgress(data, o.ledger, o.store); err != nil {
		return err
	}
	for _, tracker := range o.trackers {
		tracker.Reload()
	}
	o.screen = ScreenMenu
	return nil
}

// LocalScore loads a per-minigame display score; corrupt or missing values
// fall back to zero
func (o *Orchestrator) LocalScore(game models.GameID) int {
	value, ok, err := o.store.Get(statestore.PrefixLocalScore + string(game))
	if err != nil || !ok {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

// awardPoints routes a round's earn call to the ledger and stashes any
// milestone reward for the overlay
func (o *Orchestrator) awardPoints(points int) {
	event, err := o.ledger.Earn(points)
	if err != nil {
		log.Printf("session: failed to award %d points: %v", points, err)
		return
	}
	if event != nil {
		o.rewardMu.Lock()
		o.pendingReward = event
		o.rewardMu.Unlock()
	}
}

// activeRewards supplies the selected pet's reward list to the ledger
func (o *Orchestrator) activeRewards() []models.Reward {
	o.petMu.Lock()
	defer o.petMu.Unlock()
	return content.PetByID(o.petID).Rewards
}

// refillFunc runs on round timer goroutines while the round's own lock is
// held, so it must never take o.mu. drawBatch only touches fields that are
// immutable after New plus the self-synchronized trackers.
func (o *Orchestrator) refillFunc(game models.GameID) engine.RefillFunc {
	return func() ([]models.ContentItem, error) {
		return o.drawBatch(game)
	}
}

func (o *Orchestrator) snapshotFunc(game models.GameID) engine.SnapshotFunc {
	key := snapshotKey(game)
	return func(snapshot interface{}) {
		if err := statestore.SaveJSON(o.store, key, snapshot); err != nil {
			log.Printf("session: failed to save snapshot for %s: %v", game, err)
		}
	}
}

// drawBatch draws through the category's history tracker and merges the
// served keys immediately. Word games also fold in any parent-imported
// custom words.
func (o *Orchestrator) drawBatch(game models.GameID) ([]models.ContentItem, error) {
	category := models.CategoryFor(game)
	pool := content.PoolFor(category, o.language)

	if category == models.CategoryHangman {
		if custom := transfer.LoadCustomWords(o.store, string(game)); len(custom) > 0 {
			merged := append([]models.ContentItem(nil), pool...)
			for _, word := range custom {
				merged = append(merged, models.ContentItem{
					Key:    "custom:" + word,
					Prompt: word,
					Answer: word,
				})
			}
			pool = merged
		}
	}

	var seen map[string]bool
	tracker := o.trackers[category]
	if tracker != nil {
		seen = tracker.Seen()
	}

	batch := content.Draw(pool, seen, o.batchSize)
	if len(batch) == 0 {
		return nil, ErrNoContent
	}

	if tracker != nil {
		if err := tracker.Merge(models.Keys(batch)); err != nil {
			return nil, fmt.Errorf("failed to persist history for %s: %w", category, err)
		}
	}
	return batch, nil
}

// closeActiveLocked runs under o.mu. It stops pending transitions, persists
// the local display score and clears the finished round's snapshot.
func (o *Orchestrator) closeActiveLocked() {
	saveScore := func(game models.GameID, score int) {
		key := statestore.PrefixLocalScore + string(game)
		if err := o.store.Put(key, strconv.Itoa(score)); err != nil {
			log.Printf("session: failed to save local score for %s: %v", game, err)
		}
	}

	if o.choice != nil {
		o.choice.Close()
		saveScore(o.activeGame, o.choice.State().LocalScore)
		o.choice = nil
	}
	if o.hangman != nil {
		o.hangman.Close()
		saveScore(models.GameHangman, o.hangman.State().LocalScore)
		o.hangman = nil
	}
	if o.memory != nil {
		o.memory.Close()
		saveScore(models.GameMemory, o.memory.State().LocalScore)
		o.memory = nil
	}
	if o.dictation != nil {
		o.dictation.Close()
		o.dictation = nil
	}
	if o.open != nil {
		o.open.Close()
		saveScore(o.activeGame, o.open.State().LocalScore)
		o.open = nil
	}
	if o.activeGame != "" {
		if err := o.store.Delete(snapshotKey(o.activeGame)); err != nil {
			log.Printf("session: failed to clear snapshot for %s: %v", o.activeGame, err)
		}
		o.activeGame = ""
	}
}

func snapshotKey(game models.GameID) string {
	return statestore.PrefixSnapshot + string(game)
}

// alwaysRight is the default evaluator stub: success with friendly feedback
type alwaysRight struct{}

func (alwaysRight) Evaluate(_ context.Context, _, _ string) (models.Evaluation, error) {
	return models.Evaluation{IsCorrect: true, Feedback: "כל הכבוד!"}, nil
}
