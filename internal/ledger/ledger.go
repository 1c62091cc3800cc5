// Package ledger holds the persisted global coin total and fires milestone
// rewards when the total crosses a new multiple of the milestone size.
package ledger

import (
	"fmt"
	"log"
	"sync"

	"otiyot/internal/models"
	"otiyot/internal/statestore"
)

const (
	// MilestoneSize is the coin interval at which rewards unlock
	MilestoneSize = 100

	// CorrectReward is the flat award for a correct first resolution,
	// uniform across every mini-game
	CorrectReward = 3
)

// RewardSource supplies the active pet's reward list at earn time
type RewardSource func() []models.Reward

// Subscriber is notified after every ledger change. The milestone event is
// nil for changes that do not cross a boundary.
type Subscriber func(current models.Ledger, event *models.MilestoneEvent)

// Ledger is the process-wide score accumulator. All mutation happens under
// one lock; persistence is a subscriber, not inline at mutation sites.
type Ledger struct {
	mu      sync.Mutex
	current models.Ledger
	rewards RewardSource
	subs    []Subscriber
}

// New loads the persisted ledger, falling back to zero progress on missing or
// corrupt data, and registers write-through persistence as the first
// subscriber.
func New(store statestore.Store, rewards RewardSource) *Ledger {
	current := models.DefaultLedger()
	statestore.LoadJSON(store, statestore.KeyLedger, &current)
	if current.CompletedLevels == nil {
		current.CompletedLevels = []string{}
	}

	l := &Ledger{current: current, rewards: rewards}
	l.Subscribe(func(cur models.Ledger, _ *models.MilestoneEvent) {
		if err := statestore.SaveJSON(store, statestore.KeyLedger, cur); err != nil {
			log.Printf("ledger: failed to persist: %v", err)
		}
	})
	return l
}

// Subscribe registers a change listener. Subscribers run synchronously, in
// registration order, while the ledger lock is held.
func (l *Ledger) Subscribe(fn Subscriber) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

// Earn adds points to the global total. Exactly one milestone event fires
// when the award crosses one or more boundaries; only the final milestone is
// reported, never each intermediate one.
func (l *Ledger) Earn(amount int) (*models.MilestoneEvent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("earn amount must be positive, got %d", amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	oldMilestone := l.current.TotalCoins / MilestoneSize
	l.current.TotalCoins += amount
	newMilestone := l.current.TotalCoins / MilestoneSize

	var event *models.MilestoneEvent
	if newMilestone > oldMilestone && newMilestone > 0 {
		event = &models.MilestoneEvent{
			MilestoneTarget: newMilestone * MilestoneSize,
		}
		if rewards := l.rewards(); len(rewards) > 0 {
			index := (newMilestone - 1) % len(rewards)
			event.RewardIndex = index
			event.Reward = rewards[index]
		}
	}

	l.notify(event)
	return event, nil
}

// CompleteLevel records a finished level id, once
func (l *Ledger) CompleteLevel(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, done := range l.current.CompletedLevels {
		if done == id {
			return
		}
	}
	l.current.CompletedLevels = append(l.current.CompletedLevels, id)
	l.notify(nil)
}

// Total returns the current coin total
func (l *Ledger) Total() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.TotalCoins
}

// Snapshot returns a copy of the current ledger state
func (l *Ledger) Snapshot() models.Ledger {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.current
	out.CompletedLevels = append([]string(nil), l.current.CompletedLevels...)
	return out
}

// Replace swaps in an imported ledger wholesale. Used only by the validated
// import path; no milestone events fire.
func (l *Ledger) Replace(imported models.Ledger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if imported.CompletedLevels == nil {
		imported.CompletedLevels = []string{}
	}
	l.current = imported
	l.notify(nil)
}

// notify runs under l.mu
func (l *Ledger) notify(event *models.MilestoneEvent) {
	for _, fn := range l.subs {
		fn(l.current, event)
	}
}
