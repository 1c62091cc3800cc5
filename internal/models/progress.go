package models

// Ledger is the persisted global progress record. TotalCoins only ever grows
// through the normal play path; losses never touch it.
type Ledger struct {
	TotalCoins      int      `json:"totalCoins"`
	CompletedLevels []string `json:"completedLevels"`
}

// DefaultLedger returns the zero-progress ledger
func DefaultLedger() Ledger {
	return Ledger{TotalCoins: 0, CompletedLevels: []string{}}
}

// Reward is one unlockable message/image pair belonging to a pet
type Reward struct {
	Message string `json:"message"`
	Image   string `json:"image"`
}

// Pet is a selectable companion profile with its own reward list
type Pet struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Rewards []Reward `json:"rewards"`
}

// MilestoneEvent fires when a point award crosses a new multiple of the
// milestone size. At most one event fires per award, even when a single
// award jumps several boundaries.
type MilestoneEvent struct {
	MilestoneTarget int    `json:"milestone_target"`
	RewardIndex     int    `json:"reward_index"`
	Reward          Reward `json:"reward"`
}

// FontStyle selects the letter rendering style
type FontStyle string

const (
	FontPrint   FontStyle = "print"
	FontCursive FontStyle = "cursive"
)

// Settings is the persisted app configuration
type Settings struct {
	ChildName     string    `json:"childName"`
	SoundEffects  bool      `json:"soundEffects"`
	AutoPlayAudio bool      `json:"autoPlayAudio"`
	FontStyle     FontStyle `json:"fontStyle"`
	SelectedPetID string    `json:"selectedPetId"`
	ParentPINHash string    `json:"parentPinHash,omitempty"`
}

// DefaultSettings returns the settings used before anything is persisted
func DefaultSettings() Settings {
	return Settings{
		ChildName:     "",
		SoundEffects:  true,
		AutoPlayAudio: true,
		FontStyle:     FontPrint,
		SelectedPetID: "",
	}
}
