package quiz

// Outcome is how a question was closed.
type Outcome string

const (
	OutcomeUnset        Outcome = ""
	OutcomeCorrect      Outcome = "correct"
	OutcomeWrong        Outcome = "wrong"
	OutcomeFinalCorrect Outcome = "final-correct"
	OutcomeFinalWrong   Outcome = "final-wrong"
)

// Valid reports whether o is one of the known outcomes, unset included.
func (o Outcome) Valid() bool {
	switch o {
	case OutcomeUnset, OutcomeCorrect, OutcomeWrong, OutcomeFinalCorrect, OutcomeFinalWrong:
		return true
	}
	return false
}

// Correct reports whether o is a correct outcome, final or not.
func (o Outcome) Correct() bool { return o == OutcomeCorrect || o == OutcomeFinalCorrect }

// Wrong reports whether o is a wrong outcome, final or not.
func (o Outcome) Wrong() bool { return o == OutcomeWrong || o == OutcomeFinalWrong }

// Label is the short result shown per row: "correct", "wrong" or "-".
func (o Outcome) Label() string {
	switch {
	case o.Correct():
		return "correct"
	case o.Wrong():
		return "wrong"
	default:
		return "-"
	}
}

// Player is the running score of the single player.
type Player struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Streak    int    `json:"streak"`
	MaxStreak int    `json:"maxStreak"`
}

// Boost is the single-use double-points help. ArmedIndex is nil until armed.
type Boost struct {
	Available  bool `json:"available"`
	ArmedIndex *int `json:"armedIndex"`
}

// NewBoost returns an unused boost.
func NewBoost() Boost { return Boost{Available: true} }

// ArmedFor reports whether the boost was armed for question i.
func (b Boost) ArmedFor(i int) bool { return b.ArmedIndex != nil && *b.ArmedIndex == i }

const (
	MinWager = 0
	MaxWager = 3
)

// ClampWager forces n into [MinWager, MaxWager].
func ClampWager(n int) int { return min(MaxWager, max(MinWager, n)) }

// StreakBonus is the flat bonus for reaching a streak of BonusStreak.
const (
	StreakBonus = 1
	BonusStreak = 3
)
