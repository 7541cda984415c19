package ledger

import (
	"slices"
	"testing"

	"github.com/onlyfootballfans/quiz/internal/quiz"
)

func questions(points ...int) []quiz.Question {
	qs := make([]quiz.Question, len(points))
	for i, p := range points {
		qs[i] = quiz.Question{Category: "Euro 2004", Points: p}
	}
	return qs
}

func deltas(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Delta
	}
	return out
}

func TestReplay(t *testing.T) {
	armed := func(i int) quiz.Boost { return quiz.Boost{ArmedIndex: &i} }
	c, w := quiz.OutcomeCorrect, quiz.OutcomeWrong

	tests := []struct {
		name       string
		questions  []quiz.Question
		outcomes   map[int]quiz.Outcome
		boost      quiz.Boost
		wager      int
		wantDeltas []int
		wantTotal  int
		wantStreak int
	}{
		{
			name:       "streak bonus from third correct",
			questions:  questions(1, 1, 1, 1),
			outcomes:   map[int]quiz.Outcome{0: c, 1: c, 2: c},
			boost:      quiz.NewBoost(),
			wantDeltas: []int{1, 1, 2, 0},
			wantTotal:  4,
			wantStreak: 3,
		},
		{
			name:       "boost doubles base but not bonus",
			questions:  questions(2, 2, 2, 1),
			outcomes:   map[int]quiz.Outcome{0: c, 1: c, 2: c},
			boost:      armed(2),
			wantDeltas: []int{2, 2, 5, 0},
			wantTotal:  9,
			wantStreak: 3,
		},
		{
			name:       "wrong resets streak",
			questions:  questions(1, 1, 1, 1, 1, 1),
			outcomes:   map[int]quiz.Outcome{0: c, 1: c, 2: w, 3: c, 4: c},
			boost:      quiz.NewBoost(),
			wantDeltas: []int{1, 1, 0, 1, 1, 0},
			wantTotal:  4,
			wantStreak: 2,
		},
		{
			name:       "final correct adds wager",
			questions:  questions(1, 1),
			outcomes:   map[int]quiz.Outcome{0: c, 1: quiz.OutcomeFinalCorrect},
			boost:      quiz.NewBoost(),
			wager:      3,
			wantDeltas: []int{1, 3},
			wantTotal:  4,
			wantStreak: 1,
		},
		{
			name:       "final wrong subtracts wager and ignores boost",
			questions:  questions(1, 5),
			outcomes:   map[int]quiz.Outcome{0: w, 1: quiz.OutcomeFinalWrong},
			boost:      armed(1),
			wager:      2,
			wantDeltas: []int{0, -2},
			wantTotal:  -2,
		},
		{
			name:       "unresolved final",
			questions:  questions(1, 1),
			outcomes:   map[int]quiz.Outcome{0: c},
			boost:      quiz.NewBoost(),
			wager:      3,
			wantDeltas: []int{1, 0},
			wantTotal:  1,
			wantStreak: 1,
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Replay(tt.questions, tt.outcomes, tt.boost, tt.wager, nil)
			if got := deltas(rows); !slices.Equal(got, tt.wantDeltas) {
				t.Errorf("deltas = %v, want %v", got, tt.wantDeltas)
			}
			if got := Total(rows); got != tt.wantTotal {
				t.Errorf("Total = %d, want %d", got, tt.wantTotal)
			}
			if got := MaxStreak(rows); got != tt.wantStreak {
				t.Errorf("MaxStreak = %d, want %d", got, tt.wantStreak)
			}
		})
	}
}

func TestReplayRowDetails(t *testing.T) {
	qs := []quiz.Question{
		{Category: "Greece", Points: 2},
		{Category: "Τελική ερώτηση — Euro 2004"},
	}
	armed := 0
	rows := Replay(qs,
		map[int]quiz.Outcome{0: quiz.OutcomeCorrect, 1: quiz.OutcomeFinalWrong},
		quiz.Boost{ArmedIndex: &armed},
		1,
		map[int]quiz.Answer{0: quiz.ScoreAnswer(1, 0), 1: quiz.TextAnswer(" Charisteas ")},
	)

	want := []Row{
		{Index: 0, Category: "Greece", BasePoints: 2, BoostApplied: true, Streak: 1, OutcomeLabel: "correct", RawAnswer: "1-0", Delta: 4, RunningTotal: 4},
		{Index: 1, Category: "Τελική ερώτηση — Euro 2004", BasePoints: 1, Streak: 1, OutcomeLabel: "wrong", RawAnswer: "Charisteas", Delta: -1, RunningTotal: 3, IsFinal: true},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestReplayUnansweredLabel(t *testing.T) {
	rows := Replay(questions(1, 1), nil, quiz.NewBoost(), 0, map[int]quiz.Answer{0: quiz.SkipAnswer()})
	if rows[0].OutcomeLabel != "-" || rows[0].RawAnswer != "" {
		t.Errorf("row 0 = %+v, want label - and empty answer", rows[0])
	}
}
