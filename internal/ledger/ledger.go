// Package ledger rebuilds the per-question point history of a finished or
// running game from what was recorded.
package ledger

import "github.com/onlyfootballfans/quiz/internal/quiz"

// Row is one question of the results table.
type Row struct {
	Index        int    `json:"index"`
	Category     string `json:"category"`
	BasePoints   int    `json:"basePoints"`
	BoostApplied bool   `json:"boostApplied"`
	StreakBonus  int    `json:"streakBonus"`
	Streak       int    `json:"streak"`
	OutcomeLabel string `json:"outcome"`
	RawAnswer    string `json:"rawAnswer"`
	Delta        int    `json:"delta"`
	RunningTotal int    `json:"runningTotal"`
	IsFinal      bool   `json:"isFinal"`
}

// Replay walks the questions once, in order, applying the same scoring the
// game applies live. The last question is the final and scores ±wager.
func Replay(
	questions []quiz.Question,
	outcomes map[int]quiz.Outcome,
	boost quiz.Boost,
	wager int,
	answers map[int]quiz.Answer,
) []Row {
	rows := make([]Row, 0, len(questions))
	total, streak := 0, 0
	last := len(questions) - 1

	for i, q := range questions {
		o := outcomes[i]
		row := Row{
			Index:        i,
			Category:     q.Category,
			BasePoints:   q.BasePoints(),
			OutcomeLabel: o.Label(),
			RawAnswer:    answers[i].Display(),
			IsFinal:      i == last,
		}

		switch {
		case row.IsFinal:
			switch {
			case o.Correct():
				row.Delta = wager
			case o.Wrong():
				row.Delta = -wager
			}
		case o.Correct():
			streak++
			row.BoostApplied = boost.ArmedFor(i)
			row.Delta = row.BasePoints
			if row.BoostApplied {
				row.Delta *= 2
			}
			if streak >= quiz.BonusStreak {
				row.StreakBonus = quiz.StreakBonus
			}
			row.Delta += row.StreakBonus
		default:
			streak = 0
		}

		total += row.Delta
		row.Streak = streak
		row.RunningTotal = total
		rows = append(rows, row)
	}
	return rows
}

// Total is the final running total, zero for an empty table.
func Total(rows []Row) int {
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].RunningTotal
}

// MaxStreak is the longest run of correct non-final answers.
func MaxStreak(rows []Row) int {
	best := 0
	for _, r := range rows {
		best = max(best, r.Streak)
	}
	return best
}
