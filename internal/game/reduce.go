package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/onlyfootballfans/quiz/internal/quiz"
	"github.com/onlyfootballfans/quiz/internal/validate"
)

// ErrRejected is returned when an intent is not legal in the current stage.
// The state is returned unchanged alongside it.
var ErrRejected = errors.New("intent rejected")

// MinNameLength is the shortest trimmed player name accepted.
const MinNameLength = 2

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRejected, fmt.Sprintf(format, args...))
}

// Reduce applies one intent to s. verdict is only read for a submit on an
// auto-marked question and must be the validator's decision for that answer.
// Repeating an idempotent intent (re-arming, resolving the final twice)
// returns s unchanged and a nil error.
func Reduce(questions []quiz.Question, s State, in Intent, verdict validate.Verdict) (State, error) {
	next := s.clone()
	last := len(questions) - 1

	if in.Kind != IntentReset && inQuestion(s.Stage) && (s.Index < 0 || s.Index > last) {
		return s, reject("question %d is out of range", s.Index)
	}

	switch in.Kind {
	case IntentReset:
		name := s.Player.Name
		next = NewState()
		next.Player.Name = name
		return next, nil

	case IntentCommitName:
		if s.Stage != StageName {
			return s, reject("commit-name in stage %s", s.Stage)
		}
		name := strings.TrimSpace(in.Name)
		if utf8.RuneCountInString(name) < MinNameLength {
			return s, reject("name must be at least %d characters", MinNameLength)
		}
		next.Player.Name = name
		next.Stage = StageIntro
		return next, nil

	case IntentStart:
		if s.Stage != StageIntro {
			return s, reject("start in stage %s", s.Stage)
		}
		if len(questions) == 0 {
			next.Stage = StageResults
			return next, nil
		}
		return enterCategory(next, 0), nil

	case IntentArmBoost:
		if s.Stage != StageCategory {
			return s, reject("arm-boost in stage %s", s.Stage)
		}
		if s.Index == last {
			return s, reject("boost does not apply to the final question")
		}
		if !s.Boost.Available {
			return s, nil
		}
		i := s.Index
		next.Boost = quiz.Boost{Available: false, ArmedIndex: &i}
		return next, nil

	case IntentSetWager:
		if s.Stage != StageCategory || s.Index != last {
			return s, reject("wager is only set before the final question")
		}
		next.Wager = quiz.ClampWager(in.Wager)
		return next, nil

	case IntentSubmit, IntentSkip:
		if s.Stage != StageQuestion {
			return s, reject("%s in stage %s", in.Kind, s.Stage)
		}
		answer := in.Answer
		if in.Kind == IntentSkip || answer.IsZero() {
			answer = quiz.SkipAnswer()
		}
		next.Answers[s.Index] = answer
		next.Stage = StageAnswer

		q := questions[s.Index]
		if !q.AutoMarked() {
			return next, nil
		}
		if s.Index == last {
			return resolveFinal(next, verdict.Correct), nil
		}
		return score(next, questions, verdict.Correct), nil

	case IntentMarkManual:
		if s.Stage != StageAnswer {
			return s, reject("mark-manual in stage %s", s.Stage)
		}
		if s.Index == last {
			return s, reject("the final question is resolved with resolve-final")
		}
		correct, ok := decided(in.Outcome)
		if !ok {
			return s, reject("outcome %q is not correct or wrong", in.Outcome)
		}
		if s.Outcome(s.Index) != quiz.OutcomeUnset {
			return s, nil
		}
		return score(next, questions, correct), nil

	case IntentResolveFinal:
		if s.Stage != StageAnswer || s.Index != last {
			return s, reject("resolve-final outside the final answer")
		}
		correct, ok := decided(in.Outcome)
		if !ok {
			return s, reject("outcome %q is not correct or wrong", in.Outcome)
		}
		if s.FinalResolved {
			return s, nil
		}
		return resolveFinal(next, correct), nil

	case IntentAdvance:
		switch s.Stage {
		case StageCategory:
			next.Stage = StageQuestion
			return next, nil
		case StageAnswer:
			if s.Index == last {
				if !s.FinalResolved {
					return s, reject("final question is not resolved")
				}
				next.Stage = StageResults
				return next, nil
			}
			if s.Outcome(s.Index) == quiz.OutcomeUnset {
				return s, reject("question %d has no outcome", s.Index)
			}
			return enterCategory(next, s.Index+1), nil
		default:
			return s, reject("advance in stage %s", s.Stage)
		}
	}

	return s, reject("unknown intent %q", in.Kind)
}

func inQuestion(st Stage) bool {
	return st == StageCategory || st == StageQuestion || st == StageAnswer
}

func decided(o quiz.Outcome) (correct, ok bool) {
	switch {
	case o.Correct():
		return true, true
	case o.Wrong():
		return false, true
	default:
		return false, false
	}
}

func enterCategory(s State, index int) State {
	s.Index = index
	s.Stage = StageCategory
	s.Wager = 0
	s.FinalResolved = false
	return s
}

// score records the outcome of a non-final question and updates the player.
func score(s State, questions []quiz.Question, correct bool) State {
	p := s.Player
	if correct {
		p.Streak++
		delta := questions[s.Index].BasePoints()
		if s.Boost.ArmedFor(s.Index) {
			delta *= 2
		}
		if p.Streak >= quiz.BonusStreak {
			delta += quiz.StreakBonus
		}
		p.Score += delta
		s.Outcomes[s.Index] = quiz.OutcomeCorrect
	} else {
		p.Streak = 0
		s.Outcomes[s.Index] = quiz.OutcomeWrong
	}
	p.MaxStreak = max(p.MaxStreak, p.Streak)
	s.Player = p
	return s
}

func resolveFinal(s State, correct bool) State {
	if correct {
		s.Player.Score += s.Wager
		s.Outcomes[s.Index] = quiz.OutcomeFinalCorrect
	} else {
		s.Player.Score -= s.Wager
		s.Outcomes[s.Index] = quiz.OutcomeFinalWrong
	}
	s.FinalResolved = true
	return s
}
