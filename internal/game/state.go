// Package game is the scoring state machine of a single-player quiz run.
package game

import (
	"maps"

	"github.com/onlyfootballfans/quiz/internal/quiz"
)

type Stage string

const (
	StageName     Stage = "name"
	StageIntro    Stage = "intro"
	StageCategory Stage = "category"
	StageQuestion Stage = "question"
	StageAnswer   Stage = "answer"
	StageResults  Stage = "results"
)

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	switch s {
	case StageName, StageIntro, StageCategory, StageQuestion, StageAnswer, StageResults:
		return true
	}
	return false
}

// State is the whole persisted game. Every intent replaces it as a unit.
type State struct {
	Index         int                  `json:"index"`
	Stage         Stage                `json:"stage"`
	Player        quiz.Player          `json:"player"`
	Boost         quiz.Boost           `json:"boost"`
	Wager         int                  `json:"wager"`
	FinalResolved bool                 `json:"finalResolved"`
	Outcomes      map[int]quiz.Outcome `json:"answered"`
	Answers       map[int]quiz.Answer  `json:"answers"`
}

// NewState returns a game waiting for a player name.
func NewState() State {
	return State{
		Stage:    StageName,
		Boost:    quiz.NewBoost(),
		Outcomes: map[int]quiz.Outcome{},
		Answers:  map[int]quiz.Answer{},
	}
}

// Outcome returns the recorded outcome of question i.
func (s State) Outcome(i int) quiz.Outcome { return s.Outcomes[i] }

// clone copies the maps so a transition never mutates its input.
func (s State) clone() State {
	s.Outcomes = maps.Clone(s.Outcomes)
	if s.Outcomes == nil {
		s.Outcomes = map[int]quiz.Outcome{}
	}
	s.Answers = maps.Clone(s.Answers)
	if s.Answers == nil {
		s.Answers = map[int]quiz.Answer{}
	}
	if s.Boost.ArmedIndex != nil {
		i := *s.Boost.ArmedIndex
		s.Boost.ArmedIndex = &i
	}
	return s
}
