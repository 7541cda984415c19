package game

import "github.com/onlyfootballfans/quiz/internal/quiz"

type IntentKind string

const (
	IntentCommitName   IntentKind = "commit-name"
	IntentStart        IntentKind = "start"
	IntentArmBoost     IntentKind = "arm-boost"
	IntentSetWager     IntentKind = "set-wager"
	IntentSubmit       IntentKind = "submit"
	IntentSkip         IntentKind = "skip"
	IntentMarkManual   IntentKind = "mark-manual"
	IntentResolveFinal IntentKind = "resolve-final"
	IntentAdvance      IntentKind = "advance"
	IntentReset        IntentKind = "reset"
)

// Intent is one action emitted by the presentation layer. Only the fields
// relevant to Kind are read.
type Intent struct {
	Kind    IntentKind   `json:"kind"`
	Name    string       `json:"name,omitempty"`
	Wager   int          `json:"wager,omitempty"`
	Answer  quiz.Answer  `json:"answer,omitzero"`
	Outcome quiz.Outcome `json:"outcome,omitempty"`
}

func CommitName(name string) Intent      { return Intent{Kind: IntentCommitName, Name: name} }
func Start() Intent                      { return Intent{Kind: IntentStart} }
func ArmBoost() Intent                   { return Intent{Kind: IntentArmBoost} }
func SetWager(n int) Intent              { return Intent{Kind: IntentSetWager, Wager: n} }
func Submit(a quiz.Answer) Intent        { return Intent{Kind: IntentSubmit, Answer: a} }
func Skip() Intent                       { return Intent{Kind: IntentSkip} }
func MarkManual(o quiz.Outcome) Intent   { return Intent{Kind: IntentMarkManual, Outcome: o} }
func ResolveFinal(o quiz.Outcome) Intent { return Intent{Kind: IntentResolveFinal, Outcome: o} }
func Advance() Intent                    { return Intent{Kind: IntentAdvance} }
func Reset() Intent                      { return Intent{Kind: IntentReset} }

// Valid reports whether the kind is known.
func (k IntentKind) Valid() bool {
	switch k {
	case IntentCommitName, IntentStart, IntentArmBoost, IntentSetWager, IntentSubmit,
		IntentSkip, IntentMarkManual, IntentResolveFinal, IntentAdvance, IntentReset:
		return true
	}
	return false
}

// Operator reports whether the intent decides an outcome by hand.
func (k IntentKind) Operator() bool {
	return k == IntentMarkManual || k == IntentResolveFinal
}
