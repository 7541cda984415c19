package game

import (
	"context"
	"log/slog"

	"github.com/onlyfootballfans/quiz/internal/quiz"
	"github.com/onlyfootballfans/quiz/internal/validate"
)

// Validator decides auto-marked answers.
type Validator interface {
	Validate(ctx context.Context, q quiz.Question, a quiz.Answer) validate.Verdict
}

// Machine runs intents against one ordered question feed.
type Machine struct {
	questions []quiz.Question
	validator Validator
	logger    *slog.Logger
}

func NewMachine(questions []quiz.Question, validator Validator, logger *slog.Logger) *Machine {
	return &Machine{questions: questions, validator: validator, logger: logger}
}

func (m *Machine) Questions() []quiz.Question { return m.questions }

// Apply validates the submitted answer when the current question is
// auto-marked, then reduces the intent.
func (m *Machine) Apply(ctx context.Context, s State, in Intent) (State, error) {
	var verdict validate.Verdict
	if in.Kind == IntentSubmit || in.Kind == IntentSkip {
		if q, ok := m.current(s); ok && s.Stage == StageQuestion && q.AutoMarked() {
			answer := in.Answer
			if in.Kind == IntentSkip {
				answer = quiz.SkipAnswer()
			}
			verdict = m.validator.Validate(ctx, q, answer)
			m.logger.DebugContext(ctx, "answer validated",
				"index", s.Index,
				"mode", q.Mode(),
				"correct", verdict.Correct,
				"canonical", verdict.Canonical,
			)
		}
	}
	return Reduce(m.questions, s, in, verdict)
}

// Verdict re-derives the validator's decision for the answer recorded at i.
func (m *Machine) Verdict(ctx context.Context, s State, i int) (validate.Verdict, bool) {
	if i < 0 || i >= len(m.questions) || !m.questions[i].AutoMarked() {
		return validate.Verdict{}, false
	}
	a, ok := s.Answers[i]
	if !ok {
		return validate.Verdict{}, false
	}
	return m.validator.Validate(ctx, m.questions[i], a), true
}

func (m *Machine) current(s State) (quiz.Question, bool) {
	if s.Index < 0 || s.Index >= len(m.questions) {
		return quiz.Question{}, false
	}
	return m.questions[s.Index], true
}
