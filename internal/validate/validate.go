// Package validate decides whether a submitted answer is correct for a
// question, dispatching on the question's answer mode.
package validate

import (
	"context"
	"math"
	"slices"

	"github.com/onlyfootballfans/quiz/internal/catalog"
	"github.com/onlyfootballfans/quiz/internal/quiz"
	"github.com/onlyfootballfans/quiz/internal/textnorm"
)

// Verdict is the outcome of validating one answer. Canonical is empty when
// there is nothing meaningful to show.
type Verdict struct {
	Correct   bool   `json:"correct"`
	Canonical string `json:"canonical,omitempty"`
}

// Catalogs resolves catalog names to indexes.
type Catalogs interface {
	Get(ctx context.Context, name string) *catalog.Index
}

type Validator struct {
	catalogs Catalogs
}

func New(catalogs Catalogs) *Validator {
	return &Validator{catalogs: catalogs}
}

// Validate never fails: input that cannot be parsed or resolved is simply
// not correct.
func (v *Validator) Validate(ctx context.Context, q quiz.Question, a quiz.Answer) Verdict {
	switch q.Mode() {
	case quiz.ModeCatalog:
		return v.catalog(ctx, q, a)
	case quiz.ModeScoreline:
		return scoreline(q, a)
	case quiz.ModeNumeric:
		return numeric(q, a)
	default:
		return text(q, a)
	}
}

func (v *Validator) catalog(ctx context.Context, q quiz.Question, a quiz.Answer) Verdict {
	if v.catalogs == nil {
		return Verdict{}
	}
	idx := v.catalogs.Get(ctx, q.Catalog)
	if idx == nil {
		return Verdict{}
	}

	var (
		item catalog.Item
		ok   bool
	)
	switch a.Kind {
	case quiz.AnswerPick:
		item, ok = idx.ByID(a.ItemID)
		if !ok {
			item, ok = idx.Lookup(textnorm.Normalize(a.Text))
		}
	case quiz.AnswerText:
		item, ok = idx.Lookup(textnorm.Normalize(a.Text))
	}
	if !ok {
		return Verdict{}
	}

	if item.Key != "" && slices.Contains(q.AcceptKeys, quiz.Literal(item.Key)) {
		return Verdict{Correct: true, Canonical: item.Name}
	}

	accepted := make(map[string]bool, len(q.Accept))
	for _, s := range q.Accept {
		accepted[textnorm.Normalize(string(s))] = true
	}
	correct := slices.ContainsFunc(item.Norms(), func(n string) bool { return accepted[n] })
	return Verdict{Correct: correct, Canonical: item.Name}
}

func scoreline(q quiz.Question, a quiz.Answer) Verdict {
	var (
		got quiz.Scoreline
		ok  bool
	)
	switch {
	case a.Kind == quiz.AnswerScore && a.Score != nil:
		got, ok = *a.Score, true
	case a.Kind == quiz.AnswerText:
		got, ok = quiz.ParseScore(a.Text)
	}
	if !ok {
		return Verdict{}
	}

	ordered := q.Teams != nil
	correct := slices.ContainsFunc(q.AcceptScores, func(s quiz.Scoreline) bool {
		if got == s {
			return true
		}
		return !ordered && got.Home == s.Away && got.Away == s.Home
	})
	return Verdict{Correct: correct, Canonical: got.String()}
}

func numeric(q quiz.Question, a quiz.Answer) Verdict {
	var (
		n  float64
		ok bool
	)
	switch {
	case a.Kind == quiz.AnswerNumber:
		n, ok = a.Number()
	case a.Kind == quiz.AnswerText:
		n, ok = quiz.ParseNumber(a.Text)
	}
	if !ok {
		return Verdict{}
	}
	canonical := quiz.FormatNumber(n)

	if list := q.AcceptedNumbers(); len(list) > 0 {
		// Tolerance only widens a single target; lists need an exact hit.
		if len(list) == 1 && q.Tolerance != nil && !math.IsNaN(*q.Tolerance) {
			correct := math.Abs(n-list[0]) <= math.Abs(*q.Tolerance)
			return Verdict{Correct: correct, Canonical: canonical}
		}
		return Verdict{Correct: slices.Contains(list, n), Canonical: canonical}
	}

	if q.Min != nil || q.Max != nil {
		lo, hi := math.Inf(-1), math.Inf(1)
		if q.Min != nil {
			lo = *q.Min
		}
		if q.Max != nil {
			hi = *q.Max
		}
		return Verdict{Correct: n >= lo && n <= hi, Canonical: canonical}
	}

	return Verdict{Canonical: canonical}
}

func text(q quiz.Question, a quiz.Answer) Verdict {
	var submitted string
	switch a.Kind {
	case quiz.AnswerText, quiz.AnswerPick:
		submitted = a.Text
	case quiz.AnswerNone, "":
	default:
		submitted = a.Display()
	}
	got := textnorm.Normalize(submitted)
	if got == "" {
		return Verdict{}
	}

	accepted := append([]quiz.Literal{q.Answer}, q.Accept...)
	for _, s := range accepted {
		if textnorm.Normalize(string(s)) == got {
			return Verdict{Correct: true, Canonical: string(q.Answer)}
		}
	}
	return Verdict{}
}
