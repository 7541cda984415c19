// Package feed loads the ordered question list.
package feed

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/onlyfootballfans/quiz/internal/quiz"
)

// ErrInvalid reports a feed that is not a JSON array of questions.
var ErrInvalid = errors.New("invalid question feed")

// Load reads the feed at path.
func Load(path string) ([]quiz.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening feed: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a JSON array of questions and sorts it by order. Questions
// with the same order keep their position in the file.
func Decode(r io.Reader) ([]quiz.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading feed: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var questions []quiz.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	for i := range questions {
		if questions[i].Points <= 0 {
			questions[i].Points = 1
		}
		if questions[i].AnswerMode == "" {
			questions[i].AnswerMode = quiz.ModeText
		}
		if err := check(questions[i]); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrInvalid, i, err)
		}
	}

	slices.SortStableFunc(questions, func(a, b quiz.Question) int {
		return cmp.Compare(a.Order, b.Order)
	})
	return questions, nil
}

func check(q quiz.Question) error {
	switch q.AnswerMode {
	case quiz.ModeText, quiz.ModeNumeric, quiz.ModeScoreline:
		return nil
	case quiz.ModeCatalog:
		if q.Catalog == "" {
			return errors.New("catalog question without a catalog name")
		}
		return nil
	default:
		return fmt.Errorf("unknown answer mode %q", q.AnswerMode)
	}
}
