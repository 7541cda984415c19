package quiz

import "strings"

type AnswerKind string

const (
	// AnswerNone is a skipped question ("don't know").
	AnswerNone   AnswerKind = "none"
	AnswerText   AnswerKind = "text"
	AnswerPick   AnswerKind = "pick"
	AnswerScore  AnswerKind = "score"
	AnswerNumber AnswerKind = "number"
)

// Answer is the raw value a player committed for one question.
type Answer struct {
	Kind AnswerKind `json:"kind"`
	// Text is the typed text, or the display name of a picked catalog item.
	Text   string     `json:"text,omitempty"`
	ItemID string     `json:"itemId,omitempty"`
	Score  *Scoreline `json:"score,omitempty"`
	// Value is the typed number, as a JSON number or a string such as "3,5".
	// It is empty when a numeric answer was left empty.
	Value Literal `json:"value,omitempty"`
}

func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }

// PickAnswer is a catalog item chosen from the suggestion list.
func PickAnswer(itemID, name string) Answer {
	return Answer{Kind: AnswerPick, ItemID: itemID, Text: name}
}

func ScoreAnswer(home, away int) Answer {
	return Answer{Kind: AnswerScore, Score: &Scoreline{Home: home, Away: away}}
}

func NumberAnswer(n float64) Answer {
	return Answer{Kind: AnswerNumber, Value: Literal(FormatNumber(n))}
}

// Number parses Value; ok is false when it is empty or not a number.
func (a Answer) Number() (float64, bool) { return ParseNumber(string(a.Value)) }

// SkipAnswer is recorded when the player gives no answer.
func SkipAnswer() Answer { return Answer{Kind: AnswerNone} }

// IsZero reports whether no answer was recorded at all.
func (a Answer) IsZero() bool { return a.Kind == "" }

// Display renders the answer the way the results table shows it.
func (a Answer) Display() string {
	switch a.Kind {
	case AnswerScore:
		if a.Score == nil {
			return ""
		}
		return a.Score.String()
	case AnswerNumber:
		if n, ok := a.Number(); ok {
			return FormatNumber(n)
		}
		return strings.TrimSpace(string(a.Value))
	case AnswerText, AnswerPick:
		return strings.TrimSpace(a.Text)
	default:
		return ""
	}
}
