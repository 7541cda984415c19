// Package quiz defines the domain types shared by the validator, the scoring
// machine and the results ledger. It has no dependencies outside the standard
// library.
package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type AnswerMode string

const (
	ModeText      AnswerMode = "text"
	ModeCatalog   AnswerMode = "catalog"
	ModeScoreline AnswerMode = "scoreline"
	ModeNumeric   AnswerMode = "numeric"
)

type Media struct {
	Type   string `json:"type"`
	Src    string `json:"src"`
	Poster string `json:"poster,omitempty"`
}

// Scoreline is a final score, home team first.
type Scoreline struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

func (s Scoreline) String() string { return fmt.Sprintf("%d-%d", s.Home, s.Away) }

// Teams names the sides of a scoreline question. Its presence fixes the
// home/away order of accepted scores.
type Teams struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

// UnmarshalJSON accepts {"home": ..., "away": ...} or a two-element list.
func (t *Teams) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		*t = Teams{}
		if len(pair) > 0 {
			t.Home = pair[0]
		}
		if len(pair) > 1 {
			t.Away = pair[1]
		}
		return nil
	}
	type plain Teams
	return json.Unmarshal(data, (*plain)(t))
}

// Literal is a string that may be written as a JSON number in the feed.
type Literal string

func (l *Literal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Literal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("literal must be a string or number: %w", err)
	}
	*l = Literal(n.String())
	return nil
}

// Question is one entry of the question feed. Acceptance fields are read
// according to AnswerMode.
type Question struct {
	Order      float64    `json:"order"`
	Category   string     `json:"category"`
	Prompt     string     `json:"prompt"`
	Points     int        `json:"points,omitempty"`
	AnswerMode AnswerMode `json:"answerMode,omitempty"`
	Media      *Media     `json:"media,omitempty"`
	Fact       string     `json:"fact,omitempty"`

	// text
	Answer Literal   `json:"answer,omitempty"`
	Accept []Literal `json:"accept,omitempty"`

	// catalog
	Catalog    string    `json:"catalog,omitempty"`
	AcceptKeys []Literal `json:"acceptKeys,omitempty"`

	// scoreline
	Teams        *Teams      `json:"teams,omitempty"`
	AcceptScores []Scoreline `json:"acceptScores,omitempty"`

	// numeric
	AcceptNumber  *float64  `json:"acceptNumber,omitempty"`
	AcceptNumbers []float64 `json:"acceptNumbers,omitempty"`
	AnswerNumber  *float64  `json:"answerNumber,omitempty"`
	Tolerance     *float64  `json:"tolerance,omitempty"`
	Min           *float64  `json:"min,omitempty"`
	Max           *float64  `json:"max,omitempty"`
}

// Mode returns the answer mode, text when unset.
func (q Question) Mode() AnswerMode {
	if q.AnswerMode == "" {
		return ModeText
	}
	return q.AnswerMode
}

// BasePoints returns the question's point value, 1 when unset.
func (q Question) BasePoints() int {
	if q.Points == 0 {
		return 1
	}
	return q.Points
}

// AutoMarked reports whether the validator decides this question, as opposed
// to an operator marking it by hand.
func (q Question) AutoMarked() bool { return q.Mode() != ModeText }

// AcceptedNumbers returns the exact numeric answers: AcceptNumbers when set,
// otherwise whichever of AcceptNumber, AnswerNumber and Answer parse.
func (q Question) AcceptedNumbers() []float64 {
	if len(q.AcceptNumbers) > 0 {
		return q.AcceptNumbers
	}
	var out []float64
	if q.AcceptNumber != nil {
		out = append(out, *q.AcceptNumber)
	}
	if q.AnswerNumber != nil {
		out = append(out, *q.AnswerNumber)
	}
	if q.Answer != "" {
		if n, ok := ParseNumber(string(q.Answer)); ok {
			out = append(out, n)
		}
	}
	return out
}

// View is the question as shown to the player, without acceptance fields.
type View struct {
	Index      int        `json:"index"`
	Total      int        `json:"total"`
	IsFinal    bool       `json:"isFinal"`
	Category   string     `json:"category"`
	Prompt     string     `json:"prompt"`
	Points     int        `json:"points"`
	AnswerMode AnswerMode `json:"answerMode"`
	Catalog    string     `json:"catalog,omitempty"`
	Teams      *Teams     `json:"teams,omitempty"`
	Media      *Media     `json:"media,omitempty"`
}

// ViewOf builds the player-facing view of questions[i].
func ViewOf(questions []Question, i int) View {
	q := questions[i]
	return View{
		Index:      i,
		Total:      len(questions),
		IsFinal:    i == len(questions)-1,
		Category:   q.Category,
		Prompt:     q.Prompt,
		Points:     q.BasePoints(),
		AnswerMode: q.Mode(),
		Catalog:    q.Catalog,
		Teams:      q.Teams,
		Media:      q.Media,
	}
}

// Reveal is what the answer stage shows once a question is closed.
type Reveal struct {
	Answer string `json:"answer,omitempty"`
	Fact   string `json:"fact,omitempty"`
}

func (q Question) Reveal() Reveal {
	r := Reveal{Answer: string(q.Answer), Fact: q.Fact}
	if r.Answer == "" && q.Mode() == ModeScoreline && len(q.AcceptScores) > 0 {
		r.Answer = q.AcceptScores[0].String()
	}
	if r.Answer == "" && q.Mode() == ModeNumeric {
		if nums := q.AcceptedNumbers(); len(nums) > 0 {
			r.Answer = FormatNumber(nums[0])
		}
	}
	return r
}
