package validate

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/onlyfootballfans/quiz/internal/catalog"
	"github.com/onlyfootballfans/quiz/internal/quiz"
)

type staticCatalogs map[string]*catalog.Index

func (s staticCatalogs) Get(_ context.Context, name string) *catalog.Index {
	if idx, ok := s[name]; ok {
		return idx
	}
	return catalog.NewIndex(name, nil, slog.Default())
}

func testValidator(t *testing.T) *Validator {
	t.Helper()
	var entries []catalog.Entry
	raw := `[
		{"name": "Greece", "key": "GR", "aliases": ["Ελλάδα", "Hellas"]},
		{"name": "Portugal", "key": "PT"},
		"Angelos Charisteas",
		{"name": "Otto Rehhagel", "aliases": ["Rehakles"]}
	]`
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}
	return New(staticCatalogs{"countries": catalog.NewIndex("countries", entries, slog.Default())})
}

func question(t *testing.T, raw string) quiz.Question {
	t.Helper()
	var q quiz.Question
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		t.Fatalf("decoding question: %v", err)
	}
	return q
}

func TestValidateCatalog(t *testing.T) {
	v := testValidator(t)
	byKey := question(t, `{"answerMode": "catalog", "catalog": "countries", "acceptKeys": ["GR"]}`)
	byName := question(t, `{"answerMode": "catalog", "catalog": "countries", "accept": ["Otto Rehhagel"]}`)

	tests := []struct {
		name    string
		q       quiz.Question
		answer  quiz.Answer
		want    bool
		wantCan string
	}{
		{"pick by id", byKey, quiz.PickAnswer("countries:greece", "Greece"), true, "Greece"},
		{"free text alias", byKey, quiz.TextAnswer("ελλαδα"), true, "Greece"},
		{"free text other item", byKey, quiz.TextAnswer("Portugal"), false, "Portugal"},
		{"unknown text", byKey, quiz.TextAnswer("Atlantis"), false, ""},
		{"stale pick falls back to name", byKey, quiz.PickAnswer("countries:gone", "Hellas"), true, "Greece"},
		{"accepted string via alias", byName, quiz.TextAnswer("rehakles"), true, "Otto Rehhagel"},
		{"accepted string wrong item", byName, quiz.TextAnswer("Angelos Charisteas"), false, "Angelos Charisteas"},
		{"skip", byKey, quiz.SkipAnswer(), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(context.Background(), tt.q, tt.answer)
			if got.Correct != tt.want || got.Canonical != tt.wantCan {
				t.Errorf("Validate = %+v, want {Correct:%v Canonical:%q}", got, tt.want, tt.wantCan)
			}
		})
	}
}

func TestValidateCatalogPickSharedSlug(t *testing.T) {
	var entries []catalog.Entry
	if err := json.Unmarshal([]byte(`["Ολυμπιακός", "Παναθηναϊκός"]`), &entries); err != nil {
		t.Fatalf("decoding entries: %v", err)
	}
	idx := catalog.NewIndex("teams", entries, slog.Default())
	v := New(staticCatalogs{"teams": idx})
	q := question(t, `{"answerMode": "catalog", "catalog": "teams", "accept": ["Παναθηναϊκός"]}`)

	sug := catalog.Suggest(idx, "Παναθ")
	if len(sug) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(sug))
	}
	got := v.Validate(context.Background(), q, quiz.PickAnswer(sug[0].ID, sug[0].Name))
	if !got.Correct || got.Canonical != "Παναθηναϊκός" {
		t.Errorf("Validate = %+v, want {Correct:true Canonical:Παναθηναϊκός}", got)
	}
}

func TestValidateCatalogMissingIndex(t *testing.T) {
	v := testValidator(t)
	q := question(t, `{"answerMode": "catalog", "catalog": "stadiums", "accept": ["Karaiskakis"]}`)
	if got := v.Validate(context.Background(), q, quiz.TextAnswer("Karaiskakis")); got.Correct {
		t.Errorf("Validate against empty catalog = %+v, want not correct", got)
	}

	none := New(nil)
	if got := none.Validate(context.Background(), q, quiz.TextAnswer("Karaiskakis")); got.Correct {
		t.Errorf("Validate without catalogs = %+v, want not correct", got)
	}
}

func TestValidateScoreline(t *testing.T) {
	v := testValidator(t)
	free := question(t, `{"answerMode": "scoreline", "acceptScores": [{"home": 2, "away": 3}]}`)
	fixed := question(t, `{"answerMode": "scoreline", "teams": ["Greece", "Portugal"], "acceptScores": [{"home": 1, "away": 0}]}`)

	tests := []struct {
		name    string
		q       quiz.Question
		answer  quiz.Answer
		want    bool
		wantCan string
	}{
		{"text", free, quiz.TextAnswer("2-3"), true, "2-3"},
		{"pair", free, quiz.ScoreAnswer(2, 3), true, "2-3"},
		{"swapped without team order", free, quiz.ScoreAnswer(3, 2), true, "3-2"},
		{"colon", free, quiz.TextAnswer("3:2"), true, "3-2"},
		{"en dash", free, quiz.TextAnswer("2–3"), true, "2-3"},
		{"times sign", free, quiz.TextAnswer("2 × 3"), true, "2-3"},
		{"wrong", free, quiz.TextAnswer("1-1"), false, "1-1"},
		{"garbage", free, quiz.TextAnswer("two three"), false, ""},
		{"fixed order", fixed, quiz.ScoreAnswer(1, 0), true, "1-0"},
		{"fixed order swapped", fixed, quiz.ScoreAnswer(0, 1), false, "0-1"},
		{"skip", free, quiz.SkipAnswer(), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(context.Background(), tt.q, tt.answer)
			if got.Correct != tt.want || got.Canonical != tt.wantCan {
				t.Errorf("Validate = %+v, want {Correct:%v Canonical:%q}", got, tt.want, tt.wantCan)
			}
		})
	}
}

func TestValidateNumeric(t *testing.T) {
	v := testValidator(t)
	tolerant := question(t, `{"answerMode": "numeric", "acceptNumbers": [2004], "tolerance": 1}`)
	list := question(t, `{"answerMode": "numeric", "acceptNumbers": [1, 2], "tolerance": 5}`)
	ranged := question(t, `{"answerMode": "numeric", "min": 10}`)
	bounded := question(t, `{"answerMode": "numeric", "min": 10, "max": 20}`)
	fromAnswer := question(t, `{"answerMode": "numeric", "answer": "3,5"}`)
	unconfigured := question(t, `{"answerMode": "numeric"}`)

	tests := []struct {
		name    string
		q       quiz.Question
		answer  quiz.Answer
		want    bool
		wantCan string
	}{
		{"within tolerance", tolerant, quiz.NumberAnswer(2005), true, "2005"},
		{"outside tolerance", tolerant, quiz.NumberAnswer(2006), false, "2006"},
		{"numeric string", tolerant, quiz.TextAnswer(" 2003 "), true, "2003"},
		{"list ignores tolerance", list, quiz.NumberAnswer(3), false, "3"},
		{"list exact", list, quiz.NumberAnswer(2), true, "2"},
		{"open upper bound", ranged, quiz.NumberAnswer(1e6), true, "1000000"},
		{"below lower bound", ranged, quiz.NumberAnswer(9.5), false, "9.5"},
		{"inclusive upper bound", bounded, quiz.NumberAnswer(20), true, "20"},
		{"decimal comma", fromAnswer, quiz.TextAnswer("3,5"), true, "3.5"},
		{"decimal comma value", fromAnswer, quiz.Answer{Kind: quiz.AnswerNumber, Value: "3,5"}, true, "3.5"},
		{"garbage value", fromAnswer, quiz.Answer{Kind: quiz.AnswerNumber, Value: "three"}, false, ""},
		{"never correct", unconfigured, quiz.NumberAnswer(1), false, "1"},
		{"unparseable", tolerant, quiz.TextAnswer("about 2004"), false, ""},
		{"empty value", tolerant, quiz.Answer{Kind: quiz.AnswerNumber}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(context.Background(), tt.q, tt.answer)
			if got.Correct != tt.want || got.Canonical != tt.wantCan {
				t.Errorf("Validate = %+v, want {Correct:%v Canonical:%q}", got, tt.want, tt.wantCan)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	v := testValidator(t)
	q := question(t, `{"answer": "Otto Rehhagel", "accept": ["Rehakles", "Ρεχάγκελ"]}`)
	blank := question(t, `{}`)

	tests := []struct {
		name    string
		q       quiz.Question
		answer  quiz.Answer
		want    bool
		wantCan string
	}{
		{"primary", q, quiz.TextAnswer("otto  REHHAGEL"), true, "Otto Rehhagel"},
		{"accept list", q, quiz.TextAnswer("rehakles"), true, "Otto Rehhagel"},
		{"greek without accents", q, quiz.TextAnswer("ρεχαγκελ"), true, "Otto Rehhagel"},
		{"partial", q, quiz.TextAnswer("Rehhagel"), false, ""},
		{"skip", q, quiz.SkipAnswer(), false, ""},
		{"empty against empty", blank, quiz.TextAnswer("  "), false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(context.Background(), tt.q, tt.answer)
			if got.Correct != tt.want || got.Canonical != tt.wantCan {
				t.Errorf("Validate = %+v, want {Correct:%v Canonical:%q}", got, tt.want, tt.wantCan)
			}
		})
	}
}
