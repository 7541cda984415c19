package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onlyfootballfans/quiz/internal/catalog"
	"github.com/onlyfootballfans/quiz/internal/feed"
	"github.com/onlyfootballfans/quiz/internal/game"
	"github.com/onlyfootballfans/quiz/internal/handler/health"
	"github.com/onlyfootballfans/quiz/internal/store"
	"github.com/onlyfootballfans/quiz/internal/validate"
)

const testFeed = `[
	{"order": 1, "category": "Euro 2004", "prompt": "Who coached Greece?", "answerMode": "catalog",
	 "catalog": "coaches", "accept": ["Otto Rehhagel"], "fact": "King Otto."},
	{"order": 2, "category": "Euro 2004", "prompt": "Final score?", "answerMode": "scoreline",
	 "teams": ["Portugal", "Greece"], "acceptScores": [{"home": 0, "away": 1}], "points": 2},
	{"order": 3, "category": "Legends", "prompt": "Greek captain?", "answer": "Zagorakis"},
	{"order": 4, "category": "Τελική ερώτηση — Stats", "prompt": "Goals conceded?", "answerMode": "numeric",
	 "answerNumber": 4}
]`

var testCatalogs = map[string]string{
	"coaches": `[
		{"name": "Otto Rehhagel", "aliases": ["Ρεχάγκελ", "Rehakles"]},
		"Luiz Felipe Scolari",
		"Marcello Lippi",
		"Marco van Basten",
		"Mario Zagallo"
	]`,
}

func testSource(t *testing.T) catalog.Source {
	t.Helper()
	return catalog.SourceFunc(func(_ context.Context, name string) ([]catalog.Entry, error) {
		raw, ok := testCatalogs[name]
		if !ok {
			return nil, fmt.Errorf("no catalog %q", name)
		}
		var entries []catalog.Entry
		err := json.Unmarshal([]byte(raw), &entries)
		return entries, err
	})
}

type testEnv struct {
	handler http.Handler
	host    *game.Host
}

func newTestEnv(t *testing.T, operatorHash string) testEnv {
	t.Helper()
	qs, err := feed.Decode(strings.NewReader(testFeed))
	if err != nil {
		t.Fatalf("decoding feed: %v", err)
	}
	logger := slog.Default()
	catalogs := catalog.NewRegistry(testSource(t), logger)
	kv := store.NewMemory()
	host := game.NewHost(game.NewMachine(qs, validate.New(catalogs), logger), kv, "test", logger)

	return testEnv{
		handler: NewHandler(Deps{
			Logger:       logger,
			Host:         host,
			Catalogs:     catalogs,
			Checks:       map[string]health.Checker{"store": health.Ping(kv)},
			OperatorHash: operatorHash,
		}),
		host: host,
	}
}

func (e testEnv) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func (e testEnv) create(t *testing.T) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/games", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body %s", rec.Code, rec.Body)
	}
	return decode[GameView](t, rec).ID
}

func (e testEnv) intent(t *testing.T, id string, in game.Intent, header ...string) GameView {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/games/"+id+"/intents", in, header...)
	if rec.Code != http.StatusOK {
		t.Fatalf("intent %s: status = %d, body %s", in.Kind, rec.Code, rec.Body)
	}
	return decode[GameView](t, rec)
}
