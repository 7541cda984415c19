package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onlyfootballfans/quiz/internal/game"
	"github.com/onlyfootballfans/quiz/internal/ledger"
	"github.com/onlyfootballfans/quiz/internal/quiz"
	"github.com/onlyfootballfans/quiz/internal/store"
)

// GameView is a session as the presentation layer renders it.
type GameView struct {
	ID            string      `json:"id"`
	Stage         game.Stage  `json:"stage"`
	Index         int         `json:"index"`
	Total         int         `json:"total"`
	Player        quiz.Player `json:"player"`
	Boost         quiz.Boost  `json:"boost"`
	Wager         int         `json:"wager"`
	FinalResolved bool        `json:"finalResolved"`
	Question      *quiz.View  `json:"question,omitempty"`
	Answer        *AnswerView `json:"answer,omitempty"`
	// Rows is the ledger over every question; unanswered ones carry no delta.
	Rows []ledger.Row `json:"rows"`
}

// AnswerView is the closed question shown on the answer stage.
type AnswerView struct {
	Raw       string       `json:"raw"`
	Outcome   quiz.Outcome `json:"outcome"`
	Canonical string       `json:"canonical,omitempty"`
	Reveal    quiz.Reveal  `json:"reveal"`
}

// ResultsResponse is the response for GET /api/games/{id}/results.
type ResultsResponse struct {
	Player    string       `json:"player"`
	Score     int          `json:"score"`
	MaxStreak int          `json:"maxStreak"`
	Rows      []ledger.Row `json:"rows"`
}

// IntentRequest is the request body for POST /api/games/{id}/intents.
type IntentRequest = game.Intent

func viewOf(ctx context.Context, host *game.Host, id string, s game.State) GameView {
	m := host.Machine()
	qs := m.Questions()
	v := GameView{
		ID:            id,
		Stage:         s.Stage,
		Index:         s.Index,
		Total:         len(qs),
		Player:        s.Player,
		Boost:         s.Boost,
		Wager:         s.Wager,
		FinalResolved: s.FinalResolved,
		Rows:          ledger.Replay(qs, s.Outcomes, s.Boost, s.Wager, s.Answers),
	}

	switch s.Stage {
	case game.StageCategory, game.StageQuestion, game.StageAnswer:
		if s.Index >= len(qs) {
			break
		}
		q := quiz.ViewOf(qs, s.Index)
		v.Question = &q
	}

	if s.Stage == game.StageAnswer && s.Index < len(qs) {
		a := &AnswerView{
			Raw:     s.Answers[s.Index].Display(),
			Outcome: s.Outcome(s.Index),
			Reveal:  qs[s.Index].Reveal(),
		}
		if verdict, ok := m.Verdict(ctx, s, s.Index); ok {
			a.Canonical = verdict.Canonical
		}
		v.Answer = a
	}
	return v
}

func handleCreateGame(logger *slog.Logger, host *game.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		s, err := host.Create(r.Context(), id)
		if err != nil {
			logger.ErrorContext(r.Context(), "creating game", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		logger.InfoContext(r.Context(), "game created", "session", id)
		writeJSON(w, http.StatusCreated, viewOf(r.Context(), host, id, s))
	}
}

// loadGame writes the error response itself and reports whether to go on.
func loadGame(w http.ResponseWriter, r *http.Request, logger *slog.Logger, host *game.Host) (string, game.State, bool) {
	id := chi.URLParam(r, "id")
	s, err := host.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "game not found")
		return id, s, false
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "loading game", "session", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return id, s, false
	}
	return id, s, true
}

func handleGetGame(logger *slog.Logger, host *game.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, s, ok := loadGame(w, r, logger, host)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, viewOf(r.Context(), host, id, s))
	}
}

func handleIntent(logger *slog.Logger, host *game.Host, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var in IntentRequest
		if err := readJSON(w, r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !in.Kind.Valid() {
			writeError(w, http.StatusBadRequest, "unknown intent")
			return
		}

		s, err := host.Apply(r.Context(), id, in)
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "game not found")
			return
		case errors.Is(err, game.ErrRejected):
			writeError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			logger.ErrorContext(r.Context(), "applying intent", "session", id, "intent", in.Kind, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(id, stateEvent(in.Kind, s))
		writeJSON(w, http.StatusOK, viewOf(r.Context(), host, id, s))
	}
}

func handleResults(logger *slog.Logger, host *game.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, s, ok := loadGame(w, r, logger, host)
		if !ok {
			return
		}
		rows := ledger.Replay(host.Machine().Questions(), s.Outcomes, s.Boost, s.Wager, s.Answers)
		writeJSON(w, http.StatusOK, ResultsResponse{
			Player:    s.Player.Name,
			Score:     ledger.Total(rows),
			MaxStreak: ledger.MaxStreak(rows),
			Rows:      rows,
		})
	}
}

func handleIntro(host *game.Host) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, quiz.Summarize(host.Machine().Questions()))
	}
}
