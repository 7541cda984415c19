package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/onlyfootballfans/quiz/internal/quiz"
	"github.com/onlyfootballfans/quiz/internal/store"
)

// Persisted slice names. Each is stored under <prefix>:<session>:<slice>.
const (
	sliceIndex         = "index"
	sliceStage         = "stage"
	slicePlayer        = "player"
	sliceBoost         = "boost"
	sliceWager         = "wager"
	sliceFinalResolved = "finalResolved"
	sliceAnswered      = "answered"
	sliceAnswers       = "answers"
)

var sliceNames = []string{
	sliceIndex, sliceStage, slicePlayer, sliceBoost,
	sliceWager, sliceFinalResolved, sliceAnswered, sliceAnswers,
}

// legacyFinale is the stage older clients stored before the final question
// became a regular category.
const legacyFinale = "finale"

// Host runs a Machine for many sessions, persisting every session in a KV.
// Intents for one session are applied one at a time.
type Host struct {
	machine *Machine
	kv      store.KV
	prefix  string
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewHost(machine *Machine, kv store.KV, prefix string, logger *slog.Logger) *Host {
	return &Host{
		machine: machine,
		kv:      kv,
		prefix:  prefix,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

func (h *Host) Machine() *Machine { return h.machine }

func (h *Host) key(session, slice string) string {
	return h.prefix + ":" + session + ":" + slice
}

func (h *Host) lock(session string) func() {
	h.mu.Lock()
	l, ok := h.locks[session]
	if !ok {
		l = &sync.Mutex{}
		h.locks[session] = l
	}
	h.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// Create stores a fresh game for session.
func (h *Host) Create(ctx context.Context, session string) (State, error) {
	defer h.lock(session)()
	s := NewState()
	if err := h.save(ctx, session, s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Load restores session. It returns store.ErrNotFound for unknown sessions.
func (h *Host) Load(ctx context.Context, session string) (State, error) {
	defer h.lock(session)()
	return h.load(ctx, session)
}

// Apply loads session, applies in and saves the result. A rejected intent
// returns the stored state and an error wrapping ErrRejected.
func (h *Host) Apply(ctx context.Context, session string, in Intent) (State, error) {
	defer h.lock(session)()

	s, err := h.load(ctx, session)
	if err != nil {
		return State{}, err
	}
	next, err := h.machine.Apply(ctx, s, in)
	if err != nil {
		return s, err
	}
	if err := h.save(ctx, session, next); err != nil {
		return s, err
	}
	h.logger.DebugContext(ctx, "intent applied",
		"session", session,
		"intent", in.Kind,
		"stage", next.Stage,
		"index", next.Index,
		"score", next.Player.Score,
	)
	return next, nil
}

// Delete forgets session.
func (h *Host) Delete(ctx context.Context, session string) error {
	defer h.lock(session)()
	keys := make([]string, len(sliceNames))
	for i, sl := range sliceNames {
		keys[i] = h.key(session, sl)
	}
	if err := h.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("deleting session %s: %w", session, err)
	}
	h.mu.Lock()
	delete(h.locks, session)
	h.mu.Unlock()
	return nil
}

func (h *Host) save(ctx context.Context, session string, s State) error {
	values := map[string]any{
		sliceIndex:         s.Index,
		sliceStage:         s.Stage,
		slicePlayer:        s.Player,
		sliceBoost:         s.Boost,
		sliceWager:         s.Wager,
		sliceFinalResolved: s.FinalResolved,
		sliceAnswered:      s.Outcomes,
		sliceAnswers:       s.Answers,
	}
	entries := make(map[string][]byte, len(values))
	for sl, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", sl, err)
		}
		entries[h.key(session, sl)] = data
	}
	if err := h.kv.Put(ctx, entries); err != nil {
		return fmt.Errorf("saving session %s: %w", session, err)
	}
	return nil
}

func (h *Host) load(ctx context.Context, session string) (State, error) {
	raw, err := h.kv.Get(ctx, h.key(session, sliceStage))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return State{}, fmt.Errorf("session %s: %w", session, store.ErrNotFound)
		}
		return State{}, fmt.Errorf("loading session %s: %w", session, err)
	}

	s := NewState()
	var stage string
	if h.decode(ctx, session, sliceStage, raw, &stage) {
		s.Stage = restoreStage(stage)
	}

	targets := map[string]any{
		sliceIndex:         &s.Index,
		slicePlayer:        &s.Player,
		sliceBoost:         &s.Boost,
		sliceWager:         &s.Wager,
		sliceFinalResolved: &s.FinalResolved,
		sliceAnswered:      &s.Outcomes,
		sliceAnswers:       &s.Answers,
	}
	for sl, dest := range targets {
		raw, err := h.kv.Get(ctx, h.key(session, sl))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return State{}, fmt.Errorf("loading session %s: %w", session, err)
		}
		h.decode(ctx, session, sl, raw, dest)
	}

	return h.sanitize(s), nil
}

// decode leaves dest untouched if raw is not valid for it.
func (h *Host) decode(ctx context.Context, session, slice string, raw []byte, dest any) bool {
	if err := json.Unmarshal(raw, dest); err != nil {
		h.logger.WarnContext(ctx, "discarding unreadable state slice",
			"session", session,
			"slice", slice,
			"error", err,
		)
		return false
	}
	return true
}

func restoreStage(stage string) Stage {
	if stage == legacyFinale {
		return StageCategory
	}
	if st := Stage(stage); st.Valid() {
		return st
	}
	return StageName
}

// sanitize forces restored values back into their legal ranges.
func (h *Host) sanitize(s State) State {
	n := len(h.machine.Questions())
	s.Index = min(max(s.Index, 0), max(n-1, 0))
	s.Wager = quiz.ClampWager(s.Wager)
	if s.Outcomes == nil {
		s.Outcomes = map[int]quiz.Outcome{}
	}
	for i, o := range s.Outcomes {
		if !o.Valid() || o == quiz.OutcomeUnset {
			delete(s.Outcomes, i)
		}
	}
	if s.Answers == nil {
		s.Answers = map[int]quiz.Answer{}
	}
	if n == 0 && inQuestion(s.Stage) {
		s.Stage = StageResults
	}
	return s
}
