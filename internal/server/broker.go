package server

import (
	"encoding/json"
	"sync"

	"github.com/onlyfootballfans/quiz/internal/game"
)

// GameEvent is published to session subscribers after every applied intent.
type GameEvent struct {
	Type   string          `json:"type"`
	Intent game.IntentKind `json:"intent,omitempty"`
	Stage  game.Stage      `json:"stage"`
	Index  int             `json:"index"`
	Score  int             `json:"score"`
	Streak int             `json:"streak"`
}

func stateEvent(in game.IntentKind, s game.State) GameEvent {
	return GameEvent{
		Type:   "state",
		Intent: in,
		Stage:  s.Stage,
		Index:  s.Index,
		Score:  s.Player.Score,
		Streak: s.Player.Streak,
	}
}

// Broker is an in-process pub/sub for SSE events, keyed by game session.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for session.
func (b *Broker) Subscribe(session string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[session] == nil {
		b.subs[session] = make(map[chan []byte]struct{})
	}
	b.subs[session][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(session string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[session], ch)
	if len(b.subs[session]) == 0 {
		delete(b.subs, session)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of session.
func (b *Broker) Publish(session string, event GameEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[session] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}
