package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/onlyfootballfans/quiz/internal/catalog"
)

// SuggestItem is one autocomplete entry.
type SuggestItem struct {
	ID    string `json:"id"`
	Key   string `json:"key,omitempty"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

// SuggestResponse echoes the client's sequence number so stale replies can
// be told apart.
type SuggestResponse struct {
	Seq   uint64        `json:"seq"`
	Items []SuggestItem `json:"items"`
}

// SuggestRequest is one WebSocket query message.
type SuggestRequest struct {
	Seq uint64 `json:"seq"`
	Q   string `json:"q"`
}

func suggestItems(items []catalog.Item, query string) []SuggestItem {
	out := make([]SuggestItem, len(items))
	for i, it := range items {
		out[i] = SuggestItem{ID: it.ID, Key: it.Key, Name: it.Name, Label: it.Label(query)}
	}
	return out
}

func handleSuggest(catalogs *catalog.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		q := r.URL.Query().Get("q")

		var seq uint64
		if raw := r.URL.Query().Get("seq"); raw != "" {
			n, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "seq must be a non-negative integer")
				return
			}
			seq = n
		}

		items := catalogs.Suggest(r.Context(), name, q)
		writeJSON(w, http.StatusOK, SuggestResponse{Seq: seq, Items: suggestItems(items, q)})
	}
}

// handleSuggestWS serves one input box per connection. Each query message
// starts a lookup; only the newest query's result is ever written back.
func handleSuggestWS(logger *slog.Logger, catalogs *catalog.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Minute)
		defer cancel()

		var (
			mu   sync.Mutex
			seqs = map[uint64]uint64{}
		)
		latest := make(chan catalog.Result, 1)
		live := catalog.NewLive(
			func(ctx context.Context, raw string) []catalog.Item {
				return catalogs.Suggest(ctx, name, raw)
			},
			func(res catalog.Result) {
				// Only the newest applied result matters to the writer.
				select {
				case <-latest:
				default:
				}
				latest <- res
			},
		)

		go func() {
			defer cancel()
			for {
				var req SuggestRequest
				if err := wsjson.Read(ctx, conn, &req); err != nil {
					logger.Debug("websocket read ended", "error", err)
					return
				}
				mu.Lock()
				epoch := live.Query(ctx, req.Q)
				seqs[epoch] = req.Seq
				mu.Unlock()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				conn.Close(websocket.StatusNormalClosure, "")
				return
			case res := <-latest:
				mu.Lock()
				seq := seqs[res.Epoch]
				for e := range seqs {
					if e <= res.Epoch {
						delete(seqs, e)
					}
				}
				mu.Unlock()

				resp := SuggestResponse{Seq: seq, Items: suggestItems(res.Items, res.Query)}
				if err := wsjson.Write(ctx, conn, resp); err != nil {
					logger.Debug("websocket write failed", "error", err)
					return
				}
			}
		}
	}
}
