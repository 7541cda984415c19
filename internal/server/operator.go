package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/onlyfootballfans/quiz/internal/game"
)

const operatorHeader = "X-Operator-Key"

// operatorGuard requires the operator key for intents that decide an outcome
// by hand. An empty hash leaves the guard open.
func operatorGuard(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			r.Body.Close()
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			var in struct {
				Kind game.IntentKind `json:"kind"`
			}
			if json.Unmarshal(body, &in) != nil || !in.Kind.Operator() {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(operatorHeader)
			if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
				writeError(w, http.StatusForbidden, "operator key required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
