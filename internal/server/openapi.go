package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/onlyfootballfans/quiz/internal/quiz"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse maps each checked dependency to its status.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type gamePath struct {
	ID string `path:"id"`
}

type intentInput struct {
	gamePath
	OperatorKey string `header:"X-Operator-Key"`
	IntentRequest
}

type suggestInput struct {
	Name string `path:"name"`
	Q    string `query:"q"`
	Seq  uint64 `query:"seq"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Football Quiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Answer validation and scoring engine for the single-player football quiz.")

	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the status of the state store.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	getIntro, _ := r.NewOperationContext(http.MethodGet, "/api/intro")
	getIntro.SetSummary("Intro summary")
	getIntro.SetDescription("Categories with question counts and point values, plus the final topic and wager range.")
	getIntro.AddRespStructure(quiz.Summary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getIntro)

	postGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGame.SetSummary("Start a session")
	postGame.SetDescription("Creates a game waiting for the player's name.")
	postGame.AddRespStructure(GameView{}, openapi.WithHTTPStatus(http.StatusCreated))
	_ = r.AddOperation(postGame)

	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{id}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the stage, player, current question and, on the answer stage, the reveal.")
	getGame.AddReqStructure(gamePath{})
	getGame.AddRespStructure(GameView{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	postIntent, _ := r.NewOperationContext(http.MethodPost, "/api/games/{id}/intents")
	postIntent.SetSummary("Apply intent")
	postIntent.SetDescription("Applies one intent. mark-manual and resolve-final need X-Operator-Key when an operator password is configured.")
	postIntent.AddReqStructure(intentInput{})
	postIntent.AddRespStructure(GameView{}, openapi.WithHTTPStatus(http.StatusOK))
	postIntent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postIntent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postIntent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postIntent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postIntent)

	getResults, _ := r.NewOperationContext(http.MethodGet, "/api/games/{id}/results")
	getResults.SetSummary("Results table")
	getResults.SetDescription("Replays the recorded history into per-question rows with running totals.")
	getResults.AddReqStructure(gamePath{})
	getResults.AddRespStructure(ResultsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getResults.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getResults)

	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{id}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of state changes for one game.")
	getEvents.AddReqStructure(gamePath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	getSuggest, _ := r.NewOperationContext(http.MethodGet, "/api/catalogs/{name}/suggest")
	getSuggest.SetSummary("Autocomplete")
	getSuggest.SetDescription("Ranked catalog suggestions for q. seq is echoed back.")
	getSuggest.AddReqStructure(suggestInput{})
	getSuggest.AddRespStructure(SuggestResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSuggest.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(getSuggest)

	getSuggestWS, _ := r.NewOperationContext(http.MethodGet, "/ws/catalogs/{name}")
	getSuggestWS.SetSummary("Live autocomplete")
	getSuggestWS.SetDescription(`Upgrades to a WebSocket. Send {"seq":N,"q":"..."}; replies {"seq":N,"items":[...]} arrive only for the newest query.`)
	getSuggestWS.AddReqStructure(struct {
		Name string `path:"name"`
	}{})
	getSuggestWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getSuggestWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
