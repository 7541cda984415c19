package server

import (
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/onlyfootballfans/quiz/internal/handler/health"
)

func addRoutes(r chi.Router, deps Deps) {
	broker := NewBroker()
	logger := deps.Logger

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Football Quiz API", "/openapi.json", "/docs"))
	r.Mount("/healthz", health.NewHandler(logger, deps.Checks).Routes())

	r.Route("/api", func(r chi.Router) {
		r.Get("/intro", handleIntro(deps.Host))

		r.Post("/games", handleCreateGame(logger, deps.Host))
		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", handleGetGame(logger, deps.Host))
			r.With(operatorGuard(deps.OperatorHash)).Post("/intents", handleIntent(logger, deps.Host, broker))
			r.Get("/results", handleResults(logger, deps.Host))
			r.Get("/events", handleEvents(logger, deps.Host, broker))
		})

		r.Get("/catalogs/{name}/suggest", handleSuggest(deps.Catalogs))
	})

	r.Get("/ws/catalogs/{name}", handleSuggestWS(logger, deps.Catalogs))

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
