package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/lorcana-companion/internal/api/handlers"
	"github.com/inkwellhq/lorcana-companion/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	// WebSocket endpoint
	s.router.Get("/ws", s.wsHub.ServeWs)

	s.router.Route("/api/v1", func(r chi.Router) {
		cardsHandler := handlers.NewCardsHandler(s.deps.Catalog, s.deps.Ledger)
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardsHandler.ListCards)
			r.Post("/search", cardsHandler.SearchCards) // POST for structured filters
			r.Get("/sets", cardsHandler.GetSets)
			r.Get("/name/{name}", cardsHandler.GetCardByName)
		})

		collectionHandler := handlers.NewCollectionHandler(s.deps.Ledger, s.deps.Catalog)
		r.Route("/collection", func(r chi.Router) {
			r.Get("/", collectionHandler.GetCollection)
			r.Get("/stats", collectionHandler.GetStats)
			r.Post("/adjust", collectionHandler.Adjust)
			r.Post("/refresh", collectionHandler.Refresh)
			r.Get("/export", collectionHandler.Export)
			r.Post("/import", collectionHandler.ImportJSON)
			r.Post("/import/csv", collectionHandler.ImportCSV)
			r.Post("/clear", collectionHandler.Clear)
		})

		decksHandler := handlers.NewDecksHandler(s.deps.Decks, s.deps.Catalog, s.deps.Sessions, s.deps.Dispatcher)
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", decksHandler.ListDecks)
			r.Post("/", decksHandler.CreateDeck)
			r.Post("/import", decksHandler.ImportDeck)
			r.Route("/{deckID}", func(r chi.Router) {
				r.Get("/", decksHandler.GetDeck)
				r.Put("/", decksHandler.UpdateDeck)
				r.Delete("/", decksHandler.DeleteDeck)
				r.Post("/cards", decksHandler.AddCard)
				r.Delete("/cards", decksHandler.RemoveCard)
				r.Get("/validate", decksHandler.ValidateDeck)
				r.Get("/summary", decksHandler.GetSummary)
				r.Get("/export", decksHandler.ExportDeck)
				r.Get("/charts/curve", decksHandler.GetCostCurveChart)
				r.Get("/charts/colors", decksHandler.GetColorChart)
			})
		})

		systemHandler := handlers.NewSystemHandler(s.deps.Ledger, s.deps.Catalog, s.deps.Sessions)
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandler.GetStatus)
			r.Get("/version", systemHandler.GetVersion)
		})
	})
}

// healthCheck reports liveness.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
