package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/lorcana-companion/internal/api/response"
	"github.com/inkwellhq/lorcana-companion/internal/charts"
	"github.com/inkwellhq/lorcana-companion/internal/deck"
	"github.com/inkwellhq/lorcana-companion/internal/events"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/cards"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
	"github.com/inkwellhq/lorcana-companion/internal/session"
	"github.com/inkwellhq/lorcana-companion/internal/storage/repository"
)

// DecksHandler serves deck CRUD, validation, and rendering.
type DecksHandler struct {
	repo       repository.DeckRepository
	catalog    *catalog.Service
	sessions   session.Provider
	dispatcher *events.Dispatcher
}

// NewDecksHandler creates a decks handler. The dispatcher may be nil.
func NewDecksHandler(repo repository.DeckRepository, catalog *catalog.Service, sessions session.Provider, dispatcher *events.Dispatcher) *DecksHandler {
	return &DecksHandler{repo: repo, catalog: catalog, sessions: sessions, dispatcher: dispatcher}
}

// notifyUpdated announces a saved deck to observers.
func (h *DecksHandler) notifyUpdated(d *deck.Deck) {
	if h.dispatcher == nil {
		return
	}
	h.dispatcher.Dispatch(events.Event{
		Type: events.TypeDeckUpdated,
		Data: events.DeckUpdatedEvent{DeckID: d.ID, Name: d.Name},
	})
}

func (h *DecksHandler) userID(w http.ResponseWriter) (string, bool) {
	user := h.sessions.CurrentUser()
	if user == nil {
		response.Error(w, http.StatusUnauthorized, fmt.Errorf("no signed-in user"))
		return "", false
	}
	return user.ID, true
}

// toDeck resolves a stored record against the catalog. Cards that left the
// catalog keep their name and count on a bare print so the deck still
// loads.
func (h *DecksHandler) toDeck(record *repository.DeckRecord) *deck.Deck {
	d := &deck.Deck{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	for _, c := range record.Cards {
		print := &cards.CardPrint{Name: c.CardName, FullName: c.CardName}
		if cc, ok := h.catalog.ByFullName(c.CardName); ok {
			print = cc.BaseCard
		}
		d.Cards = append(d.Cards, deck.Card{Print: print, Count: c.Count})
	}
	return d
}

func (h *DecksHandler) loadDeck(w http.ResponseWriter, r *http.Request) (*deck.Deck, string, bool) {
	userID, ok := h.userID(w)
	if !ok {
		return nil, "", false
	}
	deckID := chi.URLParam(r, "deckID")
	record, err := h.repo.Get(r.Context(), userID, deckID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, fmt.Errorf("deck %q not found", deckID))
		} else {
			response.InternalError(w, err)
		}
		return nil, "", false
	}
	return h.toDeck(record), userID, true
}

// ListDecks returns all decks of the current user.
func (h *DecksHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w)
	if !ok {
		return
	}
	records, err := h.repo.List(r.Context(), userID)
	if err != nil {
		response.InternalError(w, err)
		return
	}
	decks := make([]*deck.Deck, 0, len(records))
	for _, record := range records {
		decks = append(decks, h.toDeck(record))
	}
	response.Success(w, decks)
}

// CreateDeckRequest creates an empty named deck.
type CreateDeckRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateDeck creates an empty deck.
func (h *DecksHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w)
	if !ok {
		return
	}
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid deck request: %w", err))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, fmt.Errorf("name is required"))
		return
	}

	d := deck.New(req.Name)
	d.Description = req.Description
	if err := h.repo.Save(r.Context(), userID, d); err != nil {
		response.InternalError(w, err)
		return
	}
	h.notifyUpdated(d)
	response.Created(w, d)
}

// GetDeck returns one deck with resolved cards.
func (h *DecksHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	response.Success(w, d)
}

// UpdateDeck renames a deck or changes its description.
func (h *DecksHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	d, userID, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	var req CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid deck request: %w", err))
		return
	}
	if req.Name != "" {
		d.Name = req.Name
	}
	d.Description = req.Description
	if err := h.repo.Save(r.Context(), userID, d); err != nil {
		response.InternalError(w, err)
		return
	}
	h.notifyUpdated(d)
	response.Success(w, d)
}

// DeleteDeck removes a deck.
func (h *DecksHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w)
	if !ok {
		return
	}
	deckID := chi.URLParam(r, "deckID")
	if err := h.repo.Delete(r.Context(), userID, deckID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.NotFound(w, fmt.Errorf("deck %q not found", deckID))
		} else {
			response.InternalError(w, err)
		}
		return
	}
	response.NoContent(w)
}

// DeckCardRequest adds or removes copies of one card.
type DeckCardRequest struct {
	CardName string `json:"card_name"`
	Count    int    `json:"count"`
}

// AddCard adds copies of a card to the deck.
func (h *DecksHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	d, userID, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	var req DeckCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card request: %w", err))
		return
	}
	cc, found := h.catalog.ByFullName(req.CardName)
	if !found {
		response.NotFound(w, fmt.Errorf("card %q not found", req.CardName))
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if err := d.AddCard(cc.BaseCard, req.Count); err != nil {
		response.BadRequest(w, err)
		return
	}
	if err := h.repo.Save(r.Context(), userID, d); err != nil {
		response.InternalError(w, err)
		return
	}
	h.notifyUpdated(d)
	response.Success(w, d)
}

// RemoveCard removes copies of a card from the deck.
func (h *DecksHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	d, userID, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	var req DeckCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card request: %w", err))
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}
	if err := d.RemoveCard(req.CardName, req.Count); err != nil {
		response.BadRequest(w, err)
		return
	}
	if err := h.repo.Save(r.Context(), userID, d); err != nil {
		response.InternalError(w, err)
		return
	}
	h.notifyUpdated(d)
	response.Success(w, d)
}

// ValidateDeck runs the construction rules against a deck.
func (h *DecksHandler) ValidateDeck(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	response.Success(w, deck.Validate(d))
}

// GetSummary returns the deck's computed summary.
func (h *DecksHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	response.Success(w, deck.Summarize(d))
}

// ExportDeck writes the deck in the plain-text list format.
func (h *DecksHandler) ExportDeck(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := deck.Export(w, d); err != nil {
		response.InternalError(w, err)
	}
}

// ImportDeckResponse carries the imported deck and any per-line warnings.
type ImportDeckResponse struct {
	Deck     *deck.Deck `json:"deck"`
	Warnings []string   `json:"warnings,omitempty"`
}

// ImportDeck parses a plain-text deck list, resolves it against the
// catalog, and saves it as a new deck.
func (h *DecksHandler) ImportDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w)
	if !ok {
		return
	}
	resolve := func(fullName string) *cards.CardPrint {
		if cc, found := h.catalog.ByFullName(fullName); found {
			return cc.BaseCard
		}
		return nil
	}
	d, warnings, err := deck.Import(r.Body, resolve)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if err := h.repo.Save(r.Context(), userID, d); err != nil {
		response.InternalError(w, err)
		return
	}
	h.notifyUpdated(d)
	response.Created(w, ImportDeckResponse{Deck: d, Warnings: warnings})
}

// GetCostCurveChart renders the deck's cost curve as an HTML chart.
func (h *DecksHandler) GetCostCurveChart(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	cfg := charts.DefaultChartConfig()
	cfg.Title = fmt.Sprintf("%s: Cost Curve", d.Name)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderCostCurve(w, d, cfg); err != nil {
		response.InternalError(w, err)
	}
}

// GetColorChart renders the deck's ink distribution as an HTML chart.
func (h *DecksHandler) GetColorChart(w http.ResponseWriter, r *http.Request) {
	d, _, ok := h.loadDeck(w, r)
	if !ok {
		return
	}
	cfg := charts.DefaultChartConfig()
	cfg.Title = fmt.Sprintf("%s: Ink Distribution", d.Name)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := charts.RenderColorDistribution(w, d, cfg); err != nil {
		response.InternalError(w, err)
	}
}
