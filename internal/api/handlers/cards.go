// Package handlers implements the REST endpoints.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellhq/lorcana-companion/internal/api/response"
	"github.com/inkwellhq/lorcana-companion/internal/collection"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/filter"
)

// CardsHandler serves catalog queries.
type CardsHandler struct {
	catalog *catalog.Service
	ledger  *collection.Ledger
}

// NewCardsHandler creates a cards handler.
func NewCardsHandler(catalog *catalog.Service, ledger *collection.Ledger) *CardsHandler {
	return &CardsHandler{catalog: catalog, ledger: ledger}
}

// SearchRequest is the body of a card search: a filter spec plus optional
// sort and grouping.
type SearchRequest struct {
	Filter     *filter.Spec     `json:"filter,omitempty"`
	SortBy     filter.SortField `json:"sortBy,omitempty"`
	Descending bool             `json:"descending,omitempty"`
	GroupBy    filter.GroupKey  `json:"groupBy,omitempty"`
}

// ListCards returns every consolidated card.
func (h *CardsHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.catalog.All())
}

// SearchCards filters, sorts, and optionally groups the catalog. POST
// because the filter spec is structured.
func (h *CardsHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid search request: %w", err))
		return
	}

	if req.Filter != nil {
		req.Filter.Retained = h.ledger.Retained()
	}
	result := filter.Filter(h.catalog.All(), req.Filter, h.ledger.TotalOwned)
	if req.SortBy != "" {
		result = filter.Sort(result, req.SortBy, req.Descending)
	}

	if req.GroupBy != "" {
		response.Success(w, filter.Group(result, req.GroupBy))
		return
	}
	response.Success(w, result)
}

// GetCardByName returns one consolidated card by its URL-escaped full name.
func (h *CardsHandler) GetCardByName(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		response.BadRequest(w, fmt.Errorf("invalid card name: %w", err))
		return
	}

	card, ok := h.catalog.ByFullName(name)
	if !ok {
		response.NotFound(w, fmt.Errorf("card %q not found", name))
		return
	}
	response.Success(w, card)
}

// GetSets returns the known sets in catalog order.
func (h *CardsHandler) GetSets(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.catalog.Sets())
}
