package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/inkwellhq/lorcana-companion/internal/api/response"
	"github.com/inkwellhq/lorcana-companion/internal/collection"
	"github.com/inkwellhq/lorcana-companion/internal/importer"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
)

// CollectionHandler serves ledger queries and mutations.
type CollectionHandler struct {
	ledger  *collection.Ledger
	catalog *catalog.Service
}

// NewCollectionHandler creates a collection handler.
func NewCollectionHandler(ledger *collection.Ledger, catalog *catalog.Service) *CollectionHandler {
	return &CollectionHandler{ledger: ledger, catalog: catalog}
}

// GetCollection returns every ledger entry.
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.ledger.Entries())
}

// CollectionStats is the summary shape of the collection endpoint.
type CollectionStats struct {
	TotalCards  int    `json:"total_cards"`
	UniqueCards int    `json:"unique_cards"`
	SyncStatus  string `json:"sync_status"`
	SyncError   string `json:"sync_error,omitempty"`
}

// GetStats returns collection totals and the sync status.
func (h *CollectionHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	status, syncErr := h.ledger.Status()
	stats := CollectionStats{
		TotalCards:  h.ledger.TotalCards(),
		UniqueCards: h.ledger.UniqueCards(),
		SyncStatus:  string(status),
	}
	if syncErr != nil {
		stats.SyncError = syncErr.Error()
	}
	response.Success(w, stats)
}

// AdjustRequest mutates one variant counter of one card.
type AdjustRequest struct {
	CardName string `json:"card_name"`
	Variant  string `json:"variant"`
	Delta    int    `json:"delta"`

	// Retain keeps the card visible through ownership filters after the
	// mutation, until the next refresh.
	Retain bool `json:"retain,omitempty"`
}

// AdjustResponse reports the resulting quantities.
type AdjustResponse struct {
	CardName   string                `json:"card_name"`
	Quantities collection.Quantities `json:"quantities"`
	TotalCards int                   `json:"total_cards"`
}

// Adjust applies a quantity delta to one card of the collection.
func (h *CollectionHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, fmt.Errorf("invalid adjust request: %w", err))
		return
	}
	if req.CardName == "" {
		response.BadRequest(w, fmt.Errorf("card_name is required"))
		return
	}
	if _, ok := h.catalog.ByFullName(req.CardName); !ok {
		response.NotFound(w, fmt.Errorf("card %q not found", req.CardName))
		return
	}

	q, err := h.ledger.Adjust(req.CardName, collection.Variant(req.Variant), req.Delta)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	if req.Retain {
		h.ledger.Retain(req.CardName)
	}

	response.Success(w, AdjustResponse{
		CardName:   req.CardName,
		Quantities: q,
		TotalCards: h.ledger.TotalCards(),
	})
}

// Refresh clears the retained-card set so ownership filters apply strictly
// again.
func (h *CollectionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.ledger.ClearRetained()
	response.NoContent(w)
}

// Export streams the collection snapshot as JSON.
func (h *CollectionHandler) Export(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="collection.json"`)
	if err := h.ledger.Export(w); err != nil {
		response.InternalError(w, err)
	}
}

// ImportJSON replaces the collection with an uploaded snapshot.
func (h *CollectionHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	n, err := h.ledger.Import(r.Body)
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, map[string]int{"entries": n})
}

// ImportCSVResponse reports the outcome of a delimited import.
type ImportCSVResponse struct {
	Imported int      `json:"imported"`
	Rows     int      `json:"rows"`
	Skipped  []string `json:"skipped,omitempty"`
}

// ImportCSV parses a delimited collection export and merges its rows into
// the ledger. Enchanted and Special rows count toward those variant
// counters; everything else lands on regular and foil.
func (h *CollectionHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := importer.Import(r.Body, h.catalog)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	for _, card := range result.Cards {
		switch {
		case card.Enchanted:
			h.ledger.Adjust(card.FullName, collection.VariantEnchanted, card.Normal+card.Foil)
		case card.Special:
			h.ledger.Adjust(card.FullName, collection.VariantSpecial, card.Normal+card.Foil)
		default:
			if card.Normal > 0 {
				h.ledger.Adjust(card.FullName, collection.VariantRegular, card.Normal)
			}
			if card.Foil > 0 {
				h.ledger.Adjust(card.FullName, collection.VariantFoil, card.Foil)
			}
		}
	}

	response.Success(w, ImportCSVResponse{
		Imported: len(result.Cards),
		Rows:     result.Rows,
		Skipped:  result.Skipped,
	})
}

// Clear empties the collection locally and remotely.
func (h *CollectionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.ledger.Clear()
	response.NoContent(w)
}
