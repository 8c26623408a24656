package handlers

import (
	"net/http"

	"github.com/inkwellhq/lorcana-companion/internal/api/response"
	"github.com/inkwellhq/lorcana-companion/internal/collection"
	"github.com/inkwellhq/lorcana-companion/internal/lorcana/catalog"
	"github.com/inkwellhq/lorcana-companion/internal/session"
	"github.com/inkwellhq/lorcana-companion/internal/version"
)

// SystemHandler serves status and version endpoints.
type SystemHandler struct {
	ledger   *collection.Ledger
	catalog  *catalog.Service
	sessions session.Provider
}

// NewSystemHandler creates a system handler.
func NewSystemHandler(ledger *collection.Ledger, catalog *catalog.Service, sessions session.Provider) *SystemHandler {
	return &SystemHandler{ledger: ledger, catalog: catalog, sessions: sessions}
}

// SystemStatus is the status endpoint shape.
type SystemStatus struct {
	Version      string        `json:"version"`
	SyncStatus   string        `json:"sync_status"`
	SyncError    string        `json:"sync_error,omitempty"`
	SignedIn     bool          `json:"signed_in"`
	User         *session.User `json:"user,omitempty"`
	CatalogCards int           `json:"catalog_cards"`
	CatalogSets  int           `json:"catalog_sets"`
}

// GetStatus returns the companion's runtime status.
func (h *SystemHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, syncErr := h.ledger.Status()
	s := SystemStatus{
		Version:      version.GetVersion(),
		SyncStatus:   string(status),
		SignedIn:     h.sessions.Valid(),
		User:         h.sessions.CurrentUser(),
		CatalogCards: len(h.catalog.All()),
		CatalogSets:  len(h.catalog.Sets()),
	}
	if syncErr != nil {
		s.SyncError = syncErr.Error()
	}
	response.Success(w, s)
}

// GetVersion returns the application version.
func (h *SystemHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{"version": version.GetVersion()})
}
