package events

// Event type names dispatched by the application.
const (
	TypeCollectionChanged = "collection:changed"
	TypeCollectionCleared = "collection:cleared"
	TypeSyncStatus        = "sync:status"
	TypeCatalogReloaded   = "catalog:reloaded"
	TypeDeckUpdated       = "deck:updated"
)

// CollectionChangedEvent is the payload for collection:changed events.
// Sent after every ledger mutation.
type CollectionChangedEvent struct {
	FullName    string `json:"fullName"`    // Identity of the adjusted card
	Variant     string `json:"variant"`     // Variant counter that changed
	Delta       int    `json:"delta"`       // Requested delta
	TotalCards  int    `json:"totalCards"`  // Ledger total after the change
	UniqueCards int    `json:"uniqueCards"` // Distinct entries after the change
}

// SyncStatusEvent is the payload for sync:status events. Sent when the
// remote mirror status changes.
type SyncStatusEvent struct {
	Status string `json:"status"`          // idle | loading | error | offline
	Error  string `json:"error,omitempty"` // Last sync error, when status is error
}

// CatalogReloadedEvent is the payload for catalog:reloaded events.
// Sent after the dataset watcher replaces the catalog.
type CatalogReloadedEvent struct {
	Prints int `json:"prints"` // Number of prints in the new catalog
	Cards  int `json:"cards"`  // Number of consolidated cards
}

// DeckUpdatedEvent is the payload for deck:updated events.
type DeckUpdatedEvent struct {
	DeckID string `json:"deckId"`
	Name   string `json:"name"`
}
