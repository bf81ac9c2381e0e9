package models

import "time"

// RawItem holds unprocessed data for one product block as extracted from the
// listing page, before classification. Every field except the name-or-URL
// pair may be empty.
type RawItem struct {
	Name      string
	URL       string
	Image     string
	StockText string
}

// Identity returns the key used to correlate this item across runs: the
// canonical link when present, otherwise the display name. Items with
// neither never reach the core (dropped during extraction).
func (r RawItem) Identity() string {
	if r.URL != "" {
		return r.URL
	}
	return r.Name
}

// ItemState is the persisted last-known record for one item identity.
// It is fully overwritten every run the identity reappears.
type ItemState struct {
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	Image     string    `json:"image,omitempty"`
	StockText string    `json:"stock_text,omitempty"`
	InStock   bool      `json:"in_stock"`
	LastSeen  time.Time `json:"last_seen"`
}

// Snapshot is the full persisted state as of the end of one run. Identities
// absent from the current extraction simply do not appear in the next
// snapshot; no history beyond the previous run is kept.
type Snapshot struct {
	Items       map[string]ItemState `json:"items"`
	LastChecked time.Time            `json:"last_checked"`
}

// NewSnapshot returns an empty snapshot ready to accumulate item states.
func NewSnapshot() Snapshot {
	return Snapshot{Items: make(map[string]ItemState)}
}

// Decision is a notification the transition engine decided to fire. It has
// no identity beyond the run that created it.
type Decision struct {
	Item   RawItem
	Reason string
}

// RunReport holds the aggregate outcome of a single monitoring run.
type RunReport struct {
	TotalItems    int
	InStock       int
	SoldOut       int
	NewItems      int
	Restocked     int
	Notifications int
}
