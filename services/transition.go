package services

import (
	"time"

	"github.com/sedama0217-sketch/PMserch/models"
)

// Notification reasons. The restock transition is the primary signal the
// monitor exists to detect.
const (
	ReasonRestock    = "売り切れ → 入荷 (restock)"
	ReasonNewInStock = "新着入荷 (new & in stock)"
	ReasonNew        = "新着 (new item)"
)

// TransitionEngine combines the current verdict for an item with its prior
// recorded state and decides whether a notification is warranted.
type TransitionEngine struct {
	notifyNewInStock bool
	notifyNew        bool
}

// NewTransitionEngine builds an engine with the given notification policy.
func NewTransitionEngine(notifyNewInStock, notifyNew bool) *TransitionEngine {
	return &TransitionEngine{
		notifyNewInStock: notifyNewInStock,
		notifyNew:        notifyNew,
	}
}

// Decide computes the new state record for an item and, at most, one
// notification decision. The record is always returned whether or not a
// decision fired; state tracking is unconditional. An item that stays in
// stock across runs never re-notifies.
func (e *TransitionEngine) Decide(item models.RawItem, inStock bool, prior *models.ItemState, now time.Time) (models.ItemState, *models.Decision) {
	state := models.ItemState{
		Name:      item.Name,
		URL:       item.URL,
		Image:     item.Image,
		StockText: item.StockText,
		InStock:   inStock,
		LastSeen:  now,
	}

	var reason string
	switch {
	case prior != nil:
		if !prior.InStock && inStock {
			reason = ReasonRestock
		}
	case inStock && e.notifyNewInStock:
		reason = ReasonNewInStock
	case e.notifyNew:
		reason = ReasonNew
	}

	if reason == "" {
		return state, nil
	}
	return state, &models.Decision{Item: item, Reason: reason}
}
