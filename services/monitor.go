package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sedama0217-sketch/PMserch/models"
	"github.com/sedama0217-sketch/PMserch/utils"
)

// Extractor produces the raw item records for one check of the target page.
type Extractor interface {
	Extract(ctx context.Context) ([]models.RawItem, error)
}

// Notifier delivers one decided notification to the external channel.
type Notifier interface {
	Send(ctx context.Context, d models.Decision, detectedAt time.Time) error
}

// StateStore is the durable mapping from item identity to last-known state.
type StateStore interface {
	Load() (models.Snapshot, error)
	Save(models.Snapshot) error
}

// Monitor runs one complete check: extract, classify, diff against the
// previous snapshot, persist the new snapshot, then dispatch notifications.
type Monitor struct {
	extractor  Extractor
	store      StateStore
	notifier   Notifier
	classifier *Classifier
	engine     *TransitionEngine
	logger     *utils.Logger

	notifyInterval time.Duration
	now            func() time.Time
}

// NewMonitor wires a Monitor from its collaborators. A notifyInterval <= 0
// disables the pause between deliveries.
func NewMonitor(extractor Extractor, store StateStore, notifier Notifier, classifier *Classifier, engine *TransitionEngine, notifyInterval time.Duration, logger *utils.Logger) *Monitor {
	return &Monitor{
		extractor:      extractor,
		store:          store,
		notifier:       notifier,
		classifier:     classifier,
		engine:         engine,
		logger:         logger,
		notifyInterval: notifyInterval,
		now:            time.Now,
	}
}

// Run executes a single monitoring pass. A fetch or persistence failure
// aborts the run with the previous snapshot left authoritative; individual
// delivery failures are logged and do not stop remaining deliveries.
func (m *Monitor) Run(ctx context.Context) (*models.RunReport, error) {
	prev, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	items, err := m.extractor.Extract(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	m.logger.Info("[monitor] Extracted %d items", len(items))

	now := m.now().UTC()
	next := models.NewSnapshot()
	next.LastChecked = now

	report := &models.RunReport{TotalItems: len(items)}
	var decisions []models.Decision

	for _, item := range items {
		id := item.Identity()
		inStock := m.classifier.Classify(item.StockText)

		var prior *models.ItemState
		if p, ok := prev.Items[id]; ok {
			prior = &p
		} else {
			report.NewItems++
		}

		state, decision := m.engine.Decide(item, inStock, prior, now)
		next.Items[id] = state

		if inStock {
			report.InStock++
		} else {
			report.SoldOut++
		}
		if decision != nil {
			if decision.Reason == ReasonRestock {
				report.Restocked++
			}
			decisions = append(decisions, *decision)
		}
	}

	// The snapshot is persisted before any delivery is attempted so that a
	// notification failure can never desynchronise recorded state.
	if err := m.store.Save(next); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	m.logger.Info("[monitor] Snapshot saved (%d items)", len(next.Items))

	for i, d := range decisions {
		if i > 0 && m.notifyInterval > 0 {
			time.Sleep(m.notifyInterval)
		}
		if err := m.notifier.Send(ctx, d, now); err != nil {
			m.logger.Error("[monitor] Notification failed for %q: %v", d.Item.Name, err)
			continue
		}
		report.Notifications++
		m.logger.Info("[monitor] Sent notification for %q (%s)", d.Item.Name, d.Reason)
	}

	return report, nil
}
