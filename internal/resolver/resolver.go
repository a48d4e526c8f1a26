// Package resolver aggregates extracted mandate events across a scan batch:
// it deduplicates by merchant, applies revocations and keeps the most
// recent event per subscription.
package resolver

import (
	"sort"

	"upisubs/mandate-scan/internal/logging"
	"upisubs/mandate-scan/internal/models"
)

// Resolver collapses a batch of mandate events to current state.
type Resolver struct {
	logger logging.Logger
}

// New creates a Resolver. A nil logger gets the package default.
func New(logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Resolver{logger: logger}
}

type entry struct {
	event     models.MandateEvent
	tombstone bool
}

// Resolve walks the events most-recent-first and keeps one surviving event
// per merchant key. A revocation tombstones its key: it emits nothing but
// permanently suppresses every older event for that merchant within the
// batch, so a stale debit message cannot resurrect a cancelled mandate.
//
// Equal timestamps are broken by input order (stable sort). That tie-break
// is defined but essentially arbitrary: if the message source does not
// enumerate deterministically, resolution of same-timestamp events inherits
// that nondeterminism.
//
// Resolve is pure: the same input always yields the same set, and the
// input slice is not modified.
func (r *Resolver) Resolve(events []models.MandateEvent) models.ResolvedMandateSet {
	sorted := make([]models.MandateEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OccurredAt.After(sorted[j].OccurredAt)
	})

	state := make(map[string]entry, len(sorted))
	for _, ev := range sorted {
		key := ev.MerchantKey()
		if key == "" {
			continue
		}
		if _, seen := state[key]; seen {
			// Older event for a merchant we already settled; most recent wins.
			r.logger.WithFields(
				logging.Field{Key: "merchant", Value: ev.MerchantName},
				logging.Field{Key: "event_type", Value: ev.EventType},
			).Debug("Discarding superseded mandate event")
			continue
		}
		if ev.IsRevocation() {
			state[key] = entry{tombstone: true}
			r.logger.WithField("merchant", ev.MerchantName).Debug("Mandate revoked, suppressing older events")
			continue
		}
		state[key] = entry{event: ev}
	}

	mandates := make(map[string]models.MandateEvent, len(state))
	for key, e := range state {
		if !e.tombstone {
			mandates[key] = e.event
		}
	}

	return models.ResolvedMandateSet{
		Mandates:  mandates,
		Succeeded: true,
	}
}
