package repo

import (
	"context"

	"lockbox/internal/platform/logger"
	"lockbox/internal/platform/store"

	"lockbox/internal/services/locks/domain"
)

// eventsTable is the columnar feed completed lock actions land in
const eventsTable = "lockbox.registry_lock_events"

// NewCH returns a best-effort analytics sink over ClickHouse.
// A nil seam yields a sink that drops everything, so callers never
// have to branch on whether analytics is enabled
func NewCH(ch store.Clickhouse) domain.EventSink {
	return &chSink{ch: ch}
}

type chSink struct {
	ch store.Clickhouse
}

var _ domain.EventSink = (*chSink)(nil)

// Publish writes one event row; failures are logged and swallowed
// because analytics must never interfere with the workflow itself
func (s *chSink) Publish(ctx context.Context, e domain.Event) {
	if s == nil || s.ch == nil {
		return
	}
	rows := [][]any{{
		e.Action,
		e.RepoID,
		e.DomainName,
		e.RegistrarID,
		e.IsSuperuser,
		e.OccurredAt.UTC(),
	}}
	if err := s.ch.Insert(ctx, eventsTable, rows); err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("domain", e.DomainName).
			Str("action", e.Action).
			Msg("registry lock event publish failed")
	}
}
