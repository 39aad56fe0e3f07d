// Package audit records who changed what. Entries are append-only; the store
// offers no path to mutate or delete them.
package audit

import (
	"encoding/json"
	"log/slog"

	"bizsuite/internal/store"
)

type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Record appends one audit entry. Before and after snapshots are serialized
// to opaque JSON strings; nil snapshots are omitted.
func (s *Service) Record(userID, action, table, recordID string, before, after any) error {
	entry := store.AuditLog{
		UserID:   userID,
		Action:   action,
		Table:    table,
		RecordID: recordID,
	}
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return err
		}
		entry.OldValues = string(payload)
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return err
		}
		entry.NewValues = string(payload)
	}
	_, err := s.store.AppendAudit(entry)
	return err
}

// TryRecord is Record with best-effort semantics: a failed audit write is
// logged, never propagated, so the mutation that triggered it still
// succeeds.
func (s *Service) TryRecord(userID, action, table, recordID string, before, after any) {
	if err := s.Record(userID, action, table, recordID, before, after); err != nil {
		slog.Warn("audit record failed",
			"action", action, "table", table, "recordId", recordID, "err", err)
	}
}

// List returns matching entries newest first, with the total match count for
// pagination.
func (s *Service) List(filter store.AuditFilter, offset, limit int) ([]store.AuditLog, int) {
	return s.store.ListAudit(filter, offset, limit), s.store.CountAudit(filter)
}
