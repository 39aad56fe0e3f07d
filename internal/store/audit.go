package store

import "sort"

// The audit collection is append-only: there is no Collection accessor for
// it, so no update or delete path exists anywhere in the store.

// AppendAudit stamps and appends an audit entry, then flushes. Entries are
// never filtered, compacted, or deleted by the store itself.
func (s *Store) AppendAudit(entry AuditLog) (AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return AuditLog{}, ErrClosed
	}

	now := s.now()
	entry.ID = newID(now)
	entry.CreatedAt = now
	entry.UpdatedAt = now

	s.doc.AuditLogs = append(s.doc.AuditLogs, entry)
	if err := s.flushLocked("audit"); err != nil {
		s.doc.AuditLogs = s.doc.AuditLogs[:len(s.doc.AuditLogs)-1]
		return AuditLog{}, err
	}
	return entry, nil
}

// AuditFilter narrows ListAudit results. Zero fields impose no constraint.
type AuditFilter struct {
	UserID   string
	Action   string
	Table    string
	RecordID string
}

func (f AuditFilter) matches(entry AuditLog) bool {
	if f.UserID != "" && entry.UserID != f.UserID {
		return false
	}
	if f.Action != "" && entry.Action != f.Action {
		return false
	}
	if f.Table != "" && entry.Table != f.Table {
		return false
	}
	if f.RecordID != "" && entry.RecordID != f.RecordID {
		return false
	}
	return true
}

// ListAudit returns matching audit entries, newest first.
func (s *Store) ListAudit(filter AuditFilter, offset, limit int) []AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []AuditLog
	for _, entry := range s.doc.AuditLogs {
		if filter.matches(entry) {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, offset, limit)
}

// CountAudit returns the number of entries matching the filter.
func (s *Store) CountAudit(filter AuditFilter) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, entry := range s.doc.AuditLogs {
		if filter.matches(entry) {
			total++
		}
	}
	return total
}
