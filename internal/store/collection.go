package store

import (
	"slices"
	"sort"
	"strings"
	"time"
)

// Collection is a typed handle over one named record slice inside the store
// document. All methods take the store mutex, so each call is atomic with
// respect to every other store operation.
type Collection[T any] struct {
	store *Store
	name  string
	items func(*document) *[]T
	meta  func(*T) *Meta
}

// Name returns the collection's document key (e.g. "employees").
func (c *Collection[T]) Name() string { return c.name }

// Create assigns a fresh ID, stamps createdAt == updatedAt, appends the
// record and flushes. On flush failure the append is rolled back and an
// IOError returned, keeping memory and disk consistent.
func (c *Collection[T]) Create(rec T) (T, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.closed {
		return zero, ErrClosed
	}

	now := s.now()
	m := c.meta(&rec)
	m.ID = newID(now)
	m.CreatedAt = now
	m.UpdatedAt = now

	items := c.items(&s.doc)
	*items = append(*items, rec)
	if err := s.flushLocked("create"); err != nil {
		*items = (*items)[:len(*items)-1]
		return zero, err
	}
	return rec, nil
}

// GetByID scans the collection and returns the record and whether it exists.
// A missing ID is not an error.
func (c *Collection[T]) GetByID(id string) (T, bool) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	items := *c.items(&s.doc)
	for i := range items {
		if c.meta(&items[i]).ID == id {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}

// Update applies the caller's mutation to the stored record, refreshes
// updatedAt and flushes. ID and createdAt are immutable: values the mutation
// writes to them are discarded. Returns a NotFoundError for unknown IDs and
// rolls back on flush failure.
func (c *Collection[T]) Update(id string, apply func(*T)) (T, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.closed {
		return zero, ErrClosed
	}

	items := *c.items(&s.doc)
	for i := range items {
		m := c.meta(&items[i])
		if m.ID != id {
			continue
		}
		prev := items[i]
		prevMeta := *m

		apply(&items[i])

		m = c.meta(&items[i])
		m.ID = prevMeta.ID
		m.CreatedAt = prevMeta.CreatedAt
		m.UpdatedAt = s.now()
		// Guarantees updatedAt strictly increases even on coarse clocks.
		if !m.UpdatedAt.After(prevMeta.UpdatedAt) {
			m.UpdatedAt = prevMeta.UpdatedAt.Add(time.Nanosecond)
		}

		if err := s.flushLocked("update"); err != nil {
			items[i] = prev
			return zero, err
		}
		return items[i], nil
	}
	return zero, &NotFoundError{Collection: c.name, ID: id}
}

// Delete removes the record if present and reports whether anything was
// removed. Deleting a nonexistent ID returns false, not an error.
func (c *Collection[T]) Delete(id string) (bool, error) {
	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false, ErrClosed
	}

	items := c.items(&s.doc)
	for i := range *items {
		if c.meta(&(*items)[i]).ID != id {
			continue
		}
		prev := slices.Clone(*items)
		*items = slices.Delete(*items, i, i+1)
		if err := s.flushLocked("delete"); err != nil {
			*items = prev
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// List returns a fresh ordered slice of matching records, never a live view.
// Predicates are a conjunction; absent criteria impose no constraint. The
// default order is createdAt descending. Out-of-range offsets yield an empty
// slice.
func (c *Collection[T]) List(opts ...ListOption[T]) []T {
	q := listQuery[T]{limit: -1}
	for _, opt := range opts {
		opt(&q)
	}

	s := c.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []T
	for _, rec := range *c.items(&s.doc) {
		if matchAll(rec, q.preds) {
			out = append(out, rec)
		}
	}

	less := q.less
	if less == nil {
		less = func(a, b T) bool {
			return c.meta(&a).CreatedAt.After(c.meta(&b).CreatedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })

	return paginate(out, q.offset, q.limit)
}

type listQuery[T any] struct {
	preds  []func(T) bool
	less   func(a, b T) bool
	offset int
	limit  int
}

// ListOption customizes a List call.
type ListOption[T any] func(*listQuery[T])

// Where adds a predicate; all predicates must hold for a record to match.
func Where[T any](pred func(T) bool) ListOption[T] {
	return func(q *listQuery[T]) {
		if pred != nil {
			q.preds = append(q.preds, pred)
		}
	}
}

// SortBy replaces the default createdAt-descending order.
func SortBy[T any](less func(a, b T) bool) ListOption[T] {
	return func(q *listQuery[T]) { q.less = less }
}

// Page applies offset+limit pagination. A limit below zero means unlimited.
func Page[T any](offset, limit int) ListOption[T] {
	return func(q *listQuery[T]) {
		q.offset = offset
		q.limit = limit
	}
}

func matchAll[T any](rec T, preds []func(T) bool) bool {
	for _, pred := range preds {
		if !pred(rec) {
			return false
		}
	}
	return true
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ContainsFold reports whether value contains needle case-insensitively.
// Free-text search filters build on it.
func ContainsFold(value, needle string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}
