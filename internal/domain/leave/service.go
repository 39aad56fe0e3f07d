// Package leave owns the leave-request lifecycle. The record store is a pure
// data container, so transition legality is enforced here: PENDING may be
// approved or rejected, and PENDING or APPROVED requests may be cancelled.
package leave

import (
	"fmt"

	"bizsuite/internal/store"
)

// ErrInvalidTransition reports an attempt to move a request out of a state
// that does not allow it.
type ErrInvalidTransition struct {
	From store.LeaveStatus
	To   store.LeaveStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("leave transition %s -> %s not allowed", e.From, e.To)
}

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Submit creates a PENDING request, computing the inclusive day count from
// the date range.
func (s *Service) Submit(req store.Leave) (store.Leave, error) {
	days, err := CalculateDays(req.StartDate, req.EndDate)
	if err != nil {
		return store.Leave{}, err
	}
	req.Days = days
	req.Status = store.LeavePending
	req.ApprovedBy = ""
	return s.store.Leaves().Create(req)
}

func (s *Service) Get(id string) (store.Leave, bool) {
	return s.store.Leaves().GetByID(id)
}

// Filter narrows List. Zero fields impose no constraint.
type Filter struct {
	EmployeeID string
	Status     store.LeaveStatus
	Type       store.LeaveType
}

func (s *Service) List(filter Filter, offset, limit int) []store.Leave {
	opts := []store.ListOption[store.Leave]{store.Page[store.Leave](offset, limit)}
	if filter.EmployeeID != "" {
		opts = append(opts, store.Where(func(l store.Leave) bool { return l.EmployeeID == filter.EmployeeID }))
	}
	if filter.Status != "" {
		opts = append(opts, store.Where(func(l store.Leave) bool { return l.Status == filter.Status }))
	}
	if filter.Type != "" {
		opts = append(opts, store.Where(func(l store.Leave) bool { return l.Type == filter.Type }))
	}
	return s.store.Leaves().List(opts...)
}

func (s *Service) Approve(id, approverID string) (store.Leave, error) {
	return s.transition(id, store.LeaveApproved, approverID, store.LeavePending)
}

func (s *Service) Reject(id, approverID string) (store.Leave, error) {
	return s.transition(id, store.LeaveRejected, approverID, store.LeavePending)
}

func (s *Service) Cancel(id string) (store.Leave, error) {
	return s.transition(id, store.LeaveCancelled, "", store.LeavePending, store.LeaveApproved)
}

// transition moves a request to a new status. The legality check runs inside
// the store's update lock, so two racing transitions cannot both pass it:
// the loser sees the winner's status and fails.
func (s *Service) transition(id string, to store.LeaveStatus, approverID string, from ...store.LeaveStatus) (store.Leave, error) {
	var conflict *ErrInvalidTransition
	updated, err := s.store.Leaves().Update(id, func(l *store.Leave) {
		for _, status := range from {
			if l.Status == status {
				l.Status = to
				if approverID != "" {
					l.ApprovedBy = approverID
				}
				return
			}
		}
		conflict = &ErrInvalidTransition{From: l.Status, To: to}
	})
	if err != nil {
		return store.Leave{}, err
	}
	if conflict != nil {
		return store.Leave{}, conflict
	}
	return updated, nil
}
