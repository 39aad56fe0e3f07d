// Package hr provides the employee and attendance services on top of the
// record store. The store holds opaque foreign keys; any integrity the suite
// needs lives here.
package hr

import (
	"time"

	"bizsuite/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// EmployeeFilter narrows ListEmployees. Zero fields impose no constraint;
// supplied fields combine as a conjunction. Search matches case-insensitively
// against name, email, department and position.
type EmployeeFilter struct {
	Department string
	Status     store.EmployeeStatus
	ManagerID  string
	Search     string
}

func (f EmployeeFilter) predicates() []store.ListOption[store.Employee] {
	var opts []store.ListOption[store.Employee]
	if f.Department != "" {
		opts = append(opts, store.Where(func(e store.Employee) bool {
			return e.Department == f.Department
		}))
	}
	if f.Status != "" {
		opts = append(opts, store.Where(func(e store.Employee) bool {
			return e.Status == f.Status
		}))
	}
	if f.ManagerID != "" {
		opts = append(opts, store.Where(func(e store.Employee) bool {
			return e.ManagerID == f.ManagerID
		}))
	}
	if f.Search != "" {
		opts = append(opts, store.Where(func(e store.Employee) bool {
			return store.ContainsFold(e.FirstName, f.Search) ||
				store.ContainsFold(e.LastName, f.Search) ||
				store.ContainsFold(e.Email, f.Search) ||
				store.ContainsFold(e.Department, f.Search) ||
				store.ContainsFold(e.Position, f.Search)
		}))
	}
	return opts
}

func (s *Service) CreateEmployee(emp store.Employee) (store.Employee, error) {
	if emp.Status == "" {
		emp.Status = store.EmployeeActive
	}
	return s.store.Employees().Create(emp)
}

func (s *Service) GetEmployee(id string) (store.Employee, bool) {
	return s.store.Employees().GetByID(id)
}

func (s *Service) ListEmployees(filter EmployeeFilter, offset, limit int) []store.Employee {
	opts := filter.predicates()
	opts = append(opts, store.Page[store.Employee](offset, limit))
	return s.store.Employees().List(opts...)
}

func (s *Service) CountEmployees(filter EmployeeFilter) int {
	return len(s.store.Employees().List(filter.predicates()...))
}

func (s *Service) UpdateEmployee(id string, apply func(*store.Employee)) (store.Employee, error) {
	return s.store.Employees().Update(id, apply)
}

func (s *Service) DeleteEmployee(id string) (bool, error) {
	return s.store.Employees().Delete(id)
}

// AttendanceFilter narrows attendance listings by employee and date range.
type AttendanceFilter struct {
	EmployeeID string
	From       time.Time
	To         time.Time
}

func (f AttendanceFilter) predicates() []store.ListOption[store.Attendance] {
	var opts []store.ListOption[store.Attendance]
	if f.EmployeeID != "" {
		opts = append(opts, store.Where(func(a store.Attendance) bool {
			return a.EmployeeID == f.EmployeeID
		}))
	}
	if !f.From.IsZero() {
		opts = append(opts, store.Where(func(a store.Attendance) bool {
			return !a.Date.Before(f.From)
		}))
	}
	if !f.To.IsZero() {
		opts = append(opts, store.Where(func(a store.Attendance) bool {
			return !a.Date.After(f.To)
		}))
	}
	return opts
}

// CheckIn opens an attendance record for the given day. The store enforces no
// one-per-day uniqueness; repeated check-ins create further records.
func (s *Service) CheckIn(employeeID string, at time.Time, status store.AttendanceStatus) (store.Attendance, error) {
	if status == "" {
		status = store.AttendancePresent
	}
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return s.store.Attendance().Create(store.Attendance{
		EmployeeID: employeeID,
		Date:       day,
		CheckIn:    &at,
		Status:     status,
	})
}

// CheckOut stamps the check-out time on an existing attendance record.
func (s *Service) CheckOut(attendanceID string, at time.Time) (store.Attendance, error) {
	return s.store.Attendance().Update(attendanceID, func(a *store.Attendance) {
		a.CheckOut = &at
	})
}

func (s *Service) ListAttendance(filter AttendanceFilter, offset, limit int) []store.Attendance {
	opts := filter.predicates()
	opts = append(opts, store.Page[store.Attendance](offset, limit))
	return s.store.Attendance().List(opts...)
}
