// Package store implements the JSON-file-backed record store behind the
// business suite. One process owns one backing file; every collection lives
// in a single document that is loaded at startup, served from memory, and
// rewritten in full after each mutation.
package store

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"bizsuite/internal/platform/metrics"
)

// document is the on-disk shape: one top-level key per collection.
type document struct {
	Users             []User             `json:"users"`
	Employees         []Employee         `json:"employees"`
	Attendance        []Attendance       `json:"attendance"`
	Leaves            []Leave            `json:"leaves"`
	Payroll           []Payroll          `json:"payroll"`
	TrainingCourses   []TrainingCourse   `json:"trainingCourses"`
	EmployeeTrainings []EmployeeTraining `json:"employeeTrainings"`
	Benefits          []Benefit          `json:"benefits"`
	EmployeeBenefits  []EmployeeBenefit  `json:"employeeBenefits"`
	AuditLogs         []AuditLog         `json:"auditLogs"`
}

// Store is safe for concurrent use: a single mutex guards the whole
// read-modify-write-flush sequence of every public call, so each operation is
// atomic with respect to the others.
type Store struct {
	mu     sync.Mutex
	path   string
	doc    document
	closed bool

	now       func() time.Time
	writeFile func(path string, data []byte) error
}

// Open loads the backing file at path, creating the containing directory and
// seeding the demo dataset on first run. It is idempotent. A present but
// unparseable or unwritable file fails with an InitError.
func Open(path string) (*Store, error) {
	s := &Store{
		path:      path,
		now:       func() time.Time { return time.Now().UTC() },
		writeFile: atomicWriteFile,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &InitError{Path: path, Err: err}
		}
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		doc, seedErr := seedDocument(s.now())
		if seedErr != nil {
			return nil, &InitError{Path: path, Err: seedErr}
		}
		s.doc = doc
	case err != nil:
		return nil, &InitError{Path: path, Err: err}
	default:
		if err := json.Unmarshal(raw, &s.doc); err != nil {
			return nil, &InitError{Path: path, Err: fmt.Errorf("parse: %w", err)}
		}
	}

	// Always rewrite on open: persists the seed on first run and proves the
	// file is writable on subsequent ones.
	if err := s.flushLocked("open"); err != nil {
		return nil, &InitError{Path: path, Err: err}
	}
	return s, nil
}

// Close flushes once more and marks the store closed. Mutating operations
// afterwards fail with ErrClosed; reads keep serving the in-memory state.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	err := s.flushLocked("close")
	s.closed = true
	return err
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// flushLocked rewrites the entire document. Callers must hold s.mu.
func (s *Store) flushLocked(op string) error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err == nil {
		err = s.writeFile(s.path, data)
	}
	if err != nil {
		metrics.ObserveFlush(op, "error")
		return &IOError{Op: op, Path: s.path, Err: err}
	}
	metrics.ObserveFlush(op, "ok")
	s.recordGauges()
	return nil
}

func (s *Store) recordGauges() {
	metrics.SetRecordCount("users", len(s.doc.Users))
	metrics.SetRecordCount("employees", len(s.doc.Employees))
	metrics.SetRecordCount("attendance", len(s.doc.Attendance))
	metrics.SetRecordCount("leaves", len(s.doc.Leaves))
	metrics.SetRecordCount("payroll", len(s.doc.Payroll))
	metrics.SetRecordCount("trainingCourses", len(s.doc.TrainingCourses))
	metrics.SetRecordCount("employeeTrainings", len(s.doc.EmployeeTrainings))
	metrics.SetRecordCount("benefits", len(s.doc.Benefits))
	metrics.SetRecordCount("employeeBenefits", len(s.doc.EmployeeBenefits))
	metrics.SetRecordCount("auditLogs", len(s.doc.AuditLogs))
}

// atomicWriteFile writes to a temp file in the target directory and renames
// it into place, so a crash mid-write never truncates the previous snapshot.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".store-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// newID combines a base-36 unix-nano timestamp with a random hex suffix.
// Unique within one process for the target volumes; no cross-process
// guarantee is provided or required.
func newID(now time.Time) string {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand never fails on supported platforms; fall back to the
		// timestamp alone rather than aborting the write.
		return strconv.FormatInt(now.UnixNano(), 36)
	}
	return strconv.FormatInt(now.UnixNano(), 36) + "-" + hex.EncodeToString(suffix)
}

// Typed collection accessors. Each returns a handle over the same underlying
// document slice; handles are cheap and may be created per call.

func (s *Store) Users() *Collection[User] {
	return &Collection[User]{
		store: s, name: "users",
		items: func(d *document) *[]User { return &d.Users },
		meta:  func(u *User) *Meta { return &u.Meta },
	}
}

func (s *Store) Employees() *Collection[Employee] {
	return &Collection[Employee]{
		store: s, name: "employees",
		items: func(d *document) *[]Employee { return &d.Employees },
		meta:  func(e *Employee) *Meta { return &e.Meta },
	}
}

func (s *Store) Attendance() *Collection[Attendance] {
	return &Collection[Attendance]{
		store: s, name: "attendance",
		items: func(d *document) *[]Attendance { return &d.Attendance },
		meta:  func(a *Attendance) *Meta { return &a.Meta },
	}
}

func (s *Store) Leaves() *Collection[Leave] {
	return &Collection[Leave]{
		store: s, name: "leaves",
		items: func(d *document) *[]Leave { return &d.Leaves },
		meta:  func(l *Leave) *Meta { return &l.Meta },
	}
}

func (s *Store) Payroll() *Collection[Payroll] {
	return &Collection[Payroll]{
		store: s, name: "payroll",
		items: func(d *document) *[]Payroll { return &d.Payroll },
		meta:  func(p *Payroll) *Meta { return &p.Meta },
	}
}

func (s *Store) TrainingCourses() *Collection[TrainingCourse] {
	return &Collection[TrainingCourse]{
		store: s, name: "trainingCourses",
		items: func(d *document) *[]TrainingCourse { return &d.TrainingCourses },
		meta:  func(c *TrainingCourse) *Meta { return &c.Meta },
	}
}

func (s *Store) EmployeeTrainings() *Collection[EmployeeTraining] {
	return &Collection[EmployeeTraining]{
		store: s, name: "employeeTrainings",
		items: func(d *document) *[]EmployeeTraining { return &d.EmployeeTrainings },
		meta:  func(t *EmployeeTraining) *Meta { return &t.Meta },
	}
}

func (s *Store) Benefits() *Collection[Benefit] {
	return &Collection[Benefit]{
		store: s, name: "benefits",
		items: func(d *document) *[]Benefit { return &d.Benefits },
		meta:  func(b *Benefit) *Meta { return &b.Meta },
	}
}

func (s *Store) EmployeeBenefits() *Collection[EmployeeBenefit] {
	return &Collection[EmployeeBenefit]{
		store: s, name: "employeeBenefits",
		items: func(d *document) *[]EmployeeBenefit { return &d.EmployeeBenefits },
		meta:  func(b *EmployeeBenefit) *Meta { return &b.Meta },
	}
}
