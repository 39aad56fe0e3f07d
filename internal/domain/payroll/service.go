// Package payroll creates payroll entries and renders payslips. Tax rules and
// statutory deductions are out of scope; callers supply the figures.
package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"bizsuite/internal/store"
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// CreateEntry persists a payroll entry for one employee and month. NetSalary
// is computed here, on the caller side of the store boundary.
func (s *Service) CreateEntry(entry store.Payroll) (store.Payroll, error) {
	if entry.Month < 1 || entry.Month > 12 {
		return store.Payroll{}, fmt.Errorf("invalid month %d", entry.Month)
	}
	entry.NetSalary = NetSalary(entry.BasicSalary, entry.Allowances, entry.Deductions)
	if entry.Status == "" {
		entry.Status = store.PayrollDraft
	}
	return s.store.Payroll().Create(entry)
}

func (s *Service) Get(id string) (store.Payroll, bool) {
	return s.store.Payroll().GetByID(id)
}

// Filter narrows List. Zero fields impose no constraint.
type Filter struct {
	EmployeeID string
	Month      int
	Year       int
	Status     store.PayrollStatus
}

func (s *Service) List(filter Filter, offset, limit int) []store.Payroll {
	opts := []store.ListOption[store.Payroll]{store.Page[store.Payroll](offset, limit)}
	if filter.EmployeeID != "" {
		opts = append(opts, store.Where(func(p store.Payroll) bool { return p.EmployeeID == filter.EmployeeID }))
	}
	if filter.Month != 0 {
		opts = append(opts, store.Where(func(p store.Payroll) bool { return p.Month == filter.Month }))
	}
	if filter.Year != 0 {
		opts = append(opts, store.Where(func(p store.Payroll) bool { return p.Year == filter.Year }))
	}
	if filter.Status != "" {
		opts = append(opts, store.Where(func(p store.Payroll) bool { return p.Status == filter.Status }))
	}
	return s.store.Payroll().List(opts...)
}

func (s *Service) SetStatus(id string, status store.PayrollStatus) (store.Payroll, error) {
	return s.store.Payroll().Update(id, func(p *store.Payroll) {
		p.Status = status
	})
}

// Payslip renders the entry as a PDF. The employee record supplies the name
// and email shown on the slip.
func (s *Service) Payslip(id string) ([]byte, error) {
	entry, ok := s.store.Payroll().GetByID(id)
	if !ok {
		return nil, &store.NotFoundError{Collection: "payroll", ID: id}
	}
	emp, ok := s.store.Employees().GetByID(entry.EmployeeID)
	if !ok {
		return nil, &store.NotFoundError{Collection: "employees", ID: entry.EmployeeID}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s %s (%s)", emp.FirstName, emp.LastName, emp.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %04d-%02d", entry.Year, entry.Month))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic: %.2f", entry.BasicSalary))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %.2f", entry.Allowances))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Deductions: %.2f", entry.Deductions))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Net: %.2f", entry.NetSalary))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
