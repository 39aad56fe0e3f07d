package benefits

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

func (s *Service) CreateBenefit(benefit store.Benefit) (store.Benefit, error) {
	return s.store.Benefits().Create(benefit)
}

func (s *Service) GetBenefit(id string) (store.Benefit, bool) {
	return s.store.Benefits().GetByID(id)
}

func (s *Service) ListBenefits(benefitType store.BenefitType, offset, limit int) []store.Benefit {
	opts := []store.ListOption[store.Benefit]{store.Page[store.Benefit](offset, limit)}
	if benefitType != "" {
		opts = append(opts, store.Where(func(b store.Benefit) bool { return b.Type == benefitType }))
	}
	return s.store.Benefits().List(opts...)
}

func (s *Service) UpdateBenefit(id string, apply func(*store.Benefit)) (store.Benefit, error) {
	return s.store.Benefits().Update(id, apply)
}

func (s *Service) DeleteBenefit(id string) (bool, error) {
	return s.store.Benefits().Delete(id)
}

// Enroll links an employee to a benefit starting at the given date.
func (s *Service) Enroll(employeeID, benefitID string, start time.Time) (store.EmployeeBenefit, error) {
	if _, ok := s.store.Benefits().GetByID(benefitID); !ok {
		return store.EmployeeBenefit{}, &store.NotFoundError{Collection: "benefits", ID: benefitID}
	}
	return s.store.EmployeeBenefits().Create(store.EmployeeBenefit{
		EmployeeID: employeeID,
		BenefitID:  benefitID,
		StartDate:  start,
		Status:     "ENROLLED",
	})
}

func (s *Service) ListEnrollments(employeeID string, offset, limit int) []store.EmployeeBenefit {
	opts := []store.ListOption[store.EmployeeBenefit]{store.Page[store.EmployeeBenefit](offset, limit)}
	if employeeID != "" {
		opts = append(opts, store.Where(func(b store.EmployeeBenefit) bool { return b.EmployeeID == employeeID }))
	}
	return s.store.EmployeeBenefits().List(opts...)
}
