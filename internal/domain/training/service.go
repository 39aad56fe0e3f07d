package training

import (
	"errors"
	"time"

	"bizsuite/internal/store"
)

// ErrAlreadyEnrolled reports a duplicate enrollment for one employee+course.
var ErrAlreadyEnrolled = errors.New("employee already enrolled in course")

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) CreateCourse(course store.TrainingCourse) (store.TrainingCourse, error) {
	course.EnrolledCount = 0
	return s.store.TrainingCourses().Create(course)
}

func (s *Service) GetCourse(id string) (store.TrainingCourse, bool) {
	return s.store.TrainingCourses().GetByID(id)
}

func (s *Service) ListCourses(category string, offset, limit int) []store.TrainingCourse {
	opts := []store.ListOption[store.TrainingCourse]{store.Page[store.TrainingCourse](offset, limit)}
	if category != "" {
		opts = append(opts, store.Where(func(c store.TrainingCourse) bool { return c.Category == category }))
	}
	return s.store.TrainingCourses().List(opts...)
}

func (s *Service) UpdateCourse(id string, apply func(*store.TrainingCourse)) (store.TrainingCourse, error) {
	return s.store.TrainingCourses().Update(id, apply)
}

func (s *Service) DeleteCourse(id string) (bool, error) {
	return s.store.TrainingCourses().Delete(id)
}

// Enroll links an employee to a course and bumps the course's enrolled
// counter. The two writes are separate store calls; a crash between them
// leaves the counter one low, which the suite tolerates.
func (s *Service) Enroll(employeeID, courseID string) (store.EmployeeTraining, error) {
	if _, ok := s.store.TrainingCourses().GetByID(courseID); !ok {
		return store.EmployeeTraining{}, &store.NotFoundError{Collection: "trainingCourses", ID: courseID}
	}
	existing := s.store.EmployeeTrainings().List(store.Where(func(t store.EmployeeTraining) bool {
		return t.EmployeeID == employeeID && t.CourseID == courseID
	}))
	if len(existing) > 0 {
		return store.EmployeeTraining{}, ErrAlreadyEnrolled
	}

	enrollment, err := s.store.EmployeeTrainings().Create(store.EmployeeTraining{
		EmployeeID: employeeID,
		CourseID:   courseID,
		Status:     store.TrainingEnrolled,
	})
	if err != nil {
		return store.EmployeeTraining{}, err
	}

	if _, err := s.store.TrainingCourses().Update(courseID, func(c *store.TrainingCourse) {
		c.EnrolledCount++
	}); err != nil {
		return store.EmployeeTraining{}, err
	}
	return enrollment, nil
}

// Complete marks an enrollment finished and stamps the completion time.
func (s *Service) Complete(enrollmentID string, at time.Time) (store.EmployeeTraining, error) {
	return s.store.EmployeeTrainings().Update(enrollmentID, func(t *store.EmployeeTraining) {
		t.Status = store.TrainingCompleted
		t.CompletedAt = &at
	})
}

func (s *Service) ListEnrollments(employeeID string, offset, limit int) []store.EmployeeTraining {
	opts := []store.ListOption[store.EmployeeTraining]{store.Page[store.EmployeeTraining](offset, limit)}
	if employeeID != "" {
		opts = append(opts, store.Where(func(t store.EmployeeTraining) bool { return t.EmployeeID == employeeID }))
	}
	return s.store.EmployeeTrainings().List(opts...)
}
