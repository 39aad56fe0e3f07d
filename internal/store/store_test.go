package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "suite.json")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSeedsFirstRun(t *testing.T) {
	s := openTestStore(t)

	users := s.Users().List()
	require.Len(t, users, 2)

	employees := s.Employees().List()
	assert.Len(t, employees, 5)

	assert.Len(t, s.TrainingCourses().List(), 2)
	assert.Len(t, s.Benefits().List(), 2)
	assert.Empty(t, s.Leaves().List())
	assert.Empty(t, s.Payroll().List())

	logs := s.ListAudit(AuditFilter{Action: "SEED"}, 0, -1)
	require.Len(t, logs, 1)

	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("backing file not written: %v", err)
	}
}

func TestOpenReloadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")
	s, err := Open(path)
	require.NoError(t, err)

	created, err := s.Employees().Create(Employee{
		EmployeeID: "EMP100",
		FirstName:  "Nora",
		LastName:   "Quinn",
		Email:      "nora.quinn@example.com",
		Department: "Finance",
		Position:   "Analyst",
		Salary:     52000,
		Status:     EmployeeActive,
	})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	// Existing data must survive a reopen without being re-seeded.
	assert.Len(t, reopened.Users().List(), 2)
	assert.Len(t, reopened.Employees().List(), 6)

	got, ok := reopened.Employees().GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, "Nora", got.FirstName)
	assert.Equal(t, created.CreatedAt.UnixNano(), got.CreatedAt.UnixNano())
}

func TestReopenRoundTripsEveryCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")
	s, err := Open(path)
	require.NoError(t, err)

	checkIn := time.Date(2026, 8, 10, 9, 2, 11, 0, time.UTC)
	checkOut := checkIn.Add(8*time.Hour + 30*time.Minute)
	completed := time.Date(2026, 8, 12, 16, 30, 0, 0, time.UTC)

	user, err := s.Users().Create(User{
		Email: "roundtrip@example.com", Password: "$2a$12$notarealhash",
		Role: RoleManager, IsActive: true,
	})
	require.NoError(t, err)

	emp, err := s.Employees().Create(Employee{
		EmployeeID: "EMP700", FirstName: "Saa", LastName: "Kamara",
		Email: "saa.kamara@example.com", Phone: "+23276000001",
		Department: "Operations", Position: "Coordinator",
		HireDate:  time.Date(2022, 11, 7, 0, 0, 0, 0, time.UTC),
		ManagerID: "some-manager", Salary: 61250.75, Status: EmployeeOnLeave,
	})
	require.NoError(t, err)

	att, err := s.Attendance().Create(Attendance{
		EmployeeID: emp.ID, Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		CheckIn: &checkIn, CheckOut: &checkOut,
		Status: AttendanceLate, Notes: "train delay",
	})
	require.NoError(t, err)

	lv, err := s.Leaves().Create(Leave{
		EmployeeID: emp.ID, Type: LeaveMaternity,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 11, 30, 0, 0, 0, 0, time.UTC),
		Days:      90.5, Reason: "parental", Status: LeaveApproved, ApprovedBy: user.ID,
	})
	require.NoError(t, err)

	pay, err := s.Payroll().Create(Payroll{
		EmployeeID: emp.ID, Month: 8, Year: 2026,
		BasicSalary: 5104.23, Allowances: 310.10, Deductions: 987.65,
		NetSalary: 4426.68, Status: PayrollProcessed,
	})
	require.NoError(t, err)

	course, err := s.TrainingCourses().Create(TrainingCourse{
		Title: "Forklift Certification", Category: "Safety",
		Level: LevelAdvanced, DurationHours: 16, EnrolledCount: 1,
	})
	require.NoError(t, err)

	tr, err := s.EmployeeTrainings().Create(EmployeeTraining{
		EmployeeID: emp.ID, CourseID: course.ID,
		Status: TrainingCompleted, CompletedAt: &completed,
	})
	require.NoError(t, err)

	ben, err := s.Benefits().Create(Benefit{
		Name: "Vision Care", Type: BenefitDental, Description: "annual exam",
		MonthlyCost: 17.25, Provider: "ClearView",
	})
	require.NoError(t, err)

	eb, err := s.EmployeeBenefits().Create(EmployeeBenefit{
		EmployeeID: emp.ID, BenefitID: ben.ID,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Status: "ENROLLED",
	})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	// Every field, including optional pointer timestamps, enums, and float
	// precision, must survive the write/parse cycle unchanged.
	gotUser, ok := reopened.Users().GetByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, user, gotUser)

	gotEmp, ok := reopened.Employees().GetByID(emp.ID)
	require.True(t, ok)
	assert.Equal(t, emp, gotEmp)

	gotAtt, ok := reopened.Attendance().GetByID(att.ID)
	require.True(t, ok)
	assert.Equal(t, att, gotAtt)
	require.NotNil(t, gotAtt.CheckIn)
	require.NotNil(t, gotAtt.CheckOut)
	assert.True(t, checkIn.Equal(*gotAtt.CheckIn))
	assert.True(t, checkOut.Equal(*gotAtt.CheckOut))

	gotLeave, ok := reopened.Leaves().GetByID(lv.ID)
	require.True(t, ok)
	assert.Equal(t, lv, gotLeave)

	gotPay, ok := reopened.Payroll().GetByID(pay.ID)
	require.True(t, ok)
	assert.Equal(t, pay, gotPay)

	gotCourse, ok := reopened.TrainingCourses().GetByID(course.ID)
	require.True(t, ok)
	assert.Equal(t, course, gotCourse)

	gotTr, ok := reopened.EmployeeTrainings().GetByID(tr.ID)
	require.True(t, ok)
	assert.Equal(t, tr, gotTr)
	require.NotNil(t, gotTr.CompletedAt)
	assert.True(t, completed.Equal(*gotTr.CompletedAt))

	gotBen, ok := reopened.Benefits().GetByID(ben.ID)
	require.True(t, ok)
	assert.Equal(t, ben, gotBen)

	gotEB, ok := reopened.EmployeeBenefits().GetByID(eb.ID)
	require.True(t, ok)
	assert.Equal(t, eb, gotEB)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suite.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, path, initErr.Path)
}

func TestOpenUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the open flush fail.
	path := filepath.Join(dir, "suite.json")
	require.NoError(t, os.MkdirAll(path, 0o755))

	_, err := Open(path)
	var initErr *InitError
	require.ErrorAs(t, err, &initErr)
}

func TestCreateAssignsMeta(t *testing.T) {
	s := openTestStore(t)

	before := time.Now().UTC()
	rec, err := s.Benefits().Create(Benefit{Name: "Dental Basic", Type: BenefitDental, MonthlyCost: 25})
	require.NoError(t, err)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.False(t, rec.CreatedAt.Before(before.Truncate(time.Second)))

	got, ok := s.Benefits().GetByID(rec.ID)
	require.True(t, ok)
	assert.Equal(t, "Dental Basic", got.Name)
}

func TestGetByIDMissing(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.Employees().GetByID("no-such-id")
	assert.False(t, ok)
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Employees().Create(Employee{
		EmployeeID: "EMP200", FirstName: "Iris", LastName: "Vance",
		Email: "iris.vance@example.com", Department: "Engineering",
		Position: "Engineer", Salary: 70000, Status: EmployeeActive,
	})
	require.NoError(t, err)

	updated, err := s.Employees().Update(rec.ID, func(e *Employee) {
		e.Department = "Platform"
	})
	require.NoError(t, err)

	assert.Equal(t, "Platform", updated.Department)
	assert.Equal(t, "Iris", updated.FirstName)
	assert.Equal(t, 70000.0, updated.Salary)
}

func TestUpdateMetaIsImmutable(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Benefits().Create(Benefit{Name: "Gym", Type: BenefitWellness, MonthlyCost: 40})
	require.NoError(t, err)

	updated, err := s.Benefits().Update(rec.ID, func(b *Benefit) {
		b.ID = "forged"
		b.CreatedAt = time.Unix(0, 0)
		b.MonthlyCost = 45
	})
	require.NoError(t, err)

	assert.Equal(t, rec.ID, updated.ID)
	assert.Equal(t, rec.CreatedAt.UnixNano(), updated.CreatedAt.UnixNano())
	assert.Equal(t, 45.0, updated.MonthlyCost)
}

func TestUpdateBumpsUpdatedAt(t *testing.T) {
	s := openTestStore(t)

	// Freeze the clock so the monotonic guarantee has to kick in.
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec, err := s.Benefits().Create(Benefit{Name: "Vision", Type: BenefitHealth, MonthlyCost: 15})
	require.NoError(t, err)

	first, err := s.Benefits().Update(rec.ID, func(b *Benefit) { b.MonthlyCost = 16 })
	require.NoError(t, err)
	second, err := s.Benefits().Update(rec.ID, func(b *Benefit) { b.MonthlyCost = 17 })
	require.NoError(t, err)

	assert.True(t, first.UpdatedAt.After(rec.UpdatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestUpdateNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Employees().Update("missing", func(e *Employee) { e.Salary = 1 })
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "employees", nf.Collection)
	assert.True(t, IsNotFound(err))
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Benefits().Create(Benefit{Name: "Commuter", Type: BenefitWellness, MonthlyCost: 30})
	require.NoError(t, err)

	removed, err := s.Benefits().Delete(rec.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Benefits().Delete(rec.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, ok := s.Benefits().GetByID(rec.ID)
	assert.False(t, ok)
}

func TestFlushFailureRollsBack(t *testing.T) {
	s := openTestStore(t)

	rec, err := s.Benefits().Create(Benefit{Name: "Keep", Type: BenefitHealth, MonthlyCost: 10})
	require.NoError(t, err)
	baseline := len(s.Benefits().List())

	diskErr := errors.New("disk full")
	s.writeFile = func(string, []byte) error { return diskErr }

	_, err = s.Benefits().Create(Benefit{Name: "Never"})
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.ErrorIs(t, err, diskErr)

	_, err = s.Benefits().Update(rec.ID, func(b *Benefit) { b.MonthlyCost = 999 })
	require.ErrorAs(t, err, &ioErr)

	_, err = s.Benefits().Delete(rec.ID)
	require.ErrorAs(t, err, &ioErr)

	_, err = s.AppendAudit(AuditLog{Action: "CREATE", Table: "benefits"})
	require.ErrorAs(t, err, &ioErr)

	// Memory must match the last successful flush.
	s.writeFile = atomicWriteFile
	assert.Len(t, s.Benefits().List(), baseline)
	got, ok := s.Benefits().GetByID(rec.ID)
	require.True(t, ok)
	assert.Equal(t, 10.0, got.MonthlyCost)
}

func TestCloseRejectsMutationsServesReads(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close()) // idempotent

	_, err := s.Employees().Create(Employee{EmployeeID: "EMP999"})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Employees().Update("x", func(*Employee) {})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.Employees().Delete("x")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.AppendAudit(AuditLog{Action: "CREATE"})
	assert.ErrorIs(t, err, ErrClosed)

	assert.Len(t, s.Employees().List(), 5)
}

func TestNewIDUniqueness(t *testing.T) {
	now := time.Now().UTC()
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := newID(now)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id after %d generations: %s", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestListFiltersAreConjunctive(t *testing.T) {
	s := openTestStore(t)

	matches := s.Employees().List(
		Where(func(e Employee) bool { return e.Department == "Engineering" }),
		Where(func(e Employee) bool { return e.Status == EmployeeActive }),
	)
	require.Len(t, matches, 1)
	assert.Equal(t, "EMP003", matches[0].EmployeeID)

	none := s.Employees().List(
		Where(func(e Employee) bool { return e.Department == "Engineering" }),
		Where(func(e Employee) bool { return e.Status == EmployeeTerminated }),
	)
	assert.Empty(t, none)
}

func TestListDefaultOrderIsNewestFirst(t *testing.T) {
	s := openTestStore(t)

	clock := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	a, err := s.Payroll().Create(Payroll{EmployeeID: "e1", Month: 1, Year: 2026})
	require.NoError(t, err)
	b, err := s.Payroll().Create(Payroll{EmployeeID: "e1", Month: 2, Year: 2026})
	require.NoError(t, err)

	got := s.Payroll().List()
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].ID)
	assert.Equal(t, a.ID, got[1].ID)
}

func TestListPagination(t *testing.T) {
	s := openTestStore(t)

	all := s.Employees().List()
	require.Len(t, all, 5)

	page := s.Employees().List(Page[Employee](0, 2))
	assert.Len(t, page, 2)

	page = s.Employees().List(Page[Employee](4, 10))
	assert.Len(t, page, 1)

	page = s.Employees().List(Page[Employee](50, 10))
	assert.NotNil(t, page)
	assert.Empty(t, page)

	page = s.Employees().List(Page[Employee](-1, 3))
	assert.Len(t, page, 3)
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Software Engineer", "engineer"))
	assert.True(t, ContainsFold("Software Engineer", "SOFT"))
	assert.True(t, ContainsFold("anything", ""))
	assert.False(t, ContainsFold("Sales", "engineer"))
}

func TestAppendAuditAndFilter(t *testing.T) {
	s := openTestStore(t)

	_, err := s.AppendAudit(AuditLog{UserID: "u1", Action: "CREATE", Table: "employees", RecordID: "r1"})
	require.NoError(t, err)
	_, err = s.AppendAudit(AuditLog{UserID: "u2", Action: "UPDATE", Table: "employees", RecordID: "r1"})
	require.NoError(t, err)
	_, err = s.AppendAudit(AuditLog{UserID: "u1", Action: "DELETE", Table: "benefits", RecordID: "r2"})
	require.NoError(t, err)

	byUser := s.ListAudit(AuditFilter{UserID: "u1"}, 0, -1)
	assert.Len(t, byUser, 2)

	byUserAndTable := s.ListAudit(AuditFilter{UserID: "u1", Table: "employees"}, 0, -1)
	require.Len(t, byUserAndTable, 1)
	assert.Equal(t, "CREATE", byUserAndTable[0].Action)

	assert.Equal(t, 2, s.CountAudit(AuditFilter{Table: "employees"}))
	assert.Empty(t, s.ListAudit(AuditFilter{Action: "CREATE"}, 10, 5))
}
