package store

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Demo credentials for first-run evaluation. Only the bcrypt hashes are
// persisted; the plaintext never reaches the file or the logs.
const (
	SeedAdminEmail    = "admin@bizsuite.local"
	SeedAdminPassword = "admin123"
	SeedHREmail       = "hr@bizsuite.local"
	SeedHRPassword    = "hr12345"

	seedBcryptCost = 12
)

// seedDocument builds the fixed first-run dataset: an admin and an HR manager
// (user + employee each), three sample employees, two training courses and
// two benefits, plus one audit entry recording the seed.
func seedDocument(now time.Time) (document, error) {
	adminHash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), seedBcryptCost)
	if err != nil {
		return document{}, fmt.Errorf("hash admin password: %w", err)
	}
	hrHash, err := bcrypt.GenerateFromPassword([]byte(SeedHRPassword), seedBcryptCost)
	if err != nil {
		return document{}, fmt.Errorf("hash hr password: %w", err)
	}

	meta := func() Meta {
		return Meta{ID: newID(now), CreatedAt: now, UpdatedAt: now}
	}

	adminUser := User{Meta: meta(), Email: SeedAdminEmail, Password: string(adminHash), Role: RoleAdmin, IsActive: true}
	hrUser := User{Meta: meta(), Email: SeedHREmail, Password: string(hrHash), Role: RoleHRManager, IsActive: true}

	adminEmp := Employee{
		Meta:       meta(),
		EmployeeID: "EMP001",
		FirstName:  "Sys",
		LastName:   "Admin",
		Email:      SeedAdminEmail,
		Department: "Administration",
		Position:   "System Administrator",
		HireDate:   now.AddDate(-3, 0, 0),
		Salary:     95000,
		Status:     EmployeeActive,
	}
	hrEmp := Employee{
		Meta:       meta(),
		EmployeeID: "EMP002",
		FirstName:  "Harper",
		LastName:   "Reyes",
		Email:      SeedHREmail,
		Department: "Human Resources",
		Position:   "HR Manager",
		HireDate:   now.AddDate(-2, 0, 0),
		ManagerID:  adminEmp.ID,
		Salary:     78000,
		Status:     EmployeeActive,
	}
	samples := []Employee{
		{
			Meta: meta(), EmployeeID: "EMP003", FirstName: "Ravi", LastName: "Patel",
			Email: "ravi.patel@bizsuite.local", Department: "Engineering", Position: "Software Engineer",
			HireDate: now.AddDate(-1, -6, 0), ManagerID: hrEmp.ID, Salary: 85000, Status: EmployeeActive,
		},
		{
			Meta: meta(), EmployeeID: "EMP004", FirstName: "Lena", LastName: "Fischer",
			Email: "lena.fischer@bizsuite.local", Department: "Sales", Position: "Account Executive",
			HireDate: now.AddDate(-1, 0, 0), ManagerID: hrEmp.ID, Salary: 64000, Status: EmployeeActive,
		},
		{
			Meta: meta(), EmployeeID: "EMP005", FirstName: "Tomás", LastName: "Silva",
			Email: "tomas.silva@bizsuite.local", Department: "Marketing", Position: "Marketing Specialist",
			HireDate: now.AddDate(0, -8, 0), ManagerID: hrEmp.ID, Salary: 58000, Status: EmployeeActive,
		},
	}

	courses := []TrainingCourse{
		{Meta: meta(), Title: "Workplace Safety Essentials", Category: "Compliance", Level: LevelBeginner, DurationHours: 4},
		{Meta: meta(), Title: "Effective People Management", Category: "Leadership", Level: LevelIntermediate, DurationHours: 12},
	}
	benefits := []Benefit{
		{Meta: meta(), Name: "Group Health Plan", Type: BenefitHealth, MonthlyCost: 320, Provider: "Acme Health"},
		{Meta: meta(), Name: "Pension Scheme", Type: BenefitRetirement, MonthlyCost: 150, Provider: "SafeFuture"},
	}

	seedAudit := AuditLog{
		Meta:   meta(),
		Action: "SEED",
		Table:  "users",
	}

	return document{
		Users:             []User{adminUser, hrUser},
		Employees:         append([]Employee{adminEmp, hrEmp}, samples...),
		Attendance:        []Attendance{},
		Leaves:            []Leave{},
		Payroll:           []Payroll{},
		TrainingCourses:   courses,
		EmployeeTrainings: []EmployeeTraining{},
		Benefits:          benefits,
		EmployeeBenefits:  []EmployeeBenefit{},
		AuditLogs:         []AuditLog{seedAudit},
	}, nil
}
