package store

import "time"

// Meta carries the store-managed identity and timestamps shared by every
// record. ID and CreatedAt are assigned once at creation; UpdatedAt is
// refreshed on every mutating call.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleHRManager Role = "HR_MANAGER"
	RoleManager   Role = "MANAGER"
	RoleEmployee  Role = "EMPLOYEE"
)

type User struct {
	Meta
	Email       string     `json:"email"`
	Password    string     `json:"password,omitempty"`
	Role        Role       `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "ACTIVE"
	EmployeeOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeTerminated EmployeeStatus = "TERMINATED"
)

type Employee struct {
	Meta
	EmployeeID string         `json:"employeeId"`
	FirstName  string         `json:"firstName"`
	LastName   string         `json:"lastName"`
	Email      string         `json:"email"`
	Phone      string         `json:"phone,omitempty"`
	Department string         `json:"department"`
	Position   string         `json:"position"`
	HireDate   time.Time      `json:"hireDate"`
	ManagerID  string         `json:"managerId,omitempty"`
	Salary     float64        `json:"salary"`
	Status     EmployeeStatus `json:"status"`
}

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
)

type Attendance struct {
	Meta
	EmployeeID string           `json:"employeeId"`
	Date       time.Time        `json:"date"`
	CheckIn    *time.Time       `json:"checkIn,omitempty"`
	CheckOut   *time.Time       `json:"checkOut,omitempty"`
	Status     AttendanceStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
}

type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeaveCasual    LeaveType = "CASUAL"
	LeaveMaternity LeaveType = "MATERNITY"
	LeaveUnpaid    LeaveType = "UNPAID"
)

type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

type Leave struct {
	Meta
	EmployeeID string      `json:"employeeId"`
	Type       LeaveType   `json:"type"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Days       float64     `json:"days"`
	Reason     string      `json:"reason,omitempty"`
	Status     LeaveStatus `json:"status"`
	ApprovedBy string      `json:"approvedBy,omitempty"`
}

type PayrollStatus string

const (
	PayrollDraft     PayrollStatus = "DRAFT"
	PayrollProcessed PayrollStatus = "PROCESSED"
	PayrollPaid      PayrollStatus = "PAID"
)

type Payroll struct {
	Meta
	EmployeeID  string        `json:"employeeId"`
	Month       int           `json:"month"`
	Year        int           `json:"year"`
	BasicSalary float64       `json:"basicSalary"`
	Allowances  float64       `json:"allowances"`
	Deductions  float64       `json:"deductions"`
	NetSalary   float64       `json:"netSalary"`
	Status      PayrollStatus `json:"status"`
}

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "BEGINNER"
	LevelIntermediate CourseLevel = "INTERMEDIATE"
	LevelAdvanced     CourseLevel = "ADVANCED"
)

type TrainingCourse struct {
	Meta
	Title         string      `json:"title"`
	Category      string      `json:"category"`
	Level         CourseLevel `json:"level"`
	DurationHours int         `json:"durationHours"`
	EnrolledCount int         `json:"enrolledCount"`
}

type TrainingStatus string

const (
	TrainingEnrolled   TrainingStatus = "ENROLLED"
	TrainingInProgress TrainingStatus = "IN_PROGRESS"
	TrainingCompleted  TrainingStatus = "COMPLETED"
)

type EmployeeTraining struct {
	Meta
	EmployeeID  string         `json:"employeeId"`
	CourseID    string         `json:"courseId"`
	Status      TrainingStatus `json:"status"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

type BenefitType string

const (
	BenefitHealth     BenefitType = "HEALTH_INSURANCE"
	BenefitDental     BenefitType = "DENTAL"
	BenefitRetirement BenefitType = "RETIREMENT"
	BenefitWellness   BenefitType = "WELLNESS"
)

type Benefit struct {
	Meta
	Name        string      `json:"name"`
	Type        BenefitType `json:"type"`
	Description string      `json:"description,omitempty"`
	MonthlyCost float64     `json:"monthlyCost"`
	Provider    string      `json:"provider,omitempty"`
}

type EmployeeBenefit struct {
	Meta
	EmployeeID string    `json:"employeeId"`
	BenefitID  string    `json:"benefitId"`
	StartDate  time.Time `json:"startDate"`
	Status     string    `json:"status"`
}

// AuditLog is append-only: the store exposes no update or delete path for it.
// OldValues and NewValues are opaque JSON strings supplied by the caller.
type AuditLog struct {
	Meta
	UserID    string `json:"userId,omitempty"`
	Action    string `json:"action"`
	Table     string `json:"table"`
	RecordID  string `json:"recordId,omitempty"`
	OldValues string `json:"oldValues,omitempty"`
	NewValues string `json:"newValues,omitempty"`
}
