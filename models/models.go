package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Employee roles and record statuses.
const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleEmployee = "Employee"
)

// Employee is the identity record. Admin enrolls it with code+cnic
// only; the employee later completes it via signup. The record is
// loginable only once both email and password are non-empty.
type Employee struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	EmployeeCode    string    `gorm:"uniqueIndex;not null" json:"employee_code"`
	CNIC            string    `gorm:"column:cnic;uniqueIndex;not null" json:"cnic"`
	FullName        string    `json:"full_name"`
	Email           string    `gorm:"index" json:"email"`
	Password        string    `json:"-"`
	Role            string    `gorm:"not null;default:'Employee'" json:"role"` // Admin, HR, Employee
	Salary          float64   `json:"salary"`
	Mobile          string    `json:"mobile"`
	JoinedAt        time.Time `json:"joined_at"`
	PaidLeavesTotal int       `gorm:"default:20" json:"paid_leaves_total"`
	PaidLeavesUsed  int       `gorm:"default:0" json:"paid_leaves_used"`
}

// StringList stores an ordered list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

type Job struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"not null" json:"title"`
	Description  string     `json:"description"`
	Requirements StringList `gorm:"type:text" json:"requirements"`
	Location     string     `gorm:"default:'Karachi'" json:"location"`
	SalaryRange  string     `gorm:"default:'Not Disclosed'" json:"salary_range"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Application statuses.
const (
	ApplicationPending     = "Pending"
	ApplicationUnviewed    = "Unviewed"
	ApplicationViewed      = "Viewed"
	ApplicationShortlisted = "Shortlisted"
	ApplicationRejected    = "Rejected"
)

type Application struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	JobID          string    `gorm:"index" json:"job_id"` // weak reference, not enforced
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	CVURL          string    `gorm:"column:cv_url" json:"cv_url"`
	AIScore        int       `gorm:"column:ai_score" json:"ai_score"`
	AIReasoning    string    `gorm:"column:ai_reasoning" json:"ai_reasoning"`
	Status         string    `gorm:"default:'Pending'" json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
}

// Leave statuses and types.
const (
	LeavePending    = "Pending"
	LeaveApproved   = "Approved"
	LeaveRejected   = "Rejected"
	LeaveUnapproved = "Unapproved"
)

// Leave dates are kept as strings: the records arrive from clients as
// either full RFC3339 timestamps or bare dates, and the reconciler
// parses them tolerantly instead of rejecting at the edge.
type Leave struct {
	ID            string `gorm:"primaryKey" json:"id"`
	EmployeeID    string `gorm:"index" json:"employee_id"` // employee_code, weak reference
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`
	LeaveType     string `gorm:"default:'Casual'" json:"leave_type"` // Sick, Casual, Annual
	Status        string `gorm:"default:'Pending'" json:"status"`
	AdminComments string `json:"admin_comments"`
}

// Attendance is the per-employee monthly summary. At most one record
// exists per (employee_id, month, year); the composite unique index
// backs the atomic upsert.
type Attendance struct {
	ID                string  `gorm:"primaryKey" json:"id"`
	EmployeeID        string  `gorm:"uniqueIndex:idx_attendance_period" json:"employee_id"`
	Month             int     `gorm:"uniqueIndex:idx_attendance_period" json:"month"`
	Year              int     `gorm:"uniqueIndex:idx_attendance_period" json:"year"`
	AbsentDays        int     `json:"absent_days"`
	ApprovedLeaves    int     `json:"approved_leaves"`    // derived from the leave ledger
	UnapprovedAbsence int     `json:"unapproved_absence"` // absent_days - approved_leaves, floored at 0
	PaidLeaves        int     `json:"paid_leaves"`        // legacy input, kept for compatibility
	UnpaidDays        int     `json:"unpaid_days"`        // legacy derived, unused downstream
	DailyDeduction    float64 `json:"daily_deduction"`
	TotalDeduction    float64 `json:"total_deduction"`
}
