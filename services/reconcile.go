package services

import (
	"strings"
	"time"

	"hr_system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Reconciler derives the monthly attendance summary by joining
// attendance input against the leave ledger. It reads leaves, never
// mutates them.
type Reconciler struct {
	DB *gorm.DB
}

func NewReconciler(db *gorm.DB) *Reconciler {
	return &Reconciler{DB: db}
}

// leaveDateLayouts are tried in order when parsing a leave start date.
// Records written by different clients carry full RFC3339 timestamps,
// naive timestamps, or bare dates.
var leaveDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseLeaveDate parses a leave date string, tolerating a trailing Z
// on naive timestamps. The second return is false when no layout
// matches.
func ParseLeaveDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range leaveDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ApprovedLeaveCount counts the employee's Approved leave requests
// whose start date falls in the given month and year. It counts
// requests, not days: a leave spanning several days or months counts
// once, toward its start month. Unparseable dates are skipped.
func (r *Reconciler) ApprovedLeaveCount(employeeID string, month, year int) (int, error) {
	var leaves []models.Leave
	err := r.DB.Where("employee_id = ? AND status = ?", employeeID, models.LeaveApproved).
		Find(&leaves).Error
	if err != nil {
		return 0, err
	}

	count := 0
	for _, leave := range leaves {
		start, ok := ParseLeaveDate(leave.StartDate)
		if !ok {
			continue
		}
		if int(start.Month()) == month && start.Year() == year {
			count++
		}
	}
	return count, nil
}

// UpsertInput is the client-controlled part of an attendance record.
// Derived fields are recomputed on every write regardless of what the
// client sent.
type UpsertInput struct {
	EmployeeID     string
	Month          int
	Year           int
	AbsentDays     int
	PaidLeaves     int
	DailyDeduction float64
}

// Upsert writes the monthly summary for (EmployeeID, Month, Year) as a
// single conditional upsert on the natural key, so concurrent writers
// cannot produce duplicate rows. Returns the stored record and whether
// it was newly created.
func (r *Reconciler) Upsert(in UpsertInput) (models.Attendance, bool, error) {
	approved, err := r.ApprovedLeaveCount(in.EmployeeID, in.Month, in.Year)
	if err != nil {
		return models.Attendance{}, false, err
	}

	unapproved := in.AbsentDays - approved
	if unapproved < 0 {
		unapproved = 0
	}
	unpaid := in.AbsentDays - approved - in.PaidLeaves
	if unpaid < 0 {
		unpaid = 0
	}

	att := models.Attendance{
		ID:                uuid.New().String(),
		EmployeeID:        in.EmployeeID,
		Month:             in.Month,
		Year:              in.Year,
		AbsentDays:        in.AbsentDays,
		ApprovedLeaves:    approved,
		UnapprovedAbsence: unapproved,
		PaidLeaves:        in.PaidLeaves,
		UnpaidDays:        unpaid,
		DailyDeduction:    in.DailyDeduction,
		TotalDeduction:    float64(unapproved) * in.DailyDeduction,
	}

	// Existence check feeds only the created/updated report; the write
	// itself is atomic either way.
	var existing models.Attendance
	created := true
	err = r.DB.Where("employee_id = ? AND month = ? AND year = ?", in.EmployeeID, in.Month, in.Year).
		First(&existing).Error
	if err == nil {
		created = false
	} else if err != gorm.ErrRecordNotFound {
		return models.Attendance{}, false, err
	}

	err = r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "month"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"absent_days", "approved_leaves", "unapproved_absence",
			"paid_leaves", "unpaid_days", "daily_deduction", "total_deduction",
		}),
	}).Create(&att).Error
	if err != nil {
		return models.Attendance{}, false, err
	}

	var stored models.Attendance
	err = r.DB.Where("employee_id = ? AND month = ? AND year = ?", in.EmployeeID, in.Month, in.Year).
		First(&stored).Error
	if err != nil {
		return models.Attendance{}, false, err
	}
	return stored, created, nil
}

// reconcile refreshes the derived fields of a record against the
// current leave ledger. Stored values go stale between writes; reads
// recompute them so counts and deduction stay mutually consistent.
func (r *Reconciler) reconcile(att *models.Attendance) error {
	approved, err := r.ApprovedLeaveCount(att.EmployeeID, att.Month, att.Year)
	if err != nil {
		return err
	}
	unapproved := att.AbsentDays - approved
	if unapproved < 0 {
		unapproved = 0
	}
	att.ApprovedLeaves = approved
	att.UnapprovedAbsence = unapproved
	att.TotalDeduction = float64(unapproved) * att.DailyDeduction
	return nil
}

// GetAll returns every attendance record for the period, reconciled
// live.
func (r *Reconciler) GetAll(month, year int) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.DB.Where("month = ? AND year = ?", month, year).Find(&records).Error
	if err != nil {
		return nil, err
	}
	for i := range records {
		if err := r.reconcile(&records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// GetOne returns the employee's record for the period, reconciled
// live. A missing record is not an error; the second return is false.
func (r *Reconciler) GetOne(employeeID string, month, year int) (models.Attendance, bool, error) {
	var att models.Attendance
	err := r.DB.Where("employee_id = ? AND month = ? AND year = ?", employeeID, month, year).
		First(&att).Error
	if err == gorm.ErrRecordNotFound {
		return models.Attendance{}, false, nil
	}
	if err != nil {
		return models.Attendance{}, false, err
	}
	if err := r.reconcile(&att); err != nil {
		return models.Attendance{}, false, err
	}
	return att, true, nil
}
