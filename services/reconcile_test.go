package services

import (
	"fmt"
	"strings"
	"testing"

	"hr_system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Leave{}, &models.Attendance{}))
	return NewReconciler(db)
}

func TestParseLeaveDate(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
		year  int
		month int
	}{
		{"2025-05-10T00:00:00Z", true, 2025, 5},
		{"2025-05-10T09:30:00+05:00", true, 2025, 5},
		{"2025-05-10T00:00:00", true, 2025, 5},
		{"2025-05-10", true, 2025, 5},
		{"  2025-05-10  ", true, 2025, 5},
		{"10/05/2025", false, 0, 0},
		{"not a date", false, 0, 0},
		{"", false, 0, 0},
	}

	for _, tc := range cases {
		parsed, ok := ParseLeaveDate(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		if tc.ok {
			assert.Equal(t, tc.year, parsed.Year(), "input %q", tc.input)
			assert.Equal(t, tc.month, int(parsed.Month()), "input %q", tc.input)
		}
	}
}

func TestApprovedLeaveCount(t *testing.T) {
	r := newTestReconciler(t)

	leaves := []models.Leave{
		// Counts: approved, starts in May 2025.
		{ID: "l1", EmployeeID: "EMP001", StartDate: "2025-05-10T00:00:00Z", EndDate: "2025-05-12T00:00:00Z", Status: models.LeaveApproved},
		// Counts once despite spanning into June: only the start month matters.
		{ID: "l2", EmployeeID: "EMP001", StartDate: "2025-05-28", EndDate: "2025-06-03", Status: models.LeaveApproved},
		// Skipped: approved but starts in April.
		{ID: "l3", EmployeeID: "EMP001", StartDate: "2025-04-30", Status: models.LeaveApproved},
		// Skipped: starts in May of a different year.
		{ID: "l4", EmployeeID: "EMP001", StartDate: "2024-05-10", Status: models.LeaveApproved},
		// Skipped: not approved.
		{ID: "l5", EmployeeID: "EMP001", StartDate: "2025-05-15", Status: models.LeavePending},
		// Skipped: different employee.
		{ID: "l6", EmployeeID: "EMP002", StartDate: "2025-05-15", Status: models.LeaveApproved},
		// Skipped silently: malformed date.
		{ID: "l7", EmployeeID: "EMP001", StartDate: "garbage", Status: models.LeaveApproved},
	}
	for _, leave := range leaves {
		require.NoError(t, r.DB.Create(&leave).Error)
	}

	count, err := r.ApprovedLeaveCount("EMP001", 5, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = r.ApprovedLeaveCount("EMP001", 6, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "multi-month leave must not count toward its end month")

	count, err = r.ApprovedLeaveCount("EMP003", 5, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpsertDerivation(t *testing.T) {
	r := newTestReconciler(t)

	require.NoError(t, r.DB.Create(&models.Leave{
		ID: "l1", EmployeeID: "EMP001", StartDate: "2025-05-10", Status: models.LeaveApproved,
	}).Error)

	att, created, err := r.Upsert(UpsertInput{
		EmployeeID:     "EMP001",
		Month:          5,
		Year:           2025,
		AbsentDays:     3,
		DailyDeduction: 2500,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, att.ApprovedLeaves)
	assert.Equal(t, 2, att.UnapprovedAbsence)
	assert.Equal(t, 5000.0, att.TotalDeduction)
	assert.Equal(t, 2, att.UnpaidDays)

	t.Run("Floors At Zero", func(t *testing.T) {
		att, _, err := r.Upsert(UpsertInput{
			EmployeeID:     "EMP001",
			Month:          5,
			Year:           2025,
			AbsentDays:     0,
			DailyDeduction: 2500,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, att.UnapprovedAbsence)
		assert.Equal(t, 0.0, att.TotalDeduction)
		assert.Equal(t, 0, att.UnpaidDays)
	})

	t.Run("Second Upsert Updates In Place", func(t *testing.T) {
		att, created, err := r.Upsert(UpsertInput{
			EmployeeID:     "EMP001",
			Month:          5,
			Year:           2025,
			AbsentDays:     6,
			PaidLeaves:     2,
			DailyDeduction: 1000,
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, 5, att.UnapprovedAbsence)
		assert.Equal(t, 5000.0, att.TotalDeduction)
		assert.Equal(t, 3, att.UnpaidDays) // 6 - 1 approved - 2 paid

		var count int64
		r.DB.Model(&models.Attendance{}).Count(&count)
		assert.Equal(t, int64(1), count)
	})
}

func TestGetOneMissing(t *testing.T) {
	r := newTestReconciler(t)

	_, found, err := r.GetOne("EMP001", 5, 2025)
	require.NoError(t, err)
	assert.False(t, found)
}
