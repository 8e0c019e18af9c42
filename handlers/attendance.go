package handlers

import (
	"hr_system/services"
	"hr_system/types"
	"hr_system/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UpsertAttendanceRequest struct {
	EmployeeID     string  `json:"employee_id" validate:"required"`
	Month          int     `json:"month" validate:"required,min=1,max=12"`
	Year           int     `json:"year" validate:"required,min=2000"`
	AbsentDays     int     `json:"absent_days" validate:"min=0"`
	PaidLeaves     int     `json:"paid_leaves" validate:"min=0"`
	DailyDeduction float64 `json:"daily_deduction" validate:"min=0"`
}

// UpsertAttendance writes the monthly summary for one employee.
// approved_leaves and everything derived from it are recomputed
// server-side; client-supplied values for them are ignored.
func UpsertAttendance(c *fiber.Ctx) error {
	var req UpsertAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	att, created, err := Reconciler.Upsert(services.UpsertInput{
		EmployeeID:     req.EmployeeID,
		Month:          req.Month,
		Year:           req.Year,
		AbsentDays:     req.AbsentDays,
		PaidLeaves:     req.PaidLeaves,
		DailyDeduction: req.DailyDeduction,
	})
	if err != nil {
		utils.Logger.Error("Failed to upsert attendance", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	message := "Attendance updated"
	if created {
		message = "Attendance created"
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: message,
		Data:    att,
	})
}

// GetAllAttendance returns the period's records reconciled against the
// current leave ledger, not the stored snapshot.
func GetAllAttendance(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	if month < 1 || month > 12 || year < 2000 {
		return fail(c, types.CodeInvalidArgument, "month and year query parameters are required")
	}

	records, err := Reconciler.GetAll(month, year)
	if err != nil {
		utils.Logger.Error("Failed to fetch attendance", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Attendance fetched successfully",
		Data:    records,
	})
}

// GetEmployeeAttendance returns one employee's reconciled record, or
// null data when none exists for the period.
func GetEmployeeAttendance(c *fiber.Ctx) error {
	month := c.QueryInt("month")
	year := c.QueryInt("year")
	if month < 1 || month > 12 || year < 2000 {
		return fail(c, types.CodeInvalidArgument, "month and year query parameters are required")
	}

	att, found, err := Reconciler.GetOne(c.Params("id"), month, year)
	if err != nil {
		utils.Logger.Error("Failed to fetch attendance", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}
	if !found {
		return c.JSON(types.APIResponse{
			Success: true,
			Message: "No attendance record for this period",
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Attendance fetched successfully",
		Data:    att,
	})
}
