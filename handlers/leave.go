package handlers

import (
	"hr_system/models"
	"hr_system/types"
	"hr_system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RequestLeaveRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	LeaveType  string `json:"leave_type" validate:"omitempty,oneof=Sick Casual Annual"`
}

type UpdateLeaveStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=Pending Approved Rejected Unapproved"`
	AdminComments *string `json:"admin_comments"`
}

// RequestLeave files a leave for an employee. Status always starts
// Pending regardless of the payload.
func RequestLeave(c *fiber.Ctx) error {
	var req RequestLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	leaveType := req.LeaveType
	if leaveType == "" {
		leaveType = "Casual"
	}
	leave := models.Leave{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
		LeaveType:  leaveType,
		Status:     models.LeavePending,
	}
	if err := DB.Create(&leave).Error; err != nil {
		utils.Logger.Error("Failed to create leave", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave Requested",
		Data:    fiber.Map{"id": leave.ID},
	})
}

func GetEmployeeLeaves(c *fiber.Ctx) error {
	var leaves []models.Leave
	err := DB.Where("employee_id = ?", c.Params("id")).Find(&leaves).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch leaves", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leaves fetched successfully",
		Data:    leaves,
	})
}

func GetAllLeaves(c *fiber.Ctx) error {
	var leaves []models.Leave
	if err := DB.Find(&leaves).Error; err != nil {
		utils.Logger.Error("Failed to fetch leaves", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leaves fetched successfully",
		Data:    leaves,
	})
}

// UpdateLeaveStatus is the admin approve/reject action. An invalid
// status leaves the record untouched.
func UpdateLeaveStatus(c *fiber.Ctx) error {
	var req UpdateLeaveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, "Invalid status value")
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.AdminComments != nil {
		updates["admin_comments"] = *req.AdminComments
	}

	result := DB.Model(&models.Leave{}).
		Where("id = ?", c.Params("id")).
		Updates(updates)
	if result.Error != nil {
		utils.Logger.Error("Failed to update leave status", zap.Error(result.Error))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}
	if result.RowsAffected == 0 {
		return fail(c, types.CodeNotFound, "Leave not found")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Status updated",
		Data:    fiber.Map{"status": req.Status},
	})
}
