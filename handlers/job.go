package handlers

import (
	"time"

	"hr_system/models"
	"hr_system/types"
	"hr_system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateJobRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location"`
	SalaryRange  string   `json:"salary_range"`
}

func CreateJob(c *fiber.Ctx) error {
	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	job := models.Job{
		ID:           uuid.New().String(),
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryRange:  req.SalaryRange,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if job.Location == "" {
		job.Location = "Karachi"
	}
	if job.SalaryRange == "" {
		job.SalaryRange = "Not Disclosed"
	}

	if err := DB.Create(&job).Error; err != nil {
		utils.Logger.Error("Failed to create job", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Job Posted",
		Data:    fiber.Map{"id": job.ID},
	})
}

// GetActiveJobs lists postings with is_active=true. There is no delete;
// postings are hidden by flipping the flag.
func GetActiveJobs(c *fiber.Ctx) error {
	var jobs []models.Job
	if err := DB.Where("is_active = ?", true).Find(&jobs).Error; err != nil {
		utils.Logger.Error("Failed to fetch jobs", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Jobs fetched successfully",
		Data:    jobs,
	})
}
