package handlers

import (
	"encoding/hex"
	"io"
	"time"

	"hr_system/models"
	"hr_system/types"
	"hr_system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Placeholder until real CV scoring lands; every application gets it.
const placeholderAIScore = 85

type ApplyRequest struct {
	JobID          string `json:"job_id" validate:"required"`
	CandidateName  string `json:"candidate_name" validate:"required"`
	CandidateEmail string `json:"candidate_email" validate:"required,email"`
	CVURL          string `json:"cv_url" validate:"required"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Unviewed Viewed Shortlisted Rejected"`
}

func Apply(c *fiber.Ctx) error {
	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	app := models.Application{
		ID:             uuid.New().String(),
		JobID:          req.JobID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
		CVURL:          req.CVURL,
		AIScore:        placeholderAIScore,
		Status:         models.ApplicationPending,
		AppliedAt:      time.Now().UTC(),
	}
	if err := DB.Create(&app).Error; err != nil {
		utils.Logger.Error("Failed to create application", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Application Submitted",
		Data:    fiber.Map{"id": app.ID},
	})
}

// ApplyWithFile accepts a multipart CV upload. Only PDFs are allowed;
// the file is stored under a generated name and the application records
// its public URL.
func ApplyWithFile(c *fiber.Ctx) error {
	jobID := c.FormValue("job_id")
	candidateName := c.FormValue("candidate_name")
	candidateEmail := c.FormValue("candidate_email")
	if jobID == "" || candidateName == "" || candidateEmail == "" {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Var(candidateEmail, "email"); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if fileHeader.Header.Get("Content-Type") != "application/pdf" {
		return fail(c, types.CodeInvalidArgument, "Only PDF files are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Logger.Error("Failed to open upload", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrInternalError)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.Logger.Error("Failed to read upload", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrInternalError)
	}

	id := uuid.New()
	filename := hex.EncodeToString(id[:]) + ".pdf"
	cvURL, err := Files.Save(filename, data)
	if err != nil {
		utils.Logger.Error("Failed to store upload", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrInternalError)
	}

	app := models.Application{
		ID:             uuid.New().String(),
		JobID:          jobID,
		CandidateName:  candidateName,
		CandidateEmail: candidateEmail,
		CVURL:          cvURL,
		AIScore:        placeholderAIScore,
		Status:         models.ApplicationPending,
		AppliedAt:      time.Now().UTC(),
	}
	if err := DB.Create(&app).Error; err != nil {
		utils.Logger.Error("Failed to create application", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Application Submitted",
		Data:    fiber.Map{"id": app.ID, "cv_url": cvURL},
	})
}

func GetApplicationsByJob(c *fiber.Ctx) error {
	var apps []models.Application
	err := DB.Where("job_id = ?", c.Params("job_id")).Find(&apps).Error
	if err != nil {
		utils.Logger.Error("Failed to fetch applications", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Applications fetched successfully",
		Data:    apps,
	})
}

func UpdateApplicationStatus(c *fiber.Ctx) error {
	var req UpdateApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, "Invalid status value")
	}

	result := DB.Model(&models.Application{}).
		Where("id = ?", c.Params("id")).
		Update("status", req.Status)
	if result.Error != nil {
		utils.Logger.Error("Failed to update application status", zap.Error(result.Error))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}
	if result.RowsAffected == 0 {
		return fail(c, types.CodeNotFound, "Application not found")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Status updated",
		Data:    fiber.Map{"status": req.Status},
	})
}
