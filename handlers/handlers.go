package handlers

import (
	"hr_system/services"
	"hr_system/types"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	DB         *gorm.DB
	Files      services.FileStore
	Reconciler *services.Reconciler

	validate = validator.New()
)

func InitHandlers(db *gorm.DB, files services.FileStore) {
	DB = db
	Files = files
	Reconciler = services.NewReconciler(db)
}

// fail sends a structured error response; the HTTP status follows the
// machine code.
func fail(c *fiber.Ctx, code, message string) error {
	return c.Status(types.StatusForCode(code)).JSON(types.APIResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
