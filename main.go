package main

import (
	"log"

	"hr_system/config"
	"hr_system/handlers"
	"hr_system/middleware"
	"hr_system/models"
	"hr_system/services"
	"hr_system/types"
	"hr_system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func initServices() error {
	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(
		&models.Employee{},
		&models.Job{},
		&models.Application{},
		&models.Leave{},
		&models.Attendance{},
	)
	if err != nil {
		return err
	}

	files, err := services.NewLocalFileStore(config.AppConfig.UploadDir, "/static")
	if err != nil {
		return err
	}

	handlers.InitHandlers(db, files)
	return nil
}

func registerRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(types.APIResponse{
			Success: true,
			Message: "HR System Backend is Fully Ready!",
		})
	})

	employee := app.Group("/employee")
	employee.Post("/add", handlers.AddEmployee)
	employee.Post("/signup", handlers.Signup)
	employee.Post("/login", handlers.Login)
	employee.Get("/all", handlers.GetAllEmployees)
	employee.Get("/me", middleware.RequireAuth, handlers.GetCurrentEmployee)
	employee.Get("/:code", handlers.GetEmployee)
	employee.Patch("/:code", handlers.UpdateEmployee)

	jobs := app.Group("/jobs")
	jobs.Post("/create", handlers.CreateJob)
	jobs.Get("/all", handlers.GetActiveJobs)

	applications := app.Group("/applications")
	applications.Post("/apply", handlers.Apply)
	applications.Post("/apply-file", handlers.ApplyWithFile)
	applications.Patch("/:id/status", handlers.UpdateApplicationStatus)
	applications.Get("/:job_id", handlers.GetApplicationsByJob)

	leaves := app.Group("/leaves")
	leaves.Post("/request", handlers.RequestLeave)
	leaves.Get("/employee/:id", handlers.GetEmployeeLeaves)
	leaves.Get("/all", handlers.GetAllLeaves)
	leaves.Patch("/status/:id", handlers.UpdateLeaveStatus)

	attendance := app.Group("/attendance")
	attendance.Get("/all", handlers.GetAllAttendance)
	attendance.Get("/employee/:id", handlers.GetEmployeeAttendance)
	attendance.Post("/upsert", handlers.UpsertAttendance)
}

func main() {
	config.LoadConfig()
	utils.InitLogger()
	defer utils.Logger.Sync()

	if err := initServices(); err != nil {
		log.Fatal("Failed to initialize services:", err)
	}

	app := fiber.New()
	app.Use(cors.New())
	app.Static("/static", config.AppConfig.UploadDir)

	registerRoutes(app)

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
