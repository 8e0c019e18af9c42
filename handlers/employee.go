package handlers

import (
	"time"

	"hr_system/config"
	"hr_system/models"
	"hr_system/types"
	"hr_system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AddEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,min=4"`
	CNIC         string  `json:"cnic" validate:"required,len=13,numeric"`
	FullName     string  `json:"full_name"`
	Role         string  `json:"role" validate:"omitempty,oneof=Admin HR Employee"`
	Salary       float64 `json:"salary"`
	Mobile       string  `json:"mobile"`
}

type SignupRequest struct {
	EmployeeCode string  `json:"employee_code" validate:"required,min=4"`
	CNIC         string  `json:"cnic" validate:"required,len=13,numeric"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required"`
	FullName     string  `json:"full_name" validate:"required"`
	Mobile       string  `json:"mobile"`
	Role         string  `json:"role" validate:"omitempty,oneof=Admin HR Employee"`
	Salary       float64 `json:"salary"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func createAccessToken(emp *models.Employee) (string, error) {
	expiry := time.Duration(config.AppConfig.TokenExpiryMinutes) * time.Minute
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  emp.Email,
		"role": emp.Role,
		"id":   emp.ID,
		"exp":  time.Now().Add(expiry).Unix(),
	})
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// AddEmployee enrolls a bare record (no email, no password). The
// employee activates it later through signup.
func AddEmployee(c *fiber.Ctx) error {
	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, "CNIC must be exactly 13 digits and employee_code at least 4 characters")
	}

	var existing models.Employee
	err := DB.Where("cnic = ? OR employee_code = ?", req.CNIC, req.EmployeeCode).
		First(&existing).Error
	if err == nil {
		return fail(c, types.CodeConflict, "Employee with this CNIC or employee code already exists")
	}
	if err != gorm.ErrRecordNotFound {
		utils.Logger.Error("Failed to check existing employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}
	employee := models.Employee{
		ID:              uuid.New().String(),
		EmployeeCode:    req.EmployeeCode,
		CNIC:            req.CNIC,
		FullName:        req.FullName,
		Role:            role,
		Salary:          req.Salary,
		Mobile:          req.Mobile,
		JoinedAt:        time.Now().UTC(),
		PaidLeavesTotal: 20,
	}
	if err := DB.Create(&employee).Error; err != nil {
		utils.Logger.Error("Failed to create employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee added successfully",
		Data:    fiber.Map{"id": employee.ID},
	})
}

// Signup completes a record enrolled by admin. The (code, cnic) pair
// must match an existing record that has not signed up yet.
func Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	var employee models.Employee
	err := DB.Where("employee_code = ? AND cnic = ?", req.EmployeeCode, req.CNIC).
		First(&employee).Error
	if err == gorm.ErrRecordNotFound {
		return fail(c, types.CodeForbidden, "No enrolled employee matches this code and CNIC")
	}
	if err != nil {
		utils.Logger.Error("Failed to look up employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	if employee.Email != "" && employee.Password != "" {
		return fail(c, types.CodeConflict, "Employee already signed up")
	}

	var other models.Employee
	err = DB.Where("email = ? AND id <> ?", req.Email, employee.ID).First(&other).Error
	if err == nil {
		return fail(c, types.CodeConflict, "Email already exists!")
	}
	if err != gorm.ErrRecordNotFound {
		utils.Logger.Error("Failed to check email uniqueness", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Logger.Error("Failed to hash password", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrInternalError)
	}

	employee.Email = req.Email
	employee.Password = string(hashed)
	employee.FullName = req.FullName
	if req.Mobile != "" {
		employee.Mobile = req.Mobile
	}
	if req.Role != "" {
		employee.Role = req.Role
	}
	if req.Salary > 0 {
		employee.Salary = req.Salary
	}

	if err := DB.Save(&employee).Error; err != nil {
		utils.Logger.Error("Failed to complete signup", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee created successfully",
		Data:    fiber.Map{"id": employee.ID},
	})
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}
	if err := validate.Struct(req); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	var employee models.Employee
	err := DB.Where("email = ? AND email <> ''", req.Email).First(&employee).Error
	if err == gorm.ErrRecordNotFound {
		return fail(c, types.CodeNotFound, "User not found")
	}
	if err != nil {
		utils.Logger.Error("Failed to look up employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(req.Password)) != nil {
		return fail(c, types.CodeUnauthorized, "Incorrect Password")
	}

	token, err := createAccessToken(&employee)
	if err != nil {
		utils.Logger.Error("Failed to sign token", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrInternalError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Login successful",
		Data: fiber.Map{
			"access_token":  token,
			"token_type":    "bearer",
			"user_role":     employee.Role,
			"user_name":     employee.FullName,
			"employee_id":   employee.ID,
			"employee_code": employee.EmployeeCode,
			"salary":        employee.Salary,
		},
	})
}

func GetAllEmployees(c *fiber.Ctx) error {
	var employees []models.Employee
	if err := DB.Find(&employees).Error; err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employees fetched successfully",
		Data:    employees,
	})
}

// findEmployee resolves an employee by code first, internal id second.
func findEmployee(codeOrID string) (models.Employee, error) {
	var employee models.Employee
	err := DB.Where("employee_code = ?", codeOrID).First(&employee).Error
	if err == gorm.ErrRecordNotFound {
		err = DB.Where("id = ?", codeOrID).First(&employee).Error
	}
	return employee, err
}

func GetEmployee(c *fiber.Ctx) error {
	employee, err := findEmployee(c.Params("code"))
	if err == gorm.ErrRecordNotFound {
		return fail(c, types.CodeNotFound, "Employee not found")
	}
	if err != nil {
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee fetched successfully",
		Data:    employee,
	})
}

// GetCurrentEmployee returns the record of the authenticated caller.
// Mounted behind RequireAuth.
func GetCurrentEmployee(c *fiber.Ctx) error {
	id, _ := c.Locals("employee_id").(string)

	var employee models.Employee
	err := DB.Where("id = ?", id).First(&employee).Error
	if err == gorm.ErrRecordNotFound {
		return fail(c, types.CodeNotFound, "Employee not found")
	}
	if err != nil {
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee fetched successfully",
		Data:    employee,
	})
}

// Fields a PATCH may change. Everything else in the payload is
// silently dropped.
var mutableEmployeeFields = map[string]string{
	"full_name": "full_name",
	"email":     "email",
	"mobile":    "mobile",
}

func UpdateEmployee(c *fiber.Ctx) error {
	var patch map[string]interface{}
	if err := c.BodyParser(&patch); err != nil {
		return fail(c, types.CodeInvalidArgument, types.ErrInvalidInput)
	}

	employee, err := findEmployee(c.Params("code"))
	if err == gorm.ErrRecordNotFound {
		return fail(c, types.CodeNotFound, "Employee not found")
	}
	if err != nil {
		utils.Logger.Error("Failed to fetch employee", zap.Error(err))
		return fail(c, types.CodeInternal, types.ErrDatabaseError)
	}

	updates := map[string]interface{}{}
	for field, column := range mutableEmployeeFields {
		if value, ok := patch[field]; ok {
			updates[column] = value
		}
	}

	if len(updates) > 0 {
		if err := DB.Model(&employee).Updates(updates).Error; err != nil {
			utils.Logger.Error("Failed to update employee", zap.Error(err))
			return fail(c, types.CodeInternal, types.ErrDatabaseError)
		}
		if err := DB.Where("id = ?", employee.ID).First(&employee).Error; err != nil {
			utils.Logger.Error("Failed to reload employee", zap.Error(err))
			return fail(c, types.CodeInternal, types.ErrDatabaseError)
		}
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
		Data:    employee,
	})
}
