package controller

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type UserController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewUserController(db *gorm.DB, logger *logrus.Logger) *UserController {
	return &UserController{
		DB:     db,
		Logger: logger,
	}
}

type userInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,max=15"`
	Password      string `json:"password" validate:"required,min=8"`
	Role          string `json:"role" validate:"omitempty,oneof=sales developer admin"`
	Status        string `json:"status" validate:"omitempty,oneof=active inactive"`
	LeaderCode    string `json:"leaderCode" validate:"omitempty,max=20"`
	Income        int    `json:"income" validate:"omitempty,min=0"`
	BankName      string `json:"bankName" validate:"omitempty,max=100"`
	AccountNumber string `json:"accountNumber" validate:"omitempty,max=30"`
	IFSC          string `json:"ifsc" validate:"omitempty,max=15"`
}

// CreateUser creates a leader/team account from the admin users page.
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var input userInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var existing models.User
	if err := uc.DB.Where("email = ?", strings.ToLower(input.Email)).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "User with this email already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to hash password", err)
	}

	user := models.User{
		Name:          input.Name,
		Email:         strings.ToLower(input.Email),
		Phone:         input.Phone,
		PasswordHash:  string(hash),
		Role:          models.RoleSales,
		Status:        models.UserStatusActive,
		LeaderCode:    input.LeaderCode,
		Income:        input.Income,
		BankName:      input.BankName,
		AccountNumber: input.AccountNumber,
		IFSC:          input.IFSC,
	}
	if input.Role != "" {
		user.Role = models.UserRole(input.Role)
	}
	if input.Status != "" {
		user.Status = models.UserStatus(input.Status)
	}

	if user.LeaderCode != "" {
		var clash models.User
		if err := uc.DB.Where("leader_code = ?", user.LeaderCode).First(&clash).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "Leader code already in use", nil)
		}
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create user", err)
	}

	// Assign a stable code when the admin left it blank
	if user.LeaderCode == "" {
		user.LeaderCode = fmt.Sprintf("LC%d", 100+user.ID)
		if err := uc.DB.Model(&user).Update("leader_code", user.LeaderCode).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to assign leader code", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(user))
}

// GetAllUsers returns a paginated, filtered user list.
func (uc *UserController) GetAllUsers(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	role := c.Query("role")
	status := c.Query("status")
	search := c.Query("search")

	query := uc.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ? OR leader_code ILIKE ?", like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count users", err)
	}

	var users []models.User
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch users", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: users,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// GetUser returns a single user by ID.
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	var user models.User
	if err := uc.DB.First(&user, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "User not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch user", err)
	}
	return c.JSON(utils.SuccessResponse(user))
}

// UpdateUser updates account details. Password only changes when a new one is sent.
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	var input struct {
		Name          string `json:"name" validate:"omitempty,max=100"`
		Email         string `json:"email" validate:"omitempty,email"`
		Phone         string `json:"phone" validate:"omitempty,max=15"`
		Password      string `json:"password" validate:"omitempty,min=8"`
		Role          string `json:"role" validate:"omitempty,oneof=sales developer admin"`
		Status        string `json:"status" validate:"omitempty,oneof=active inactive"`
		LeaderCode    string `json:"leaderCode" validate:"omitempty,max=20"`
		Income        *int   `json:"income" validate:"omitempty"`
		BankName      string `json:"bankName" validate:"omitempty,max=100"`
		AccountNumber string `json:"accountNumber" validate:"omitempty,max=30"`
		IFSC          string `json:"ifsc" validate:"omitempty,max=15"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var user models.User
	if err := uc.DB.First(&user, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "User not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch user", err)
	}

	if input.Email != "" && strings.ToLower(input.Email) != user.Email {
		var existing models.User
		if err := uc.DB.Where("email = ?", strings.ToLower(input.Email)).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "User with this email already exists", nil)
		}
		user.Email = strings.ToLower(input.Email)
	}
	if input.LeaderCode != "" && input.LeaderCode != user.LeaderCode {
		var existing models.User
		if err := uc.DB.Where("leader_code = ?", input.LeaderCode).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "Leader code already in use", nil)
		}
		user.LeaderCode = input.LeaderCode
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.Role != "" {
		user.Role = models.UserRole(input.Role)
	}
	if input.Status != "" {
		user.Status = models.UserStatus(input.Status)
	}
	if input.Income != nil {
		user.Income = *input.Income
	}
	if input.BankName != "" {
		user.BankName = input.BankName
	}
	if input.AccountNumber != "" {
		user.AccountNumber = input.AccountNumber
	}
	if input.IFSC != "" {
		user.IFSC = input.IFSC
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update user", err)
	}

	return c.JSON(utils.SuccessResponse(user))
}

// DeleteUser deletes a single user.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	result := uc.DB.Where("id = ?", c.Params("id")).Delete(&models.User{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete user", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "User not found", nil)
	}

	var total int64
	uc.DB.Model(&models.User{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "User deleted successfully",
		"total":   total,
	}))
}

// DeleteManyUsers removes the bulk-selected users from the admin page.
func (uc *UserController) DeleteManyUsers(c *fiber.Ctx) error {
	var input struct {
		IDs []uint `json:"ids" validate:"required,min=1"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	result := uc.DB.Where("id IN ?", input.IDs).Delete(&models.User{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete users", result.Error)
	}

	var total int64
	uc.DB.Model(&models.User{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Users deleted successfully",
		"deleted": result.RowsAffected,
		"total":   total,
	}))
}

// ImportUsers imports users from CSV using an admin-supplied column mapping
// (target field -> source header). Rows without an email are skipped.
func (uc *UserController) ImportUsers(c *fiber.Ctx) error {
	mapping, err := utils.ParseColumnMapping(c.FormValue("mapping"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, err.Error(), nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "File upload error", err)
	}
	if file.Size > 5<<20 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "File too large (max 5MB)", nil)
	}

	src, err := file.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to open file", err)
	}
	defer src.Close()

	records, err := csv.NewReader(src).ReadAll()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Failed to parse CSV file", err)
	}
	if len(records) < 2 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "CSV file must have at least a header and one row", nil)
	}

	header := records[0]
	rows := records[1:]

	batchSize := 100
	var users []models.User
	imported, skipped := 0, 0

	flush := func() {
		if len(users) == 0 {
			return
		}
		if err := uc.DB.Create(&users).Error; err != nil {
			uc.Logger.WithError(err).Error("failed to import batch of users")
		} else {
			imported += len(users)
		}
		users = nil
	}

	for _, row := range rows {
		data := utils.MapRow(header, row, mapping)

		email := strings.ToLower(strings.TrimSpace(data["email"]))
		if email == "" {
			skipped++
			continue
		}

		var existing models.User
		if err := uc.DB.Where("email = ?", email).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		// Imported accounts start with the phone number as password; admins
		// rotate these on handover.
		password := data["password"]
		if password == "" {
			password = data["phone"]
		}
		if password == "" {
			skipped++
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			skipped++
			continue
		}

		user := models.User{
			Name:          data["name"],
			Email:         email,
			Phone:         data["phone"],
			PasswordHash:  string(hash),
			Role:          models.RoleSales,
			Status:        models.UserStatusActive,
			LeaderCode:    data["leaderCode"],
			BankName:      data["bankName"],
			AccountNumber: data["accountNumber"],
			IFSC:          data["ifsc"],
		}
		if r := models.UserRole(data["role"]); r.Valid() {
			user.Role = r
		}

		users = append(users, user)
		if len(users) >= batchSize {
			flush()
		}
	}
	flush()

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message":    "Users imported successfully",
		"total_rows": len(rows),
		"imported":   imported,
		"skipped":    skipped,
	}))
}

// ExportUsers exports every user matching the current filters to CSV.
func (uc *UserController) ExportUsers(c *fiber.Ctx) error {
	role := c.Query("role")
	status := c.Query("status")

	query := uc.DB.Model(&models.User{})
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var users []models.User
	if err := query.Order("id").Find(&users).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch users", err)
	}

	header := []string{"name", "email", "phone", "role", "status", "leaderCode", "income", "registeredClientCount"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.Name,
			u.Email,
			u.Phone,
			string(u.Role),
			string(u.Status),
			u.LeaderCode,
			fmt.Sprintf("%d", u.Income),
			fmt.Sprintf("%d", u.RegisteredClientCount),
		})
	}

	return utils.WriteCSV(c, "users", status, header, rows)
}

// ValidateLeaderCode confirms a leader code exists and belongs to an active
// leader. Used by the public referral funnel.
func (uc *UserController) ValidateLeaderCode(c *fiber.Ctx) error {
	code := c.Params("code")

	var user models.User
	if err := uc.DB.Where("leader_code = ? AND status = ?", code, models.UserStatusActive).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeInvalidLeader, "Invalid leader code", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to validate leader code", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"leaderCode": user.LeaderCode,
		"leaderName": user.Name,
	}))
}
