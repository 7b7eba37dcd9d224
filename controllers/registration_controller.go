package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type RegistrationController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewRegistrationController(db *gorm.DB, logger *logrus.Logger) *RegistrationController {
	return &RegistrationController{
		DB:     db,
		Logger: logger,
	}
}

// CreateRegistration records a funnel signup tied to a leader code.
func (rc *RegistrationController) CreateRegistration(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name" validate:"required,max=100"`
		Email      string `json:"email" validate:"omitempty,email"`
		Phone      string `json:"phone" validate:"required,max=15"`
		LeaderCode string `json:"leaderCode" validate:"omitempty,max=20"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}
	if err := utils.ValidateEmail(input.Email); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	if input.LeaderCode != "" {
		var leader models.User
		if err := rc.DB.Where("leader_code = ? AND status = ?", input.LeaderCode, models.UserStatusActive).First(&leader).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeInvalidLeader, "Invalid leader code", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to validate leader code", err)
		}
	}

	registration := models.Registration{
		Name:       input.Name,
		Email:      strings.ToLower(input.Email),
		Phone:      input.Phone,
		LeaderCode: input.LeaderCode,
		Status:     models.LeadStatusNew,
	}

	if err := rc.DB.Create(&registration).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create registration", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(registration))
}

// GetAllRegistrations returns paginated registrations with filters
func (rc *RegistrationController) GetAllRegistrations(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	status := c.Query("status")
	leaderCode := c.Query("leaderCode")
	search := c.Query("search")

	query := rc.DB.Model(&models.Registration{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if leaderCode != "" {
		query = query.Where("leader_code = ?", leaderCode)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count registrations", err)
	}

	var registrations []models.Registration
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&registrations).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch registrations", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: registrations,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// UpdateRegistration updates a signup. NotInterested requires a reason.
func (rc *RegistrationController) UpdateRegistration(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name" validate:"omitempty,max=100"`
		Email      string `json:"email" validate:"omitempty,email"`
		Phone      string `json:"phone" validate:"omitempty,max=15"`
		LeaderCode string `json:"leaderCode" validate:"omitempty,max=20"`
		Status     string `json:"status" validate:"omitempty"`
		Reason     string `json:"reason" validate:"omitempty,max=500"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var registration models.Registration
	if err := rc.DB.First(&registration, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Registration not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch registration", err)
	}

	if input.Status != "" {
		status := models.LeadStatus(input.Status)
		if !status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid registration status", nil)
		}
		if status == models.LeadStatusNotInterested && strings.TrimSpace(input.Reason) == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "reason is required when status is NotInterested", nil)
		}
		registration.Status = status
		if status == models.LeadStatusNotInterested {
			registration.Reason = input.Reason
		} else {
			registration.Reason = ""
		}
	}
	if input.Name != "" {
		registration.Name = input.Name
	}
	if input.Email != "" {
		registration.Email = strings.ToLower(input.Email)
	}
	if input.Phone != "" {
		registration.Phone = input.Phone
	}
	if input.LeaderCode != "" {
		registration.LeaderCode = input.LeaderCode
	}

	if err := rc.DB.Save(&registration).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update registration", err)
	}

	return c.JSON(utils.SuccessResponse(registration))
}

// DeleteRegistration deletes a signup
func (rc *RegistrationController) DeleteRegistration(c *fiber.Ctx) error {
	result := rc.DB.Where("id = ?", c.Params("id")).Delete(&models.Registration{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete registration", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Registration not found", nil)
	}

	var total int64
	rc.DB.Model(&models.Registration{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Registration deleted successfully",
		"total":   total,
	}))
}
