package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type ContactController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewContactController(db *gorm.DB, logger *logrus.Logger) *ContactController {
	return &ContactController{
		DB:     db,
		Logger: logger,
	}
}

// CreateContact records an inbound inquiry from the public site and notifies
// the admin inbox.
func (cc *ContactController) CreateContact(c *fiber.Ctx) error {
	var input struct {
		Name    string `json:"name" validate:"required,max=100"`
		Email   string `json:"email" validate:"omitempty,email"`
		Phone   string `json:"phone" validate:"required,max=15"`
		Message string `json:"message" validate:"omitempty,max=2000"`
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

	contact := models.Contact{
		Name:    input.Name,
		Email:   strings.ToLower(input.Email),
		Phone:   input.Phone,
		Message: input.Message,
		Status:  models.ContactStatusNew,
	}

	if err := cc.DB.Create(&contact).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create contact", err)
	}

	go utils.NotifyContactInquiry(&contact)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(contact))
}

// GetAllContacts returns paginated contacts with filters
func (cc *ContactController) GetAllContacts(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	status := c.Query("status")
	search := c.Query("search")

	query := cc.DB.Model(&models.Contact{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count contacts", err)
	}

	var contacts []models.Contact
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&contacts).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch contacts", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: contacts,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// UpdateContact updates inquiry details. Moving to NotInterested requires a
// reason; moving anywhere else clears it.
func (cc *ContactController) UpdateContact(c *fiber.Ctx) error {
	var input struct {
		Name    string `json:"name" validate:"omitempty,max=100"`
		Email   string `json:"email" validate:"omitempty,email"`
		Phone   string `json:"phone" validate:"omitempty,max=15"`
		Message string `json:"message" validate:"omitempty,max=2000"`
		Status  string `json:"status" validate:"omitempty"`
		Reason  string `json:"reason" validate:"omitempty,max=500"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var contact models.Contact
	if err := cc.DB.First(&contact, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Contact not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch contact", err)
	}

	if input.Status != "" {
		status := models.ContactStatus(input.Status)
		if !status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid contact status", nil)
		}
		if status == models.ContactStatusNotInterested && strings.TrimSpace(input.Reason) == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "reason is required when status is NotInterested", nil)
		}
		contact.Status = status
		if status == models.ContactStatusNotInterested {
			contact.Reason = input.Reason
		} else {
			contact.Reason = ""
		}
	}
	if input.Name != "" {
		contact.Name = input.Name
	}
	if input.Email != "" {
		contact.Email = strings.ToLower(input.Email)
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	if input.Message != "" {
		contact.Message = input.Message
	}

	if err := cc.DB.Save(&contact).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update contact", err)
	}

	return c.JSON(utils.SuccessResponse(contact))
}

// DeleteContact deletes an inquiry
func (cc *ContactController) DeleteContact(c *fiber.Ctx) error {
	result := cc.DB.Where("id = ?", c.Params("id")).Delete(&models.Contact{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete contact", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Contact not found", nil)
	}

	var total int64
	cc.DB.Model(&models.Contact{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Contact deleted successfully",
		"total":   total,
	}))
}
