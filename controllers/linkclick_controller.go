package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/middleware"
	"crmdesk/models"
	"crmdesk/utils"
)

type LinkclickController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
	Feed   *LinkclickFeed
}

func NewLinkclickController(db *gorm.DB, logger *logrus.Logger, feed *LinkclickFeed) *LinkclickController {
	return &LinkclickController{
		DB:     db,
		Logger: logger,
		Feed:   feed,
	}
}

// CreateLinkclick records a referral-link visit. Public; called by the funnel
// landing page on mount.
func (lc *LinkclickController) CreateLinkclick(c *fiber.Ctx) error {
	var input struct {
		LeaderCode string `json:"leaderCode" validate:"omitempty,max=20"`
		PortalName string `json:"portalName" validate:"required,max=100"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	click := models.Linkclick{
		LeaderCode: input.LeaderCode,
		PortalName: input.PortalName,
		Status:     models.LinkclickInComplete,
		IPAddress:  c.IP(),
		UserAgent:  c.Get("User-Agent"),
	}

	if err := lc.DB.Create(&click).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to record link click", err)
	}

	middleware.RecordLinkClick()
	lc.Feed.Broadcast(&click)

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(click))
}

// GetAllLinkclicks returns paginated link clicks with filters
func (lc *LinkclickController) GetAllLinkclicks(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	status := c.Query("status")
	leaderCode := c.Query("leaderCode")
	portalName := c.Query("portalName")

	query := lc.DB.Model(&models.Linkclick{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if leaderCode != "" {
		query = query.Where("leader_code = ?", leaderCode)
	}
	if portalName != "" {
		query = query.Where("portal_name = ?", portalName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count link clicks", err)
	}

	var clicks []models.Linkclick
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&clicks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch link clicks", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: clicks,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// UpdateLinkclick flips a click between complete and inComplete.
func (lc *LinkclickController) UpdateLinkclick(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	status := models.LinkclickStatus(input.Status)
	if !status.Valid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid link click status", nil)
	}

	var click models.Linkclick
	if err := lc.DB.First(&click, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Link click not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch link click", err)
	}

	click.Status = status
	if err := lc.DB.Save(&click).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update link click", err)
	}

	return c.JSON(utils.SuccessResponse(click))
}

// DeleteLinkclick deletes a click record
func (lc *LinkclickController) DeleteLinkclick(c *fiber.Ctx) error {
	result := lc.DB.Where("id = ?", c.Params("id")).Delete(&models.Linkclick{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete link click", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Link click not found", nil)
	}

	var total int64
	lc.DB.Model(&models.Linkclick{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Link click deleted successfully",
		"total":   total,
	}))
}
