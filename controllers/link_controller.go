package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type LinkController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewLinkController(db *gorm.DB, logger *logrus.Logger) *LinkController {
	return &LinkController{
		DB:     db,
		Logger: logger,
	}
}

// CreateLink registers a trading portal destination under a unique slug.
func (lc *LinkController) CreateLink(c *fiber.Ctx) error {
	var input struct {
		PortalName string  `json:"portalName" validate:"required,max=100"`
		URL        string  `json:"url" validate:"required,url,max=500"`
		Commission float64 `json:"commission" validate:"omitempty,gte=0"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var existing models.PortalLink
	if err := lc.DB.Where("portal_name = ?", input.PortalName).First(&existing).Error; err == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "Portal name already in use", nil)
	}

	link := models.PortalLink{
		PortalName: input.PortalName,
		URL:        input.URL,
		Commission: input.Commission,
	}

	if err := lc.DB.Create(&link).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create link", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(link))
}

// GetAllLinks returns paginated portal links
func (lc *LinkController) GetAllLinks(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	search := c.Query("search")

	query := lc.DB.Model(&models.PortalLink{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("portal_name ILIKE ? OR url ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count links", err)
	}

	var links []models.PortalLink
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&links).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch links", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: links,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// GetLinkBySlug resolves a portal slug to its destination URL. Public; the
// funnel uses it to build the post-registration redirect.
func (lc *LinkController) GetLinkBySlug(c *fiber.Ctx) error {
	var link models.PortalLink
	if err := lc.DB.Where("portal_name = ?", c.Params("slug")).First(&link).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Link not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch link", err)
	}
	return c.JSON(utils.SuccessResponse(link))
}

// UpdateLink edits a portal link
func (lc *LinkController) UpdateLink(c *fiber.Ctx) error {
	var input struct {
		PortalName string   `json:"portalName" validate:"omitempty,max=100"`
		URL        string   `json:"url" validate:"omitempty,url,max=500"`
		Commission *float64 `json:"commission" validate:"omitempty"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var link models.PortalLink
	if err := lc.DB.First(&link, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Link not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch link", err)
	}

	if input.PortalName != "" && input.PortalName != link.PortalName {
		var existing models.PortalLink
		if err := lc.DB.Where("portal_name = ?", input.PortalName).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "Portal name already in use", nil)
		}
		link.PortalName = input.PortalName
	}
	if input.URL != "" {
		link.URL = input.URL
	}
	if input.Commission != nil {
		link.Commission = *input.Commission
	}

	if err := lc.DB.Save(&link).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update link", err)
	}

	return c.JSON(utils.SuccessResponse(link))
}

// DeleteLink deletes a portal link
func (lc *LinkController) DeleteLink(c *fiber.Ctx) error {
	result := lc.DB.Where("id = ?", c.Params("id")).Delete(&models.PortalLink{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete link", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Link not found", nil)
	}

	var total int64
	lc.DB.Model(&models.PortalLink{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Link deleted successfully",
		"total":   total,
	}))
}
