package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/middleware"
	"crmdesk/models"
	"crmdesk/utils"
)

type ClientController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
	Feed   *LinkclickFeed
}

func NewClientController(db *gorm.DB, logger *logrus.Logger, feed *LinkclickFeed) *ClientController {
	return &ClientController{
		DB:     db,
		Logger: logger,
		Feed:   feed,
	}
}

// CreateClient registers a client. Public: the referral funnel posts here with
// a leader code and portal slug; the admin form posts without them.
func (cc *ClientController) CreateClient(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name" validate:"required,max=100"`
		Email      string `json:"email" validate:"omitempty,email"`
		Phone      string `json:"phoneNumber" validate:"required,max=15"`
		LeaderCode string `json:"leaderCode" validate:"omitempty,max=20"`
		PortalName string `json:"portalName" validate:"omitempty,max=100"`
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

	// Referral registrations must carry a real leader code
	if input.LeaderCode != "" {
		var leader models.User
		if err := cc.DB.Where("leader_code = ? AND status = ?", input.LeaderCode, models.UserStatusActive).First(&leader).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeInvalidLeader, "Invalid leader code", nil)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to validate leader code", err)
		}
	}

	client := models.Client{
		Name:       input.Name,
		Email:      strings.ToLower(input.Email),
		Phone:      input.Phone,
		Status:     models.ClientStatusNew,
		LeaderCode: input.LeaderCode,
		PortalName: input.PortalName,
	}

	if err := cc.DB.Create(&client).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create client", err)
	}

	middleware.RecordClientRegistered(input.PortalName)

	// Close out the funnel visit and hand back the portal URL for the redirect
	var portalURL string
	if input.PortalName != "" {
		var link models.PortalLink
		if err := cc.DB.Where("portal_name = ?", input.PortalName).First(&link).Error; err == nil {
			portalURL = link.URL
		}

		if input.LeaderCode != "" {
			if err := cc.DB.Model(&models.Linkclick{}).
				Where("id = (?)", cc.DB.Model(&models.Linkclick{}).
					Select("id").
					Where("leader_code = ? AND portal_name = ? AND status = ?",
						input.LeaderCode, input.PortalName, models.LinkclickInComplete).
					Order("id DESC").Limit(1)).
				Update("status", models.LinkclickComplete).Error; err != nil {
				cc.Logger.WithError(err).Warn("failed to complete linkclick")
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"client":    client,
		"portalUrl": portalURL,
	}))
}

// GetAllClients returns paginated clients with filters
func (cc *ClientController) GetAllClients(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	status := c.Query("status")
	portalName := c.Query("portalName")
	leaderCode := c.Query("leaderCode")
	search := c.Query("search")

	query := cc.DB.Model(&models.Client{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if portalName != "" {
		query = query.Where("portal_name = ?", portalName)
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
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count clients", err)
	}

	var clients []models.Client
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch clients", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: clients,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// GetClient returns a single client by ID
func (cc *ClientController) GetClient(c *fiber.Ctx) error {
	var client models.Client
	if err := cc.DB.First(&client, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch client", err)
	}
	return c.JSON(utils.SuccessResponse(client))
}

// UpdateClient updates client details. Moving to "Not Interested" requires a
// reason; moving anywhere else clears it.
func (cc *ClientController) UpdateClient(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name" validate:"omitempty,max=100"`
		Email      string `json:"email" validate:"omitempty,email"`
		Phone      string `json:"phoneNumber" validate:"omitempty,max=15"`
		Status     string `json:"status" validate:"omitempty"`
		LeaderCode string `json:"leaderCode" validate:"omitempty,max=20"`
		PortalName string `json:"portalName" validate:"omitempty,max=100"`
		KycDone    *bool  `json:"kycDone"`
		TradeDone  *bool  `json:"tradeDone"`
		Reason     string `json:"reason" validate:"omitempty,max=500"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var client models.Client
	if err := cc.DB.First(&client, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch client", err)
	}

	if input.Status != "" {
		status := models.ClientStatus(input.Status)
		if !status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid client status", nil)
		}
		if status == models.ClientStatusNotInterested && strings.TrimSpace(input.Reason) == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "reason is required when status is Not Interested", nil)
		}
		client.Status = status
		if status == models.ClientStatusNotInterested {
			client.Reason = input.Reason
		} else {
			client.Reason = ""
		}
	}
	if input.Name != "" {
		client.Name = input.Name
	}
	if input.Email != "" {
		client.Email = strings.ToLower(input.Email)
	}
	if input.Phone != "" {
		client.Phone = input.Phone
	}
	if input.LeaderCode != "" {
		client.LeaderCode = input.LeaderCode
	}
	if input.PortalName != "" {
		client.PortalName = input.PortalName
	}
	if input.KycDone != nil {
		client.KycDone = *input.KycDone
	}
	if input.TradeDone != nil {
		client.TradeDone = *input.TradeDone
	}

	if err := cc.DB.Save(&client).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update client", err)
	}

	return c.JSON(utils.SuccessResponse(client))
}

// DeleteClient deletes a client
func (cc *ClientController) DeleteClient(c *fiber.Ctx) error {
	result := cc.DB.Where("id = ?", c.Params("id")).Delete(&models.Client{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete client", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
	}

	var total int64
	cc.DB.Model(&models.Client{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Client deleted successfully",
		"total":   total,
	}))
}

// SearchClient finds a client by phone number for the team "Get Client" page.
// Only available while the claim session window is open.
func (cc *ClientController) SearchClient(c *fiber.Ctx) error {
	active, err := sessionActive(cc.DB, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to check session window", err)
	}
	if !active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeSessionClosed, "Claim session is not active", nil)
	}

	phone := c.Query("phoneNumber")
	if phone == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "phoneNumber is required", nil)
	}

	var client models.Client
	if err := cc.DB.Where("phone = ?", phone).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch client", err)
	}

	return c.JSON(utils.SuccessResponse(client))
}

// ClaimClient appends the caller as an owner of the client. Gated by the
// claim session window; claiming twice with the same number is rejected.
func (cc *ClientController) ClaimClient(c *fiber.Ctx) error {
	active, err := sessionActive(cc.DB, time.Now())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to check session window", err)
	}
	if !active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeSessionClosed, "Claim session is not active", nil)
	}

	var input struct {
		OwnerName   string `json:"ownerName" validate:"required,max=100"`
		OwnerNumber string `json:"ownerNumber" validate:"required,max=15"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var client models.Client
	if err := cc.DB.First(&client, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Client not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch client", err)
	}

	if client.Claimed(input.OwnerNumber) {
		return utils.ErrorResponse(c, fiber.StatusConflict, utils.CodeConflict, "Client already claimed with this number", nil)
	}

	client.OwnerNames = append(client.OwnerNames, input.OwnerName)
	client.OwnerNumbers = append(client.OwnerNumbers, input.OwnerNumber)

	if err := cc.DB.Save(&client).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to claim client", err)
	}

	return c.JSON(utils.SuccessResponse(client))
}

// ExportClients exports clients matching the status filter to CSV.
func (cc *ClientController) ExportClients(c *fiber.Ctx) error {
	status := c.Query("status")

	query := cc.DB.Model(&models.Client{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var clients []models.Client
	if err := query.Order("id").Find(&clients).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch clients", err)
	}

	header := []string{"name", "email", "phoneNumber", "status", "leaderCode", "portalName", "ownerNames", "ownerNumbers", "reason"}
	rows := make([][]string, 0, len(clients))
	for _, cl := range clients {
		rows = append(rows, []string{
			cl.Name,
			cl.Email,
			cl.Phone,
			string(cl.Status),
			cl.LeaderCode,
			cl.PortalName,
			strings.Join(cl.OwnerNames, "; "),
			strings.Join(cl.OwnerNumbers, "; "),
			cl.Reason,
		})
	}

	return utils.WriteCSV(c, "clients", status, header, rows)
}
