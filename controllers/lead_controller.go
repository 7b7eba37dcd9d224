package controller

import (
	"encoding/csv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type LeadController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewLeadController(db *gorm.DB, logger *logrus.Logger) *LeadController {
	return &LeadController{
		DB:     db,
		Logger: logger,
	}
}

// CreateLead creates a new lead with validation
func (lc *LeadController) CreateLead(c *fiber.Ctx) error {
	var input struct {
		Name          string `json:"name" validate:"required,max=100"`
		Email         string `json:"email" validate:"omitempty,email"`
		Phone         string `json:"phone" validate:"required,max=15"`
		Status        string `json:"status" validate:"omitempty"`
		Source        string `json:"source" validate:"omitempty,max=100"`
		PortalName    string `json:"portal_name" validate:"omitempty,max=100"`
		EkycStage     string `json:"ekyc_stage" validate:"omitempty,max=50"`
		TradeStatus   string `json:"trade_status" validate:"omitempty,max=50"`
		Message       string `json:"message" validate:"omitempty,max=2000"`
		TransactionID string `json:"transactionId" validate:"omitempty,max=100"`
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

	status := models.LeadStatusNew
	if input.Status != "" {
		status = models.LeadStatus(input.Status)
		if !status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid lead status", nil)
		}
	}

	lead := models.Lead{
		Name:          input.Name,
		Email:         strings.ToLower(input.Email),
		Phone:         input.Phone,
		Status:        status,
		Source:        input.Source,
		PortalName:    input.PortalName,
		EkycStage:     input.EkycStage,
		TradeStatus:   input.TradeStatus,
		Message:       input.Message,
		TransactionID: input.TransactionID,
	}

	if err := lc.DB.Create(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create lead", err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(lead))
}

// GetAllLeads returns paginated leads with filters
func (lc *LeadController) GetAllLeads(c *fiber.Ctx) error {
	page, limit, offset := utils.ParsePagination(c)

	status := c.Query("status")
	portalName := c.Query("portal_name")
	source := c.Query("source")
	search := c.Query("search")

	query := lc.DB.Model(&models.Lead{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if portalName != "" {
		query = query.Where("portal_name = ?", portalName)
	}
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to count leads", err)
	}

	var leads []models.Lead
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch leads", err)
	}

	return c.JSON(utils.SuccessResponse(utils.PageData{
		Items: leads,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// GetLead returns a single lead by ID
func (lc *LeadController) GetLead(c *fiber.Ctx) error {
	var lead models.Lead
	if err := lc.DB.First(&lead, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Lead not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch lead", err)
	}
	return c.JSON(utils.SuccessResponse(lead))
}

// GetLeadByTransactionID looks a lead up by the payment transaction reference.
func (lc *LeadController) GetLeadByTransactionID(c *fiber.Ctx) error {
	txnID := c.Params("transactionId")

	var lead models.Lead
	if err := lc.DB.Where("transaction_id = ?", txnID).First(&lead).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Lead not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch lead", err)
	}
	return c.JSON(utils.SuccessResponse(lead))
}

// UpdateLead updates lead details
func (lc *LeadController) UpdateLead(c *fiber.Ctx) error {
	var input struct {
		Name          string `json:"name" validate:"omitempty,max=100"`
		Email         string `json:"email" validate:"omitempty,email"`
		Phone         string `json:"phone" validate:"omitempty,max=15"`
		Status        string `json:"status" validate:"omitempty"`
		Source        string `json:"source" validate:"omitempty,max=100"`
		PortalName    string `json:"portal_name" validate:"omitempty,max=100"`
		EkycStage     string `json:"ekyc_stage" validate:"omitempty,max=50"`
		TradeStatus   string `json:"trade_status" validate:"omitempty,max=50"`
		Message       string `json:"message" validate:"omitempty,max=2000"`
		TransactionID string `json:"transactionId" validate:"omitempty,max=100"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var lead models.Lead
	if err := lc.DB.First(&lead, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Lead not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch lead", err)
	}

	if input.Status != "" {
		status := models.LeadStatus(input.Status)
		if !status.Valid() {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, "Invalid lead status", nil)
		}
		lead.Status = status
	}
	if input.Name != "" {
		lead.Name = input.Name
	}
	if input.Email != "" {
		lead.Email = strings.ToLower(input.Email)
	}
	if input.Phone != "" {
		lead.Phone = input.Phone
	}
	if input.Source != "" {
		lead.Source = input.Source
	}
	if input.PortalName != "" {
		lead.PortalName = input.PortalName
	}
	if input.EkycStage != "" {
		lead.EkycStage = input.EkycStage
	}
	if input.TradeStatus != "" {
		lead.TradeStatus = input.TradeStatus
	}
	if input.Message != "" {
		lead.Message = input.Message
	}
	if input.TransactionID != "" {
		lead.TransactionID = input.TransactionID
	}

	if err := lc.DB.Save(&lead).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update lead", err)
	}

	return c.JSON(utils.SuccessResponse(lead))
}

// DeleteLead deletes a lead
func (lc *LeadController) DeleteLead(c *fiber.Ctx) error {
	result := lc.DB.Where("id = ?", c.Params("id")).Delete(&models.Lead{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to delete lead", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, utils.CodeNotFound, "Lead not found", nil)
	}

	var total int64
	lc.DB.Model(&models.Lead{}).Count(&total)

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Lead deleted successfully",
		"total":   total,
	}))
}

// ImportLeads imports leads from CSV with an admin-supplied column mapping.
func (lc *LeadController) ImportLeads(c *fiber.Ctx) error {
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
	var leads []models.Lead
	imported, skipped := 0, 0

	flush := func() {
		if len(leads) == 0 {
			return
		}
		if err := lc.DB.Create(&leads).Error; err != nil {
			lc.Logger.WithError(err).Error("failed to import batch of leads")
		} else {
			imported += len(leads)
		}
		leads = nil
	}

	for _, row := range rows {
		data := utils.MapRow(header, row, mapping)

		phone := strings.TrimSpace(data["phone"])
		if phone == "" {
			skipped++
			continue
		}

		lead := models.Lead{
			Name:          data["name"],
			Email:         strings.ToLower(data["email"]),
			Phone:         phone,
			Status:        models.LeadStatusNew,
			Source:        data["source"],
			PortalName:    data["portal_name"],
			EkycStage:     data["ekyc_stage"],
			TradeStatus:   data["trade_status"],
			Message:       data["message"],
			TransactionID: data["transactionId"],
		}
		if s := models.LeadStatus(data["status"]); s.Valid() {
			lead.Status = s
		}

		leads = append(leads, lead)
		if len(leads) >= batchSize {
			flush()
		}
	}
	flush()

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message":    "Leads imported successfully",
		"total_rows": len(rows),
		"imported":   imported,
		"skipped":    skipped,
	}))
}

// ExportLeads exports leads matching the status filter to CSV.
func (lc *LeadController) ExportLeads(c *fiber.Ctx) error {
	status := c.Query("status")

	query := lc.DB.Model(&models.Lead{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var leads []models.Lead
	if err := query.Order("id").Find(&leads).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch leads", err)
	}

	header := []string{"name", "email", "phone", "status", "source", "portal_name", "ekyc_stage", "trade_status", "message", "transactionId"}
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, []string{
			l.Name,
			l.Email,
			l.Phone,
			string(l.Status),
			l.Source,
			l.PortalName,
			l.EkycStage,
			l.TradeStatus,
			l.Message,
			l.TransactionID,
		})
	}

	return utils.WriteCSV(c, "leads", status, header, rows)
}
