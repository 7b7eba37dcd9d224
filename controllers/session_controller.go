package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type SessionController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewSessionController(db *gorm.DB, logger *logrus.Logger) *SessionController {
	return &SessionController{
		DB:     db,
		Logger: logger,
	}
}

// sessionActive reports whether the single global claim window is open at now.
// No configured session means closed.
func sessionActive(db *gorm.DB, now time.Time) (bool, error) {
	var session models.GlobalSession
	if err := db.Order("id DESC").First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	return session.Active(now), nil
}

// GetSession returns the configured claim window plus whether it is currently
// open. Teams poll this to decide when to enable the claim UI.
func (sc *SessionController) GetSession(c *fiber.Ctx) error {
	var session models.GlobalSession
	if err := sc.DB.Order("id DESC").First(&session).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(utils.SuccessResponse(fiber.Map{
				"session": nil,
				"active":  false,
			}))
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch session", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"session": session,
		"active":  session.Active(time.Now()),
	}))
}

// UpdateSession replaces the claim window. There is only ever one row; the
// first call creates it.
func (sc *SessionController) UpdateSession(c *fiber.Ctx) error {
	var input struct {
		SessionStartDate string `json:"sessionStartDate" validate:"required"`
		SessionStartTime string `json:"sessionStartTime" validate:"required"`
		SessionEndDate   string `json:"sessionEndDate" validate:"required"`
		SessionEndTime   string `json:"sessionEndTime" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	candidate := models.GlobalSession{
		SessionStartDate: input.SessionStartDate,
		SessionStartTime: input.SessionStartTime,
		SessionEndDate:   input.SessionEndDate,
		SessionEndTime:   input.SessionEndTime,
	}
	if err := candidate.ValidateWindow(); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var session models.GlobalSession
	err := sc.DB.Order("id DESC").First(&session).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		session = candidate
		if err := sc.DB.Create(&session).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to create session", err)
		}
	case err != nil:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch session", err)
	default:
		session.SessionStartDate = candidate.SessionStartDate
		session.SessionStartTime = candidate.SessionStartTime
		session.SessionEndDate = candidate.SessionEndDate
		session.SessionEndTime = candidate.SessionEndTime
		if err := sc.DB.Save(&session).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to update session", err)
		}
	}

	sc.Logger.WithFields(logrus.Fields{
		"start": session.SessionStartDate + " " + session.SessionStartTime,
		"end":   session.SessionEndDate + " " + session.SessionEndTime,
	}).Info("claim session window updated")

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"session": session,
		"active":  session.Active(time.Now()),
	}))
}
