package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"crmdesk/models"
	"crmdesk/utils"
)

type DashboardController struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewDashboardController(db *gorm.DB, logger *logrus.Logger) *DashboardController {
	return &DashboardController{
		DB:     db,
		Logger: logger,
	}
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (dc *DashboardController) countByStatus(model interface{}) ([]statusCount, error) {
	var counts []statusCount
	err := dc.DB.Model(model).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("count DESC").
		Find(&counts).Error
	return counts, err
}

// GetStats returns the admin dashboard headline numbers: totals per entity
// plus a per-status breakdown for the pipeline views.
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	var (
		userTotal         int64
		leadTotal         int64
		clientTotal       int64
		contactTotal      int64
		registrationTotal int64
		linkclickTotal    int64
	)

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &userTotal},
		{&models.Lead{}, &leadTotal},
		{&models.Client{}, &clientTotal},
		{&models.Contact{}, &contactTotal},
		{&models.Registration{}, &registrationTotal},
		{&models.Linkclick{}, &linkclickTotal},
	}
	for _, cnt := range counts {
		if err := dc.DB.Model(cnt.model).Count(cnt.dest).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to compute totals", err)
		}
	}

	leadsByStatus, err := dc.countByStatus(&models.Lead{})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to compute lead breakdown", err)
	}
	clientsByStatus, err := dc.countByStatus(&models.Client{})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to compute client breakdown", err)
	}
	registrationsByStatus, err := dc.countByStatus(&models.Registration{})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to compute registration breakdown", err)
	}

	var completedClicks int64
	if err := dc.DB.Model(&models.Linkclick{}).
		Where("status = ?", models.LinkclickComplete).
		Count(&completedClicks).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to compute link click breakdown", err)
	}

	// Per-leader referral leaderboard
	var leaderboard []struct {
		LeaderCode string `json:"leaderCode"`
		Count      int64  `json:"count"`
	}
	if err := dc.DB.Model(&models.Client{}).
		Select("leader_code, COUNT(*) as count").
		Where("leader_code <> ''").
		Group("leader_code").
		Order("count DESC").
		Limit(10).
		Find(&leaderboard).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to compute leaderboard", err)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"totals": fiber.Map{
			"users":         userTotal,
			"leads":         leadTotal,
			"clients":       clientTotal,
			"contacts":      contactTotal,
			"registrations": registrationTotal,
			"linkClicks":    linkclickTotal,
		},
		"leadsByStatus":         leadsByStatus,
		"clientsByStatus":       clientsByStatus,
		"registrationsByStatus": registrationsByStatus,
		"completedLinkClicks":   completedClicks,
		"topLeaders":            leaderboard,
	}))
}
