package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"crmdesk/config"
	"crmdesk/models"
	"crmdesk/utils"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login checks credentials and sets the signed auth-token cookie the
// dashboard middleware reads the role from.
func Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid request body", err)
	}

	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, utils.CodeValidation, err.Error(), nil)
	}

	var user models.User
	if err := config.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid email or password", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to fetch user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid email or password", nil)
	}

	if user.Status != models.UserStatusActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, utils.CodeForbidden, "Account is not active", nil)
	}

	token, err := utils.GenerateJWTToken(&user)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, utils.CodeInternal, "Failed to generate token", err)
	}

	cookie := new(fiber.Cookie)
	cookie.Name = utils.AuthCookieName
	cookie.Value = token
	cookie.Expires = time.Now().Add(12 * time.Hour)
	cookie.HTTPOnly = true
	cookie.Secure = config.AppConfig.Environment == "production"
	cookie.SameSite = "Lax"
	cookie.Path = "/"
	c.Cookie(cookie)

	return c.JSON(utils.SuccessResponse(AuthResponse{
		Token: token,
		User:  &user,
	}))
}

// Logout clears the auth cookie.
func Logout(c *fiber.Ctx) error {
	c.ClearCookie(utils.AuthCookieName)
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"message": "Logged out successfully",
	}))
}

// GetCurrentUser returns the authenticated account.
func GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.JSON(utils.SuccessResponse(user))
}
