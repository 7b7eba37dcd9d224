package utils

import (
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

// Envelope is the wire format every endpoint responds with. The dashboard
// treats any errorCode other than "NO" as a failure.
type Envelope struct {
	ErrorCode    string      `json:"errorCode"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// Error codes the dashboard branches on.
const (
	CodeOK             = "NO"
	CodeBadRequest     = "BAD_REQUEST"
	CodeValidation     = "VALIDATION"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeSessionClosed  = "SESSION_INACTIVE"
	CodeInvalidLeader  = "INVALID_LEADER_CODE"
	CodeRateLimited    = "RATE_LIMITED"
	CodeInternal       = "INTERNAL"
)

// SuccessResponse wraps data in the success envelope.
func SuccessResponse(data interface{}) Envelope {
	return Envelope{ErrorCode: CodeOK, Data: data}
}

// ErrorResponse writes the error envelope. Server faults are forwarded to
// Sentry when it is configured.
func ErrorResponse(c *fiber.Ctx, status int, code, message string, err error) error {
	if message == "" {
		message = "Unknown error"
	}
	if status >= fiber.StatusInternalServerError && err != nil {
		sentry.CaptureException(err)
	}
	return c.Status(status).JSON(Envelope{
		ErrorCode:    code,
		ErrorMessage: message,
	})
}

// PageData is the payload shape for paginated lists.
type PageData struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

const (
	DefaultPageSize = 10
	// Large enough for the admin "export everything" fetch path.
	MaxPageSize = 10000
)

// ParsePagination reads page/limit query params and derives the offset.
func ParsePagination(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultPageSize)))
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	offset = (page - 1) * limit
	return page, limit, offset
}
