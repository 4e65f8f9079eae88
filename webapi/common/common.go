// Package common holds the response envelopes and helpers shared by every
// webapi route group.
package common

import (
	"errors"
	"strconv"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/amirasaad/brokerage/pkg/repository"
	authsvc "github.com/amirasaad/brokerage/pkg/service/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

var validate = validator.New()

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrTransactionAborted), errors.Is(err, domain.ErrOracleUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe.Code
		}
		return fiber.StatusInternalServerError
	}
}

// ProblemDetailsJSON writes an application/problem+json response. The
// optional args are a detail string and/or an explicit status; without a
// status it is derived from err.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	if err == nil {
		status = fiber.StatusInternalServerError
	}
	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Instance: c.OriginalURL(),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case int:
			status = v
		case string:
			pd.Detail = v
		default:
			pd.Errors = v
		}
	}
	if pd.Detail == "" && err != nil {
		// internal errors keep their cause in the logs
		if status >= fiber.StatusInternalServerError && !domain.IsDomainError(err) {
			pd.Detail = "unexpected error"
		} else {
			pd.Detail = err.Error()
		}
	}
	pd.Status = status
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// BindAndValidate parses the body into T and validates it. On failure the
// error response is already written and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, err.Error(), fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return nil, ProblemDetailsJSON(c, "Validation failed", err, "request validation failed", fields, fiber.StatusBadRequest)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", err, err.Error(), fiber.StatusBadRequest)
	}
	return &input, nil
}

// CurrentCustomerID reads the customer id from the JWT stored by the
// JwtProtected middleware. On failure it writes the 401 response and returns
// uuid.Nil with the write error.
func CurrentCustomerID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, ProblemDetailsJSON(c, "Unauthorized", authsvc.ErrInvalidToken, "missing customer context", fiber.StatusUnauthorized)
	}
	id, err := authSvc.GetCurrentCustomerID(token)
	if err != nil {
		return uuid.Nil, ProblemDetailsJSON(c, "Unauthorized", err, fiber.StatusUnauthorized)
	}
	return id, nil
}

// ParseID reads a uuid path parameter. On failure it writes a 400 and
// returns uuid.Nil with the write error.
func ParseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, ProblemDetailsJSON(c, "Invalid id", domain.Validationf("%s must be a valid UUID", name), fiber.StatusBadRequest)
	}
	return id, nil
}

// ListFilter reads status, type, limit and offset query parameters.
func ListFilter(c *fiber.Ctx) repository.ListFilter {
	return repository.ListFilter{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}
}

func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
