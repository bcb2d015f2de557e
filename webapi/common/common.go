// Package common holds the response envelope and request binding shared by
// every HTTP handler.
package common

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/amirasaad/farmledger/pkg/domain"
	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Response is the success envelope.
type Response struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       any             `json:"data,omitempty"`
	Pagination *dto.Pagination `json:"pagination,omitempty"`
}

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ProblemDetails is the error envelope.
type ProblemDetails struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Detail  string       `json:"detail,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// ValidationMessager lets a request body replace the generic validation
// failure message.
type ValidationMessager interface {
	ValidationMessage() string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SuccessResponseJSON writes data in the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Success: true, Message: message, Data: data})
}

// PageResponseJSON writes one page of a list.
func PageResponseJSON[T any](c *fiber.Ctx, items []T, pagination dto.Pagination) error {
	if items == nil {
		items = []T{}
	}
	return c.Status(fiber.StatusOK).JSON(Response{Success: true, Data: items, Pagination: &pagination})
}

// ProblemDetailsJSON writes err in the error envelope. The optional args
// are a detail string overriding err's text and an int status overriding
// the one derived from err.
//
// Validation errors use their own message and list the offending field.
func ProblemDetailsJSON(c *fiber.Ctx, message string, err error, args ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{Message: message}
	if err != nil {
		pd.Detail = err.Error()
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			pd.Detail = v
		case int:
			status = v
		}
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		pd.Message = verr.Message
		pd.Detail = ""
		if verr.Field != "" {
			pd.Errors = []FieldError{{Field: verr.Field, Message: verr.Message}}
		}
	}
	if status >= fiber.StatusInternalServerError {
		log.Errorw(message, "status", status, "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrNoFieldsToUpdate):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using go-playground/validator.
// Returns the populated struct, or writes an error response and returns nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	custom, hasCustom := any(&input).(ValidationMessager)
	if err := c.BodyParser(&input); err != nil {
		message := "Invalid request body"
		if hasCustom {
			message = custom.ValidationMessage()
		}
		return nil, ProblemDetailsJSON(c, message, err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		message := "Validation failed"
		if hasCustom {
			message = custom.ValidationMessage()
		}
		pd := ProblemDetails{Message: message, Errors: fieldErrors(err)}
		return nil, c.Status(fiber.StatusBadRequest).JSON(pd)
	}
	return &input, nil
}

func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Message: describe(fe)})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid id"
	case "max":
		return "cannot exceed " + fe.Param() + " characters"
	case "min", "gte":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// TokenParser extracts the user id from a verified token.
type TokenParser interface {
	GetCurrentUserId(token *jwt.Token) (uuid.UUID, error)
}

// CurrentUserID reads the user id from the token the JWT middleware stored
// under "user".
func CurrentUserID(c *fiber.Ctx, parser TokenParser) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return parser.GetCurrentUserId(token)
}

// ParamID parses the :id route parameter. A malformed id cannot name any
// record, so it is reported with notFound.
func ParamID(c *fiber.Ctx, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter. ok is false when the
// value is present but not an integer.
func QueryInt(c *fiber.Ctx, key string) (v *int, ok bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}

// Page reads the page and limit query parameters. Missing or out of range
// values fall back to defaults; non-numeric values are rejected.
func Page(c *fiber.Ctx) (dto.PageQuery, error) {
	var q dto.PageQuery
	page, ok := QueryInt(c, "page")
	if !ok {
		return q, domain.Invalid("page", "page must be a number")
	}
	limit, ok := QueryInt(c, "limit")
	if !ok {
		return q, domain.Invalid("limit", "limit must be a number")
	}
	if page != nil {
		q.Page = *page
	}
	if limit != nil {
		q.Limit = *limit
	}
	return q.Normalize(), nil
}

// QueryUUID parses an optional id query parameter.
func QueryUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.Invalid(key, "%s must be a valid id", key)
	}
	return &id, nil
}
