// FILE: internal/pkg/serverutils/response.go
package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse builds the standard error envelope returned by every handler.
func ErrorResponse(code int, message string) fiber.Map {
	return fiber.Map{
		"error": APIError{
			Code:    code,
			Message: message,
		},
	}
}

// SuccessResponse wraps a payload in the standard data envelope.
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"data": data,
	}
}

// ErrorHandlerMiddleware converts panics and unhandled errors into the
// standard envelope instead of leaking fiber's defaults.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}

var validate = validator.New()

// ValidateStruct checks the request DTO's validate tags and returns the
// first violation as a client-facing message.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return fiber.NewError(fiber.StatusBadRequest, "field '"+first.Field()+"' failed on '"+first.Tag()+"' validation")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
