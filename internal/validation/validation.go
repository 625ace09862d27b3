package validation

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidBody      = "INVALID_BODY"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors"`
}

var registerOnce sync.Once

// Register teaches gin's validator about decimal amounts and makes it report
// JSON field names. It is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return toJSONFieldName(fld.Name)
			}
			return name
		})
	})
}

// BindAndValidateJSON binds the request body into dst. On failure it aborts
// with 422 describing the first violated constraint and returns false.
func BindAndValidateJSON(c *gin.Context, dst any) bool {
	Register()

	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, formatValidationError(verrs[0]))
			return false
		}

		field := ""
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field = typeErr.Field
		}

		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
			Code:    CodeInvalidBody,
			Message: "invalid request body",
			Errors: []FieldError{
				{
					Field:   field,
					Rule:    "syntax",
					Message: err.Error(),
				},
			},
		})
		return false
	}

	return true
}

// AbortWithFieldError rejects a request whose query or path parameter failed
// validation.
func AbortWithFieldError(c *gin.Context, field, rule, message string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors: []FieldError{
			{Field: field, Rule: rule, Message: message},
		},
	})
}

func formatValidationError(fe validator.FieldError) ErrorResponse {
	field := fe.Field()
	return ErrorResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Errors: []FieldError{
			{
				Field:   field,
				Rule:    fe.Tag(),
				Message: buildMessage(field, fe),
			},
		},
	}
}

func toJSONFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func buildMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param() + lengthUnit(fe)
	case "max":
		return field + " must be at most " + fe.Param() + lengthUnit(fe)
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "lte":
		return field + " must be less than or equal to " + fe.Param()
	case "email":
		return field + " must be a valid email address"
	}

	return field + " is invalid (" + fe.Tag() + ")"
}

func lengthUnit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}
	return ""
}
