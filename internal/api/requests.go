// requests.go - Request bodies and validation
package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type decodeRequest struct {
	Input   string `json:"input" validate:"required"`
	Persist bool   `json:"persist"`
}

type rawDecodeRequest struct {
	Input string `json:"input" validate:"required"`
}

type batchDecodeRequest struct {
	Inputs []string `json:"inputs" validate:"required,min=1"`
}

// bindAndValidate binds a JSON body and runs struct validation. Validation
// failures name the first offending JSON field.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewValidationError(verrs[0].Field())
		}
		return NewBadRequestError("invalid request", err)
	}
	return nil
}
