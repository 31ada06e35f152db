package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Amaan2660/InvoiceCreatorEL/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	return validateStruct(c, req)
}

// validateStruct runs validator tags on an already-populated request struct
// (used for multipart forms assembled by hand).
func validateStruct(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeDomainError maps the pipeline's error taxonomy onto HTTP statuses.
// Everything outside the taxonomy is an internal error and stays opaque.
func writeDomainError(c *gin.Context, err error) {
	var (
		validationErr *apierror.ValidationError
		schemaErr     *apierror.SchemaError
		parseErr      *apierror.ParseError
		renderErr     *apierror.RenderError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{
			validationErr.Field: validationErr.Reason,
		}))
	case errors.As(err, &schemaErr), errors.As(err, &parseErr):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.As(err, &renderErr):
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Document rendering failed"))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Not found"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}
