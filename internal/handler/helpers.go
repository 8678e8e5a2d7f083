package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"farmavita/internal/apierror"
	"farmavita/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
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
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
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

// respondError maps a service error to its HTTP status. Internal errors never
// leak their cause to the client.
func respondError(c *gin.Context, err error) {
	status := apierror.HTTPStatus(err)
	msg := err.Error()
	var e *apierror.Error
	if status == http.StatusInternalServerError && !errors.As(err, &e) {
		msg = "Error interno del servidor"
	}
	c.JSON(status, apierror.New(msg))
}

// listFilterFromQuery reads the uniform pagination query params.
func listFilterFromQuery(c *gin.Context) dto.ListFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	f := dto.ListFilter{
		Page:   page,
		Limit:  limit,
		Buscar: c.Query("buscar"),
		Orden:  c.DefaultQuery("orden", "asc"),
		Activo: c.Query("activo"),
	}
	f.Normalize()
	return f
}
