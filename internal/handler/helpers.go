package handler

import (
	"errors"
	"net/http"
	"reflect"

	"tiendapos/internal/apierror"
	"tiendapos/internal/domain"

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
// Returns false and writes the error response if validation fails;
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

// errStatus maps domain sentinel errors to HTTP status codes. Anything
// unrecognized is a 500 so driver errors never leak business semantics.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoEncontrado),
		errors.Is(err, domain.ErrProductoNoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrStockInsuficiente),
		errors.Is(err, domain.ErrCajaYaAbierta),
		errors.Is(err, domain.ErrCajaNoAbierta),
		errors.Is(err, domain.ErrEstadoInvalido),
		errors.Is(err, domain.ErrDuplicado):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidacion),
		errors.Is(err, domain.ErrMontoInvalido),
		errors.Is(err, domain.ErrPagoInsuficiente):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCredencialesInvalidas):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the standard error envelope for a service error.
func fail(c *gin.Context, err error) {
	status := errStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
