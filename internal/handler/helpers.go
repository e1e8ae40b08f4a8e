package handler

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
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

// respondError maps typed service errors onto HTTP statuses. Internal detail
// stays in the logs; clients get the safe message only.
func respondError(c *gin.Context, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("untyped error from service")
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}

	if apiErr.Kind == apierror.KindInternal {
		log.Error().Err(apiErr.Err).Str("path", c.FullPath()).Msg(apiErr.Detail)
		c.JSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
		return
	}
	c.JSON(apiErr.Status(), apierror.New(apiErr.Detail))
}

// parseIDParam reads a uuid path parameter, writing the 400 response itself
// when the value is not a uuid.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}
