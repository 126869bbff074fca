package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Nombres de campo según el tag json (items[0].produced_qty en lugar de Items[0].ProducedQty).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// decimal.Decimal se valida como float64 (gte, lt, gt).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("onedecimal", func(fl validator.FieldLevel) bool {
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(1))
	})
	_ = v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return entity.ValidLocation(fl.Field().String())
	})
	_ = v.RegisterValidation("batchset", func(fl validator.FieldLevel) bool {
		return entity.ValidBatchSet(fl.Field().String())
	})
	_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
		return entity.ValidStatus(fl.Field().String())
	})
	return v
}

var tagMessages = map[string]string{
	"required":    "requerido",
	"min":         "mínimo no alcanzado",
	"max":         "máximo excedido",
	"gt":          "debe ser mayor que cero",
	"gte":         "no puede ser negativo",
	"lt":          "debe ser menor que 1000",
	"batchset":    "línea de producción no permitida (A-E)",
	"orderstatus": "estado no permitido (pending, complete)",
	"datetime":    "formato de fecha YYYY-MM-DD",
	"onedecimal":  "máximo un decimal (ej. 123.4)",
	"location":    "ubicación no permitida",
	"ltefield":    "la devolución no puede exceder la carga",
}

// Validate valida v según sus tags. Devuelve *domain.ValidationError (errors.Is ErrInvalidInput).
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.ErrInvalidInput
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "inválido"
		}
		fields[ns] = msg
	}
	return &domain.ValidationError{Fields: fields}
}
