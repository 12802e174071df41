// Package validation valida los DTO de entrada con go-playground/validator y traduce
// los fallos a domain.ValidationError con nombres de campo legibles.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/notify-renewals/internal/domain"
	"github.com/jhoicas/notify-renewals/pkg/timeutil"
)

// Validator envuelve validator.Validate con las reglas propias de la aplicación.
type Validator struct {
	v *validator.Validate
}

var (
	defaultOnce sync.Once
	defaultV    *Validator
)

// Default devuelve una instancia compartida (validator cachea la metadata de los structs).
func Default() *Validator {
	defaultOnce.Do(func() { defaultV = New() })
	return defaultV
}

// New construye un Validator con el tag "isodate" registrado y nombres de campo según el tag json.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := timeutil.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

// Struct valida s. Devuelve *domain.ValidationError si algún campo no cumple.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verrs))}
	for _, e := range verrs {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   e.Field(),
			Message: message(e),
		})
	}
	return out
}

func message(e validator.FieldError) string {
	name := humanize(e.Field())
	switch e.Tag() {
	case "required":
		return name + " es requerido"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener al menos %s caracteres", name, e.Param())
		}
		return fmt.Sprintf("%s debe ser al menos %s", name, e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s debe tener como máximo %s caracteres", name, e.Param())
		}
		return fmt.Sprintf("%s debe ser como máximo %s", name, e.Param())
	case "isodate":
		return name + " debe ser una fecha YYYY-MM-DD"
	default:
		return name + " es inválido"
	}
}

// subscription_date -> Subscription Date
func humanize(field string) string {
	return cases.Title(language.Spanish).String(strings.ReplaceAll(field, "_", " "))
}
