package validator

import (
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/landscape-review/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("finite", validateFinite)
}

// validateFinite отклоняет NaN и ±Inf для float-полей
func validateFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		v := field.Float()
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case reflect.Ptr:
		if field.IsNil() {
			return true
		}
		v := field.Elem()
		if v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64 {
			return !math.IsNaN(v.Float()) && !math.IsInf(v.Float(), 0)
		}
	}
	return true
}

// Validate - валидация структуры; ошибки валидации возвращаются как ErrInvalidRequest
func Validate(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		details := map[string]interface{}{}
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return errors.ErrInvalidRequest.WithDetails(details).Wrap(err)
	}
	return nil
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}
