// Package validation настраивает validator для DTO запросов.
package validation

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
)

// New возвращает валидатор, который понимает decimal.Decimal как число,
// так что для сумм работают теги gt, gte, required.
// В ошибках поля называются по json-тегу.
// Тег datetime=<layout> проверяет, что строка разбирается time.Parse по layout.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonName)
	if err := v.RegisterValidation("datetime", isDateTime); err != nil {
		panic(err)
	}
	return v
}

func isDateTime(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	_, err := time.Parse(fl.Param(), field.String())
	return err == nil
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
