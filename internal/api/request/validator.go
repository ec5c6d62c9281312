package request

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/d60-Lab/bakery-api/internal/calendar"
	"github.com/d60-Lab/bakery-api/pkg/response"
)

var registerOnce sync.Once

// Register 向 gin 的校验器注册自定义规则，可重复调用
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("request: gin validator engine is not go-playground/validator")
		}
		mustRegister(v)
	})
}

func mustRegister(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if a, ok := field.Interface().(Amount); ok {
			f, _ := a.Float64()
			return f
		}
		return nil
	}, Amount{})

	for tag, fn := range map[string]validator.Func{
		"ymd":          isDate,
		"deliverydate": isDeliveryDate,
		"notblank":     isNotBlank,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("request: register %s: %v", tag, err))
		}
	}
}

// fieldName 错误中使用 json/form/uri 标签名
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "form", "uri"} {
		name := strings.SplitN(f.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(calendar.DateLayout, fl.Field().String())
	return err == nil
}

func isDeliveryDate(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if _, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return true
	}
	_, err := time.Parse(calendar.DateLayout, raw)
	return err == nil
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// FieldErrors 把校验错误转换为响应中的字段错误；非校验错误返回 nil
func FieldErrors(err error) []response.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, response.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: describe(fe),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "notblank":
		return fe.Field() + " must not be blank"
	case "uuid":
		return fe.Field() + " must be a valid UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "ymd":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case "deliverydate":
		return fe.Field() + " must be an RFC 3339 timestamp or a YYYY-MM-DD date"
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}
