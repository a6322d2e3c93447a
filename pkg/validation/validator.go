package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

// Init installs Register on Gin's binding validator.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register reports fields by their json name and adds the enum tags role,
// direction and propertytype.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return entity.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		return entity.Direction(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("propertytype", func(fl validator.FieldLevel) bool {
		return entity.PropertyType(fl.Field().String()).Valid()
	})
	v.RegisterAlias("phone", "e164")
}

// ToDetails flattens a binding error into field -> message. Handlers log
// it; the response body stays a single error string.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"payload": "invalid payload"}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// fixed messages for tags that take no parameter worth showing
var messages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"url":          "must be a valid URL",
	"uuid":         "must be a valid UUID",
	"role":         "must be one of: " + joinValues(entity.RoleBuyer, entity.RoleSeller, entity.RoleAgent),
	"direction":    "must be " + string(entity.DirectionLeft) + " or " + string(entity.DirectionRight),
	"propertytype": "must be one of: " + joinValues(entity.PropertyHouse, entity.PropertyCondo, entity.PropertyTownhome),
	"phone":        "must be a valid phone number",
	"e164":         "must be a valid phone number",
}

func message(fe validator.FieldError) string {
	if m, ok := messages[fe.Tag()]; ok {
		return m
	}
	p := fe.Param()
	switch fe.Tag() {
	case "min", "max":
		bound := "at least "
		if fe.Tag() == "max" {
			bound = "at most "
		}
		if isNumber(fe.Kind()) {
			return "must be " + bound + p
		}
		return "must be " + bound + p + " characters long"
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(p), ", ")
	}
	if p != "" {
		return fmt.Sprintf("failed %s=%s", fe.Tag(), p)
	}
	return "failed " + fe.Tag()
}

func joinValues[T ~string](vals ...T) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func isNumber(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}
