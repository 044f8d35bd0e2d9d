package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterGinValidator wires custom rules into gin's binding engine and maps
// validation messages onto json field names.
func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("e164", e164Validator); err != nil {
			log.Fatal("register e164 validator failed")
		}
		if err := v.RegisterValidation("otpcode", otpCodeValidator); err != nil {
			log.Fatal("register otpcode validator failed")
		}
	}
}

var e164Validator validator.Func = func(fl validator.FieldLevel) bool {
	matched, err := regexp.MatchString(`^\+[1-9]\d{1,14}$`, fl.Field().String())
	if err != nil {
		return false
	}
	return matched
}

var otpCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	matched, err := regexp.MatchString(`^\d{6}$`, fl.Field().String())
	if err != nil {
		return false
	}
	return matched
}
