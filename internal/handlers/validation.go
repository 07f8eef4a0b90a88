package handlers

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-management-api/internal/services"
)

var registerOnce sync.Once

// RegisterValidators installs custom rules on gin's validator and makes
// field errors report json names. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("meetinglink", func(fl validator.FieldLevel) bool {
			return services.IsAllowedMeetingLink(fl.Field().String())
		})
	})
}

func init() {
	RegisterValidators()
}
