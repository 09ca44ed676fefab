package internal

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

func getValidator() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		validatorInst.RegisterTagNameFunc(func(f reflect.StructField) string {
			return tagName(f.Tag.Get("toml"), f.Name)
		})
	})
	return validatorInst
}

// ValidateStruct validates v against its validate tags.
func ValidateStruct(v any) error {
	return getValidator().Struct(v)
}

// ValidateVar validates a single value against tag.
func ValidateVar(field any, tag string) error {
	return getValidator().Var(field, tag)
}

// InvalidFields returns the config names of the fields err complains about.
func InvalidFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace()[strings.IndexByte(fe.Namespace(), '.')+1:])
	}
	return fields
}

func tagName(tag, fallback string) string {
	name, _, _ := strings.Cut(tag, ",")
	if name == "" || name == "-" {
		return fallback
	}
	return name
}
