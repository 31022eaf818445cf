package service

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"idcard/internal/errors"
	"idcard/internal/model"
)

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FormatValidationErrors renders one message per violated constraint. The
// leading struct name is replaced with prefix.
func FormatValidationErrors(err error, prefix string) []string {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Namespace()
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		if prefix != "" {
			field = prefix + "." + field
		}
		msg := fmt.Sprintf("Field '%s' failed on the '%s' tag", field, fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s (value: %s)", msg, fe.Param())
		}
		out = append(out, msg)
	}
	return out
}

// validateTemplateData checks the layout and fills its defaults.
func validateTemplateData(v *validator.Validate, data *model.TemplateData) error {
	if data == nil {
		return errors.Validation("templateData is required")
	}
	if err := v.Struct(data); err != nil {
		return errors.Validation("invalid template data", FormatValidationErrors(err, "templateData")...)
	}
	data.ApplyDefaults()
	return nil
}
