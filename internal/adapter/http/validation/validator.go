package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"tasktracker/internal/core/model/response"
)

var (
	Validator  *validator.Validate
	Translator ut.Translator
)

func init() {
	Validator = validator.New(validator.WithRequiredStructEnabled())
	Validator.RegisterTagNameFunc(jsonFieldName)

	english := en.New()
	uni := ut.New(english, english)

	var found bool
	Translator, found = uni.GetTranslator("en")

	if !found {
		panic("translator en not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Translator); err != nil {
		panic(err)
	}

	addCustomTranslations()
}

// jsonFieldName reports fields by their wire name so messages match the body.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	if name == "-" || name == "" {
		return field.Name
	}

	return name
}

func addCustomTranslations() {
	register := func(tag, text string, params func(validator.FieldError) []string) {
		Validator.RegisterTranslation(tag, Translator, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, params(fe)...)
			return t
		})
	}

	register("required", "{0} is required", func(fe validator.FieldError) []string {
		return []string{fe.Field()}
	})

	register("min", "{0} must be at least {1} characters", func(fe validator.FieldError) []string {
		return []string{fe.Field(), fe.Param()}
	})

	register("max", "{0} must be at most {1} characters", func(fe validator.FieldError) []string {
		return []string{fe.Field(), fe.Param()}
	})

	register("email", "{0} must be a valid email address", func(fe validator.FieldError) []string {
		return []string{fe.Field()}
	})
}

func FormatValidationErrors(err error) []response.ValidationError {
	errs := []response.ValidationError{}

	var validationErrors validator.ValidationErrors

	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			errs = append(errs, response.ValidationError{
				Field:   fieldError.Field(),
				Message: fieldError.Translate(Translator),
			})
		}
	}

	return errs
}
