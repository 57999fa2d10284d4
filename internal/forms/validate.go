// Package forms decodes and validates the HTML forms posted to the
// storefront and the admin console. Validation runs before any backend
// call; a form with errors is re-rendered instead of submitted.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

var (
	mobilePattern   = regexp.MustCompile(`^09\d{8}$`)
	phoneSeparators = strings.NewReplacer("-", "", " ", "")
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("money", validMoney)
	_ = v.RegisterValidation("mobile", validMobile)
	_ = v.RegisterValidation("count", validCount)
	return v
}

// validMoney accepts a positive amount with at most two decimals.
func validMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return false
	}
	return d.IsPositive() && d.Exponent() >= -2
}

// validCount accepts a non-negative whole number that fits an int32.
func validCount(fl validator.FieldLevel) bool {
	n, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 32)
	return err == nil && n >= 0
}

func validMobile(fl validator.FieldLevel) bool {
	return mobilePattern.MatchString(NormalizePhone(fl.Field().String()))
}

// NormalizePhone drops the separators people type into phone numbers.
func NormalizePhone(s string) string {
	return phoneSeparators.Replace(strings.TrimSpace(s))
}

// Errors maps a form field name to the message shown next to it.
type Errors map[string]string

func (e Errors) Get(field string) string { return e[field] }

func (e Errors) Any() bool { return len(e) > 0 }

// Validate checks v against its validate tags. It returns nil when the
// form is valid.
func Validate(v any) Errors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"": err.Error()}
	}
	out := make(Errors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = message(fe)
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "eqfield":
		return "Passwords do not match"
	case "oneof":
		return fmt.Sprintf("Must be one of %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "mobile":
		return "Enter a valid mobile number"
	case "money":
		return "Enter a positive amount with at most two decimals"
	case "count":
		return "Enter a whole number"
	case "len", "numeric":
		return "Enter the 6 digit code"
	case "datetime":
		return "Enter a valid date and time"
	}
	return "Invalid value"
}

// Decode copies posted values into the string and bool fields of the
// struct dst points to, matched by their form tag. Values are trimmed
// unless the tag carries the notrim option.
func Decode(values url.Values, dst any) {
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name, opts, _ := strings.Cut(rt.Field(i).Tag.Get("form"), ",")
		if name == "" || name == "-" {
			continue
		}
		f := rv.Field(i)
		switch f.Kind() {
		case reflect.String:
			v := values.Get(name)
			if opts != "notrim" {
				v = strings.TrimSpace(v)
			}
			f.SetString(v)
		case reflect.Bool:
			switch values.Get(name) {
			case "on", "true", "1":
				f.SetBool(true)
			default:
				f.SetBool(false)
			}
		}
	}
}
