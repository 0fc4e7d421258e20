package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, exists := result[err.Field]; exists {
			continue
		}
		result[err.Field] = err.Message
	}
	return result
}

// OrNil returns nil for an empty list so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts any RFC 4122 UUID in its canonical dashed form.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// CPF (Brazilian individual taxpayer id), formatted.
var cpfRegex = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)

func IsValidCPF(cpf string) bool {
	return cpfRegex.MatchString(cpf)
}

// CNPJ (Brazilian company taxpayer id), formatted.
var cnpjRegex = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)

func IsValidCNPJ(cnpj string) bool {
	return cnpjRegex.MatchString(cnpj)
}

var cepRegex = regexp.MustCompile(`^\d{5}-\d{3}$`)

// IsValidCEP checks a Brazilian postal code in XXXXX-XXX form.
func IsValidCEP(cep string) bool {
	return cepRegex.MatchString(cep)
}

var ufRegex = regexp.MustCompile(`^[A-Z]{2}$`)

// IsValidUF checks a two-letter state code.
func IsValidUF(uf string) bool {
	return ufRegex.MatchString(uf)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9.@+_-]{3,150}$`)

// IsValidUsername: 3-150 chars, letters, digits and @/./+/-/_
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// MaxMoney is the largest amount a NUMERIC(10,2) column holds.
var MaxMoney = decimal.RequireFromString("99999999.99")

// IsMoney reports whether d lies in [0.01, MaxMoney] with at most two decimal places.
func IsMoney(d decimal.Decimal) bool {
	return d.GreaterThanOrEqual(decimal.New(1, -2)) && d.LessThanOrEqual(MaxMoney) && d.Equal(d.Round(2))
}

// ========================================
// STRUCT TAG VALIDATION
// ========================================

var structValidator = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New(playground.WithRequiredStructEnabled())

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	stringRule := func(fn func(string) bool) playground.Func {
		return func(fl playground.FieldLevel) bool {
			return fn(fl.Field().String())
		}
	}
	for tag, fn := range map[string]func(string) bool{
		"cpf":      IsValidCPF,
		"cnpj":     IsValidCNPJ,
		"cep":      IsValidCEP,
		"uf":       IsValidUF,
		"username": IsValidUsername,
		"date": func(s string) bool {
			_, ok := IsValidDate(s)
			return ok
		},
	} {
		if err := v.RegisterValidation(tag, stringRule(fn)); err != nil {
			panic(fmt.Sprintf("register %s validation: %v", tag, err))
		}
	}

	return v
}

// Struct validates s against its `validate` tags and converts failures into
// ValidationErrors keyed by JSON field name.
func Struct(s interface{}) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var errs ValidationErrors
	for _, fe := range fieldErrs {
		errs.Add(fe.Field(), fieldMessage(fe))
	}
	return errs
}

func fieldMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", field, fe.Param())
	case "numeric":
		return field + " must contain only digits"
	case "required_with":
		return field + " is required when " + strings.ToLower(fe.Param()) + " is provided"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return field + " must be a valid email address"
	case "uuid":
		return field + " must be a valid UUID"
	case "latitude":
		return field + " must be between -90 and 90"
	case "longitude":
		return field + " must be between -180 and 180"
	case "url":
		return field + " must be a valid URL"
	case "cpf":
		return field + " must be in XXX.XXX.XXX-XX format"
	case "cnpj":
		return field + " must be in XX.XXX.XXX/XXXX-XX format"
	case "cep":
		return field + " must be in XXXXX-XXX format"
	case "uf":
		return field + " must be a two-letter uppercase state code"
	case "username":
		return field + " may only contain letters, numbers and @/./+/-/_ (3-150 characters)"
	case "date":
		return field + " must be in YYYY-MM-DD format"
	default:
		return field + " is invalid"
	}
}
