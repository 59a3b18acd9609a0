package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrorInfo is a code plus a user facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps a store error to an ErrorInfo without leaking SQL details.
// resource names the entity involved, e.g. "product" or "cart item".
func ParseError(err error, resource string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(resource)}
	}

	errLower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint"):
		return parseDuplicateKeyError(errLower, resource)
	case strings.Contains(errLower, "foreign key constraint"):
		if strings.Contains(errLower, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: fmt.Sprintf("The %s is still referenced", resourceOrDefault(resource))}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	case strings.Contains(errLower, "not null constraint") || strings.Contains(errLower, "violates not-null constraint"):
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	case strings.Contains(errLower, "check constraint"):
		return ErrorInfo{Code: ValidationInvalidInput, Message: "A value is out of range"}
	case strings.Contains(errLower, "connection refused") || strings.Contains(errLower, "timeout"):
		return ErrorInfo{Code: InternalDatabaseError, Message: "The database is unavailable, please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Something went wrong, please try again later"}
}

func parseDuplicateKeyError(errLower string, resource string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "slug"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "The slug is already in use"}
	case strings.Contains(errLower, "email"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "The email is already in use"}
	case strings.Contains(errLower, "name"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "The name is already in use"}
	}
	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: fmt.Sprintf("The %s already exists", resourceOrDefault(resource)),
	}
}

func notFoundMessage(resource string) string {
	return fmt.Sprintf("The requested %s was not found", resourceOrDefault(resource))
}

func resourceOrDefault(resource string) string {
	if resource == "" {
		return "record"
	}
	return resource
}

// FieldErrors flattens binding validation errors into field -> message.
// Non-validation errors (malformed bodies, bad numbers) land under "form".
func FieldErrors(err error) map[string]string {
	fields := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["form"] = err.Error()
		return fields
	}

	for _, fe := range verrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}
	return fields
}

// fieldName converts the struct field name to snake case, e.g. FirstName -> first_name.
func fieldName(fe validator.FieldError) string {
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "gte", "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("Failed the %s check", fe.Tag())
	}
}
