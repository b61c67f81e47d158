package notes

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const subjectTag = "subject"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(subjectTag, func(fl validator.FieldLevel) bool {
		return IsSubject(fl.Field().String())
	})
	return v
}

// IsSubject reports whether s is one of the known subjects.
func IsSubject(s string) bool {
	for _, v := range Subjects {
		if v == s {
			return true
		}
	}
	return false
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid note: " + strings.Join(e.Fields, "; ")
}

// Validate trims the fields in place and checks them.
func (nn *NewNote) Validate() error {
	nn.Title = strings.TrimSpace(nn.Title)
	nn.Content = strings.TrimSpace(nn.Content)
	nn.Subject = strings.TrimSpace(nn.Subject)
	return checkStruct(nn)
}

// Validate trims the fields in place and checks them.
func (un *UpdateNote) Validate() error {
	un.Title = strings.TrimSpace(un.Title)
	un.Content = strings.TrimSpace(un.Content)
	un.Subject = strings.TrimSpace(un.Subject)
	return checkStruct(un)
}

func checkStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			ve.Fields = append(ve.Fields, field+" is required")
		case subjectTag:
			ve.Fields = append(ve.Fields, fmt.Sprintf("unknown subject %q", fe.Value()))
		default:
			ve.Fields = append(ve.Fields, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return ve
}
