// Package validation defines the per-form input schemas and the generic
// checker that evaluates them into field → message error maps.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field name to its validation message.
type Errors map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report errors under the JSON field name clients actually send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// RegisterForm is the schema for POST /api/users/register.
type RegisterForm struct {
	Name     string `json:"name" validate:"required,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

// LoginForm is the schema for POST /api/users/login.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileForm is the schema for POST /api/profile. Skills arrive as a single
// comma-separated string and are split by the handler.
type ProfileForm struct {
	Handle         string `json:"handle" validate:"required,min=2,max=40"`
	Status         string `json:"status" validate:"required"`
	Skills         string `json:"skills" validate:"required"`
	Company        string `json:"company"`
	Website        string `json:"website" validate:"omitempty,url"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube" validate:"omitempty,url"`
	Twitter        string `json:"twitter" validate:"omitempty,url"`
	Facebook       string `json:"facebook" validate:"omitempty,url"`
	LinkedIn       string `json:"linkedin" validate:"omitempty,url"`
	Instagram      string `json:"instagram" validate:"omitempty,url"`
}

// ExperienceForm is the schema for POST /api/profile/experience.
type ExperienceForm struct {
	Title       string `json:"title" validate:"required"`
	Company     string `json:"company" validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// EducationForm is the schema for POST /api/profile/education.
type EducationForm struct {
	School       string `json:"school" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from" validate:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// PostForm is the schema for POST /api/posts and POST /api/posts/comment/:id.
type PostForm struct {
	Text   string `json:"text" validate:"required,min=10,max=300"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Check evaluates a form against its schema and returns the error map plus a
// validity flag. A valid form yields an empty, non-nil map.
func Check(form any) (Errors, bool) {
	errs := Errors{}
	err := validate.Struct(form)
	if err == nil {
		return errs, true
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "Invalid form input"
		return errs, false
	}

	for _, e := range validationErrors {
		// Keep the first failing rule per field.
		if _, seen := errs[e.Field()]; !seen {
			errs[e.Field()] = message(e)
		}
	}
	return errs, false
}

func message(e validator.FieldError) string {
	label := labelFor(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s field is required", label)
	case "email":
		return fmt.Sprintf("%s is invalid", label)
	case "url":
		return "Not a valid URL"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func labelFor(field string) string {
	if field == "" {
		return "Field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}
