package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck_RegisterForm(t *testing.T) {
	tests := []struct {
		name    string
		form    RegisterForm
		valid   bool
		field   string
		message string
	}{
		{
			name:  "Valid",
			form:  RegisterForm{Name: "Jane Doe", Email: "jane@example.com", Password: "secret123"},
			valid: true,
		},
		{
			name:    "Missing Name",
			form:    RegisterForm{Email: "jane@example.com", Password: "secret123"},
			field:   "name",
			message: "Name field is required",
		},
		{
			name:  "Single Character Name",
			form:  RegisterForm{Name: "A", Email: "a@x.com", Password: "secret1"},
			valid: true,
		},
		{
			name:    "Bad Email",
			form:    RegisterForm{Name: "Jane Doe", Email: "nope", Password: "secret123"},
			field:   "email",
			message: "Email is invalid",
		},
		{
			name:    "Short Password",
			form:    RegisterForm{Name: "Jane Doe", Email: "jane@example.com", Password: "abc"},
			field:   "password",
			message: "Password must be at least 6 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := Check(&tt.form)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.message, errs[tt.field])
		})
	}
}

func TestCheck_ProfileForm(t *testing.T) {
	valid := ProfileForm{Handle: "gopher", Status: "Developer", Skills: "Go,SQL"}
	errs, ok := Check(&valid)
	assert.True(t, ok)
	assert.Empty(t, errs)

	missing := ProfileForm{}
	errs, ok = Check(&missing)
	assert.False(t, ok)
	assert.Equal(t, "Handle field is required", errs["handle"])
	assert.Equal(t, "Status field is required", errs["status"])
	assert.Equal(t, "Skills field is required", errs["skills"])

	badURL := ProfileForm{Handle: "gopher", Status: "Developer", Skills: "Go", Website: "not a url"}
	errs, ok = Check(&badURL)
	assert.False(t, ok)
	assert.Equal(t, "Not a valid URL", errs["website"])
}

func TestCheck_PostForm(t *testing.T) {
	short := PostForm{Text: "too short"}
	errs, ok := Check(&short)
	assert.False(t, ok)
	assert.Equal(t, "Text must be at least 10 characters", errs["text"])

	long := PostForm{Text: "this text is comfortably over ten characters"}
	_, ok = Check(&long)
	assert.True(t, ok)
}

func TestCheck_EducationForm(t *testing.T) {
	missing := EducationForm{School: "State University"}
	errs, ok := Check(&missing)
	assert.False(t, ok)
	assert.Equal(t, "Degree field is required", errs["degree"])
	assert.Equal(t, "Fieldofstudy field is required", errs["fieldofstudy"])
	assert.Equal(t, "From field is required", errs["from"])
}

func TestCheck_ReportsFirstRulePerField(t *testing.T) {
	// required wins over min when the field is empty
	form := RegisterForm{Name: "", Email: "jane@example.com", Password: "secret123"}
	errs, ok := Check(&form)
	assert.False(t, ok)
	assert.Equal(t, "Name field is required", errs["name"])
}
