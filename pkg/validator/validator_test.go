package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		firstName  string
		lastName   string
		email      string
		password   string
		location   string
		occupation string
		wantFields []string
	}{
		{
			name:      "valid",
			firstName: "Ana", lastName: "Silva", email: "ana@example.com",
			password: "Sup3rSecret", location: "Porto", occupation: "Designer",
		},
		{
			name:       "all required missing",
			wantFields: []string{"firstName", "lastName", "email", "password", "location", "occupation"},
		},
		{
			name:      "short names",
			firstName: "Al", lastName: "Bo", email: "a@b.com",
			password: "Sup3rSecret", location: "Rio", occupation: "Dev",
			wantFields: []string{"firstName", "lastName"},
		},
		{
			name:      "long field",
			firstName: strings.Repeat("a", 51), lastName: "Silva", email: "a@b.com",
			password: "Sup3rSecret", location: "Porto", occupation: "Dev",
			wantFields: []string{"firstName"},
		},
		{
			name:      "bad email",
			firstName: "Ana", lastName: "Silva", email: "not-an-email",
			password: "Sup3rSecret", location: "Porto", occupation: "Dev",
			wantFields: []string{"email"},
		},
		{
			name:      "email too long",
			firstName: "Ana", lastName: "Silva",
			email:    strings.Repeat("a", 45) + "@example.com",
			password: "Sup3rSecret", location: "Porto", occupation: "Dev",
			wantFields: []string{"email"},
		},
		{
			name:      "short password",
			firstName: "Ana", lastName: "Silva", email: "a@b.com",
			password: "short", location: "Porto", occupation: "Dev",
			wantFields: []string{"password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateRegister(tt.firstName, tt.lastName, tt.email, tt.password, tt.location, tt.occupation)

			assert.Equal(t, len(tt.wantFields) > 0, errs.HasErrors())
			assert.Len(t, errs, len(tt.wantFields))
			for _, field := range tt.wantFields {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateProfileUpdate(t *testing.T) {
	t.Parallel()

	errs := ValidateProfileUpdate("Ana", "Silva", "Porto", "Designer", "@ana", "in/ana")
	assert.False(t, errs.HasErrors())

	errs = ValidateProfileUpdate("Ana", "Silva", "Porto", "Designer", strings.Repeat("x", 21), "")
	assert.Contains(t, errs, "twitter")

	errs = ValidateProfileUpdate("Ana", "Silva", "Porto", "Designer", "", strings.Repeat("x", 21))
	assert.Contains(t, errs, "linkedin")
}

func TestValidateEmailAndPasswordUpdate(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidateEmailUpdate("ana@example.com").HasErrors())
	assert.Contains(t, ValidateEmailUpdate("nope"), "email")

	assert.False(t, ValidatePasswordUpdate("longEnough1").HasErrors())
	assert.Contains(t, ValidatePasswordUpdate("tiny"), "password")
	assert.Contains(t, ValidatePasswordUpdate(strings.Repeat("p", 51)), "password")
}
