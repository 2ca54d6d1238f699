package validator

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationErrors map[string]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = message
}

func ValidateRegister(firstName, lastName, email, password, location, occupation string) ValidationErrors {
	errs := make(ValidationErrors)

	checkName(errs, "firstName", "First name", firstName)
	checkName(errs, "lastName", "Last name", lastName)
	checkEmail(errs, email)
	checkPassword(errs, password)
	checkName(errs, "location", "Location", location)
	checkName(errs, "occupation", "Occupation", occupation)

	return errs
}

// ValidateProfileUpdate checks the profile-fields update group. The four
// required fields are validated together; twitter and linkedin ride along.
func ValidateProfileUpdate(firstName, lastName, location, occupation, twitter, linkedin string) ValidationErrors {
	errs := make(ValidationErrors)

	checkName(errs, "firstName", "First name", firstName)
	checkName(errs, "lastName", "Last name", lastName)
	checkName(errs, "location", "Location", location)
	checkName(errs, "occupation", "Occupation", occupation)

	if len(twitter) > 20 {
		errs.Add("twitter", "Twitter handle must be at most 20 characters")
	}
	if len(linkedin) > 20 {
		errs.Add("linkedin", "LinkedIn handle must be at most 20 characters")
	}

	return errs
}

func ValidateEmailUpdate(email string) ValidationErrors {
	errs := make(ValidationErrors)
	checkEmail(errs, email)
	return errs
}

func ValidatePasswordUpdate(password string) ValidationErrors {
	errs := make(ValidationErrors)
	checkPassword(errs, password)
	return errs
}

func checkName(errs ValidationErrors, field, label, value string) {
	value = strings.TrimSpace(value)
	switch {
	case value == "":
		errs.Add(field, fmt.Sprintf("%s is required", label))
	case len(value) < 3:
		errs.Add(field, fmt.Sprintf("%s must be at least 3 characters", label))
	case len(value) > 50:
		errs.Add(field, fmt.Sprintf("%s must be at most 50 characters", label))
	}
}

func checkEmail(errs ValidationErrors, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs.Add("email", "Email is required")
	case len(email) > 50:
		errs.Add("email", "Email must be at most 50 characters")
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			errs.Add("email", "Email must be a valid email address")
		}
	}
}

func checkPassword(errs ValidationErrors, password string) {
	switch {
	case password == "":
		errs.Add("password", "Password is required")
	case len(password) < 8:
		errs.Add("password", "Password must be at least 8 characters")
	case len(password) > 50:
		errs.Add("password", "Password must be at most 50 characters")
	}
}
