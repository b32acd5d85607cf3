package model

import (
	"regexp"
	"strings"
)

// ContactProfile is the visitor's contact card. Unlike the list
// collections it is a singleton: saving overwrites the previous value.
type ContactProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Deliberately loose: local@domain-with-a-dot, nothing close to full RFC.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (c ContactProfile) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name is required")
	}
	e := strings.TrimSpace(c.Email)
	if e == "" {
		return invalid("email is required")
	}
	if !emailRe.MatchString(e) {
		return invalid("email must look like name@example.com")
	}
	return nil
}

// ParseContactProfile builds an unvalidated ContactProfile from raw fields.
func ParseContactProfile(name, email string) ContactProfile {
	return ContactProfile{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}
}
