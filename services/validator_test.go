package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"a@b", true},
		{"", false},
		{"plainaddress", false},
		{"@example.com", false},
		{"user@", false},
		{"user@@example.com", false},
		{"user@foo@bar", false},
	}

	for _, c := range cases {
		assert.Equal(t, c.valid, ValidateEmail(c.email), "email %q", c.email)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Abcdefg123", false}, // only one uppercase
		{"ABcdefgh12", true},
		{"ABcdefg1", false},     // too short
		{"ABcdefghij", false},   // no digits
		{"ABcdefghi1", false},   // one digit
		{"abcdefgh12", false},   // no uppercase
		{"PassWord2024", true},
		{"12AB12ab12AB", true},
	}

	for _, c := range cases {
		assert.Equal(t, c.valid, ValidatePasswordStrength(c.password), "password %q", c.password)
	}
}
