package service

import "testing"

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"a@test.com", true},
		{"admintest@test.com", true},
		{"john.doe@example.org", true},
		{"jo_hn@example.org", true},
		{"", false},
		{"no-at-sign.com", false},
		{"Upper@test.com", false},
		{"a@test", false},
		{"@test.com", false},
		{"user@.com", false},
	}
	for _, tc := range cases {
		if got := validEmail(tc.email); got != tc.want {
			t.Errorf("validEmail(%q) = %v, want %v", tc.email, got, tc.want)
		}
	}
}

func TestValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Passw0rd!", true},
		{"test1A$c34", true},
		{"Aa1!Aa1!", true},             // exactly 8
		{"Aa1!Aa1!Aa1!Aa1!", true},     // exactly 16
		{"Aa1!Aa1", false},             // too short
		{"Aa1!Aa1!Aa1!Aa1!x", false},   // too long
		{"passw0rd!", false},           // no uppercase
		{"PASSW0RD!", false},           // no lowercase
		{"Password!", false},           // no digit
		{"Passw0rd1", false},           // no symbol
		{"Passw0rd_", false},           // underscore is a word char, not a symbol
		{"Pass w0rd!", false},          // contains a space
		{"", false},
	}
	for _, tc := range cases {
		if got := validPassword(tc.password); got != tc.want {
			t.Errorf("validPassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
