package utils

import (
	"errors"
	"testing"
)

func TestNormalizeEmail(t *testing.T) {
	for in, want := range map[string]string{
		"Foo@Bar.com":             "foo@bar.com",
		"  Test@Example.com\n":    "test@example.com",
		"first.last+tag@un.org":   "first.last+tag@un.org",
		"ANALYST@REGIONAL.UN.ORG": "analyst@regional.un.org",
	} {
		got, err := NormalizeEmail(in)
		if err != nil {
			t.Errorf("NormalizeEmail(%q) => %v, want nil", in, err)
			continue
		}
		if got != want {
			t.Errorf("NormalizeEmail(%q) => %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeEmailInvalid(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"nobody",
		"nobody@",
		"@example.com",
		"a@b@c",
		"a b@c.d",
		"a@b\tc",
	} {
		if _, err := NormalizeEmail(in); !errors.Is(err, ErrInvalidEmail) {
			t.Errorf("NormalizeEmail(%q) => %v, want %v", in, err, ErrInvalidEmail)
		}
	}
}

func TestValidateIdentifier(t *testing.T) {
	for name, valid := range map[string]bool{
		"pu_morning_briefings": true,
		"_private":             true,
		"Schema2":              true,
		"":                     false,
		"2schema":              false,
		"pu-briefings":         false,
		"public; DROP":         false,
		"sch\u00e9ma":          false,
	} {
		err := ValidateIdentifier(name)
		if valid && err != nil {
			t.Errorf("ValidateIdentifier(%q) => %v, want nil", name, err)
		}
		if !valid && err == nil {
			t.Errorf("ValidateIdentifier(%q) => nil, want error", name)
		}
	}
}
