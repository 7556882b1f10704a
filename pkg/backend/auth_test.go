package backend

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "" {
		t.Fatal("hash is empty")
	}
	if !IsBcryptHash(hash) {
		t.Fatalf("hash %q is not a bcrypt hash", hash)
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("hashes of the same password are equal")
	}
}

func TestHashPasswordInvalid(t *testing.T) {
	if _, err := HashPassword(""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("HashPassword(\"\") => %v, want %v", err, ErrEmptyPassword)
	}
	long := strings.Repeat("a", MaxPasswordLength+1)
	if _, err := HashPassword(long); !errors.Is(err, ErrPasswordTooLong) {
		t.Errorf("HashPassword(long) => %v, want %v", err, ErrPasswordTooLong)
	}
	if err := ValidatePassword(strings.Repeat("a", MaxPasswordLength)); err != nil {
		t.Errorf("ValidatePassword(72 bytes) => %v, want nil", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("password")
	if err != nil {
		t.Fatal(err)
	}
	if !VerifyPassword("password", hash) {
		t.Fatal("password did not verify")
	}
	if VerifyPassword("wrong", hash) {
		t.Fatal("wrong password verified")
	}
	if VerifyPassword("password", "password") {
		t.Fatal("plaintext hash verified")
	}
}

func TestIsBcryptHash(t *testing.T) {
	for hash, want := range map[string]bool{
		"$2a$10$abcdefghijklmnopqrstuv": true,
		"$2b$12$abcdefghijklmnopqrstuv": true,
		"secret123":                     false,
		"":                              false,
	} {
		if got := IsBcryptHash(hash); got != want {
			t.Errorf("IsBcryptHash(%q) => %v, want %v", hash, got, want)
		}
	}
}
