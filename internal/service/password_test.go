package service

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !VerifyPassword(hash, "correct horse battery") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestVerifyPasswordEmptyHash(t *testing.T) {
	// An account with no stored hash can never log in with a password.
	if VerifyPassword("", "anything") {
		t.Error("empty stored hash accepted a password")
	}
	if VerifyPassword("", "") {
		t.Error("empty stored hash accepted an empty password")
	}
}

func TestVerifyPasswordGarbageHash(t *testing.T) {
	for _, stored := range []string{"not-a-hash", "$argon2id$bad", "$bcrypt$whatever"} {
		if VerifyPassword(stored, "anything") {
			t.Errorf("garbage hash %q accepted", stored)
		}
	}
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	b, err := HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password were identical")
	}
}
