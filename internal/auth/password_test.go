package auth

import "testing"

func TestVerifyPasswordPlaintext(t *testing.T) {
	// Legacy roster credentials are stored in the clear.
	if !VerifyPassword("Misty123", "Misty123") {
		t.Error("matching plaintext should verify")
	}
	if VerifyPassword("Misty123", "misty123") {
		t.Error("plaintext comparison is case-sensitive")
	}
	if VerifyPassword("Misty123", "") {
		t.Error("empty candidate should fail")
	}
}

func TestVerifyPasswordHashed(t *testing.T) {
	hash, err := HashPassword("nouveau1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "nouveau1" {
		t.Fatal("hash should not equal the input")
	}
	if !isBcryptHash(hash) {
		t.Fatalf("unexpected hash format: %q", hash)
	}

	if !VerifyPassword(hash, "nouveau1") {
		t.Error("correct password should verify against its hash")
	}
	if VerifyPassword(hash, "autre") {
		t.Error("wrong password should fail against the hash")
	}
	// The literal hash string must never work as a password.
	if VerifyPassword(hash, hash) {
		t.Error("hash used as candidate should fail")
	}
}

func TestIsBcryptHash(t *testing.T) {
	tests := []struct {
		stored string
		want   bool
	}{
		{"$2a$10$abcdefghijklmnopqrstuv", true},
		{"$2b$12$abcdefghijklmnopqrstuv", true},
		{"$2y$10$abcdefghijklmnopqrstuv", true},
		{"Misty123", false},
		{"", false},
		{"$1$old-md5-crypt", false},
	}
	for _, tt := range tests {
		if got := isBcryptHash(tt.stored); got != tt.want {
			t.Errorf("isBcryptHash(%q) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}
