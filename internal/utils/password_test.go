package utils

import "testing"

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Error("hash should not equal the plaintext")
	}

	if !CheckPassword("s3cret-pass", hash) {
		t.Error("CheckPassword should accept the original password")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Error("CheckPassword should reject a wrong password")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Error("CheckPassword should reject an invalid hash")
	}
}
