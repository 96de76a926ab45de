package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Passw0rd!" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "Passw0rd!") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "Passw0rd?") {
		t.Error("wrong password accepted")
	}
	if NeedsRehash(hash) {
		t.Error("fresh bcrypt hash flagged for rehash")
	}
}

func TestVerifyLegacyHash(t *testing.T) {
	digest := sha256.Sum256([]byte("test1A$c34"))
	legacy := hex.EncodeToString(digest[:])

	if !VerifyPassword(legacy, "test1A$c34") {
		t.Error("legacy SHA-256 record rejected")
	}
	if VerifyPassword(legacy, "test1A$c35") {
		t.Error("wrong password accepted against legacy record")
	}
	if !NeedsRehash(legacy) {
		t.Error("legacy record must be flagged for rehash")
	}
}

func TestIsLegacyHashShape(t *testing.T) {
	if isLegacyHash("$2a$10$abcdefghijklmnopqrstuv") {
		t.Error("bcrypt hash misidentified as legacy")
	}
	if isLegacyHash("deadbeef") {
		t.Error("short hex string misidentified as legacy")
	}
	// 64 chars but not hex
	if isLegacyHash("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz") {
		t.Error("non-hex string misidentified as legacy")
	}
}
