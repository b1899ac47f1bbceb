package utils

import (
	"strings"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	const plaintext = "gm — the poll is live"
	const key = "aleo1wamjpw5pqwusrh7glnqqk5rltfq0axf8dvk5g2jtn2lxrpgkyqqs0z3e2x"

	encrypted, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if encrypted == plaintext {
		t.Fatal("Ciphertext equals plaintext")
	}

	decrypted, err := Decrypt(encrypted, key)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted != plaintext {
		t.Errorf("Round trip mismatch: got %q", decrypted)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := Encrypt("secret", "right-key")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	if _, err := Decrypt(encrypted, "wrong-key"); err == nil {
		t.Error("Expected an error decrypting with the wrong key")
	}

	if _, err := Decrypt("not-base64!!", "right-key"); err == nil {
		t.Error("Expected an error decrypting garbage")
	}
}

func TestEncryptIsRandomized(t *testing.T) {
	a, err := Encrypt("same input", "same key")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt("same input", "same key")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if a == b {
		t.Error("Two encryptions of the same input produced identical ciphertext")
	}
}

func TestStringToField(t *testing.T) {
	field := StringToField("hello")

	if !strings.HasSuffix(field, "field") {
		t.Errorf("Expected field suffix, got %q", field)
	}
	hexPart := FieldToHash(field)
	if len(hexPart) != 62 {
		t.Errorf("Expected 62 hex chars, got %d", len(hexPart))
	}
	for _, c := range hexPart {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Errorf("Non-hex character %q in field value", c)
			break
		}
	}

	// Deterministic
	if StringToField("hello") != field {
		t.Error("StringToField is not deterministic")
	}
	if StringToField("hello") == StringToField("world") {
		t.Error("Distinct inputs mapped to the same field")
	}
}

func TestCommitments(t *testing.T) {
	secret, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret failed: %v", err)
	}

	commitment := CreateCommitment("vote:0", secret)
	if !VerifyCommitment("vote:0", secret, commitment) {
		t.Error("Commitment failed to verify against its own inputs")
	}
	if VerifyCommitment("vote:1", secret, commitment) {
		t.Error("Commitment verified against a different value")
	}
	if VerifyCommitment("vote:0", "other-secret", commitment) {
		t.Error("Commitment verified against a different secret")
	}
}

func TestGenerateID(t *testing.T) {
	a, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}
	b, err := GenerateID()
	if err != nil {
		t.Fatalf("GenerateID failed: %v", err)
	}

	if len(a) != 32 {
		t.Errorf("Expected 32 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("Two generated IDs collided")
	}
}
