package password

import (
	"testing"
)

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(4)

	t.Run("HashPassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Errorf("Failed to hash password: %v", err)
		}
		if hash == "" {
			t.Error("Hash should not be empty")
		}
	})

	t.Run("HashEmptyPassword", func(t *testing.T) {
		_, err := service.HashPassword("")
		if err == nil {
			t.Error("Should fail to hash empty password")
		}
	})

	t.Run("VerifyPassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}

		if err := service.VerifyPassword(hash, "test-password-123"); err != nil {
			t.Errorf("Password should verify: %v", err)
		}
	})

	t.Run("VerifyWrongPassword", func(t *testing.T) {
		hash, err := service.HashPassword("test-password-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}

		if err := service.VerifyPassword(hash, "wrong-password"); err == nil {
			t.Error("Wrong password should not verify")
		}
	})
}
