package auth

import (
	"testing"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	user := model.User{ID: "USR-1", Name: "Ayu", Email: "ayu@hmth.local", Role: model.RoleAdmin}

	token, err := GenerateToken(testSecret, user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != user.Role || claims.Email != user.Email {
		t.Errorf("claims = %+v, want identity %+v", claims, user)
	}
	if claims.User() != user {
		t.Errorf("Claims.User() = %+v, want %+v", claims.User(), user)
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, model.User{ID: "USR-1", Role: model.RoleStaff})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken(testSecret, "not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}
