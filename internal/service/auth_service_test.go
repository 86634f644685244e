package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lipai-ops/internal/config"
	"github.com/lipai-ops/internal/constants"
	"github.com/lipai-ops/internal/models"
	"github.com/lipai-ops/internal/repository"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.UserPermission{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "auth-service-test-secret-key-0123456789"
	cfg.JWT.ExpireHours = 2

	return NewAuthService(cfg, repository.NewUserRepository(db)), db
}

func seedAuthUser(t *testing.T, db *gorm.DB, username, password string, status int) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		RealName:     "测试用户",
		UserType:     constants.UserTypeSalesman,
		Status:       status,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func TestAuthServiceLogin(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedAuthUser(t, db, "sales01", "secret123", constants.UserStatusEnabled)

	user, token, expiresAt, err := svc.Login("sales01", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("token should not be empty")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("expires at should be in the future: %v", expiresAt)
	}
	if user.LastLoginAt == nil {
		t.Fatal("last login at should be stamped")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "sales01" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthServiceLoginInvalidCredentials(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedAuthUser(t, db, "sales01", "secret123", constants.UserStatusEnabled)

	if _, _, _, err := svc.Login("sales01", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password should fail with invalid credentials, got: %v", err)
	}
	if _, _, _, err := svc.Login("nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user should fail with invalid credentials, got: %v", err)
	}
}

func TestAuthServiceLoginDisabledAccount(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	seedAuthUser(t, db, "sales01", "secret123", constants.UserStatusDisabled)

	if _, _, _, err := svc.Login("sales01", "secret123"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("disabled account should be rejected, got: %v", err)
	}
}

func TestAuthServiceParseJWTRejectsTampered(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user := seedAuthUser(t, db, "sales01", "secret123", constants.UserStatusEnabled)

	token, _, err := svc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatal("tampered token should not parse")
	}
}

func TestAuthServiceChangePassword(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user := seedAuthUser(t, db, "sales01", "secret123", constants.UserStatusEnabled)

	if err := svc.ChangePassword(user.ID, "secret123", "short"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short new password should be rejected, got: %v", err)
	}
	if err := svc.ChangePassword(user.ID, "wrong", "newsecret"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong old password should be rejected, got: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "secret123", "newsecret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.TokenVersion != user.TokenVersion+1 {
		t.Fatalf("token version should be bumped, got: %d", reloaded.TokenVersion)
	}
	if _, _, _, err := svc.Login("sales01", "newsecret"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, _, err := svc.Login("sales01", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password should no longer work, got: %v", err)
	}
}
