package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/umojahub/umoja/backend/internal/access"
	"github.com/umojahub/umoja/backend/internal/config"
	"github.com/umojahub/umoja/backend/internal/models"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: time.Hour}
	return NewAuthService(db, cfg), db
}

func createUser(t *testing.T, db *gorm.DB, email, password string) models.User {
	t.Helper()
	user := models.User{Email: email, Name: "Test User", Role: string(access.RoleCountryAdmin), Country: "Kenya"}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAuthService_Login(t *testing.T) {
	svc, db := setupAuthService(t)
	createUser(t, db, "test@example.com", "password123")

	token, err := svc.Login("test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_Suspended(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createUser(t, db, "test@example.com", "password123")
	require.NoError(t, db.Model(&user).Update("suspended", true).Error)

	_, err := svc.Login("test@example.com", "password123")
	assert.ErrorIs(t, err, ErrAccountSuspended)
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createUser(t, db, "test@example.com", "password123")

	token, err := svc.Login("test@example.com", "password123")
	require.NoError(t, err)

	verified, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	// The resolved context carries the profile's role and scope.
	ctx := verified.AdminContext()
	assert.Equal(t, access.RoleCountryAdmin, ctx.Role)
	assert.Equal(t, "Kenya", ctx.Country)

	_, err = svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_EmptySecretVerifiesNothing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	user := createUser(t, db, "test@example.com", "password123")

	svc := NewAuthService(db, config.Config{JWTSecret: "", TokenTTL: time.Hour})

	// A token minted with the empty string must never resolve to an identity.
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = svc.VerifyToken(forged)
	assert.ErrorIs(t, err, ErrNoSigningKey)

	// Nor does an unkeyed service issue tokens.
	_, err = svc.Login("test@example.com", "password123")
	assert.ErrorIs(t, err, ErrNoSigningKey)
}

func TestAuthService_ForeignKeyTokenRejected(t *testing.T) {
	svc, db := setupAuthService(t)
	user := createUser(t, db, "test@example.com", "password123")

	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
