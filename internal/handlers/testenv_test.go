package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nebulashop/storefront/internal/hash"
	"github.com/nebulashop/storefront/internal/models"
	"github.com/nebulashop/storefront/internal/service/token"
)

var (
	testJWTSecret     = []byte("test_jwt_secret")
	testRefreshSecret = []byte("test_refresh_secret")
)

func InitTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Order{},
		&models.OrderItem{},
		&models.Comment{},
		&models.PasswordResetToken{},
	); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, password string) models.User {
	hashed, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func accessCookie(t *testing.T, userID uint) *http.Cookie {
	signed, err := token.SignAccessToken(userID, testJWTSecret)
	require.NoError(t, err)
	return &http.Cookie{Name: "accessToken", Value: signed, Path: "/"}
}

func doJSONRequest(t *testing.T, method, target string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	e := echo.New()
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func httpError(t *testing.T, err error) *echo.HTTPError {
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he
}
