package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nebulashop/storefront/internal/models"
)

func TestGetProfile(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	delivered := models.Order{UserID: &user.ID, Email: user.Email, Status: models.StatusDelivered, CreatedAt: time.Now()}
	pending := models.Order{UserID: &user.ID, Email: user.Email, Status: models.StatusProcessing, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&delivered).Error)
	require.NoError(t, db.Create(&pending).Error)

	rec, c := doJSONRequest(t, http.MethodGet, "/api/v1/profile", nil)
	c.Set("userID", user.ID)
	require.NoError(t, h.GetProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
		Stats struct {
			Orders          int64 `json:"orders"`
			CompletedOrders int64 `json:"completedOrders"`
			CartItems       int   `json:"cartItems"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Alice", resp.User.Name)
	require.Equal(t, int64(2), resp.Stats.Orders)
	require.Equal(t, int64(1), resp.Stats.CompletedOrders)
	require.Zero(t, resp.Stats.CartItems)
}

func TestGetProfileUnauthenticated(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}

	_, c := doJSONRequest(t, http.MethodGet, "/api/v1/profile", nil)
	he := httpError(t, h.GetProfile(c))
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestUpdateProfile(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	rec, c := doJSONRequest(t, http.MethodPut, "/api/v1/profile",
		map[string]string{"name": "Alice B", "email": "aliceb@example.com"})
	c.Set("userID", user.ID)
	require.NoError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	require.Equal(t, "Alice B", updated.Name)
	require.Equal(t, "aliceb@example.com", updated.Email)
}

func TestUpdateProfileMissingFields(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	_, c := doJSONRequest(t, http.MethodPut, "/api/v1/profile",
		map[string]string{"name": "Alice"})
	c.Set("userID", user.ID)
	he := httpError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "Nom et email requis", he.Message)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}
	alice := createUser(t, db, "Alice", "alice@example.com", "password")
	createUser(t, db, "Bob", "bob@example.com", "password")

	_, c := doJSONRequest(t, http.MethodPut, "/api/v1/profile",
		map[string]string{"name": "Alice", "email": "bob@example.com"})
	c.Set("userID", alice.ID)
	he := httpError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusConflict, he.Code)
	require.Equal(t, "Cet email est déjà utilisé", he.Message)

	var unchanged models.User
	require.NoError(t, db.First(&unchanged, alice.ID).Error)
	require.Equal(t, "alice@example.com", unchanged.Email)
}

func TestUpdateProfileKeepOwnEmail(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	rec, c := doJSONRequest(t, http.MethodPut, "/api/v1/profile",
		map[string]string{"name": "Alice Renamed", "email": "alice@example.com"})
	c.Set("userID", user.ID)
	require.NoError(t, h.UpdateProfile(c))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	db := InitTestDB(t)
	h := &ProfileHandler{DB: db}
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	rec, c := doJSONRequest(t, http.MethodGet, "/api/v1/settings", nil)
	c.Set("userID", user.ID)
	require.NoError(t, h.GetSettings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var settings map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	require.Equal(t, "fr", settings["language"])
	require.Equal(t, "EUR", settings["currency"])

	rec, c = doJSONRequest(t, http.MethodPut, "/api/v1/settings",
		map[string]any{"theme": "dark"})
	c.Set("userID", user.ID)
	require.NoError(t, h.UpdateSettings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var ack map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	require.Equal(t, "Paramètres sauvegardés avec succès", ack["message"])
}
