package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nebulashop/storefront/internal/models"
	"github.com/nebulashop/storefront/internal/mykafka"
	"github.com/nebulashop/storefront/internal/transport"
)

func newCommentHandler(db *gorm.DB) *CommentHandler {
	return &CommentHandler{DB: db, Producer: &mykafka.Producer{}, JWTSecret: testJWTSecret}
}

func TestListCommentsRequiresProductID(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)

	_, c := doJSONRequest(t, http.MethodGet, "/api/v1/comments", nil)
	he := httpError(t, h.ListComments(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "Product ID is required", he.Message)
}

func TestListCommentsNewestFirst(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)

	older := models.Comment{ProductID: 1, UserID: 1, User: "bob", Comment: "ok", Rating: 3, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Comment{ProductID: 1, UserID: 2, User: "alice", Comment: "great", Rating: 5, CreatedAt: time.Now()}
	unrelated := models.Comment{ProductID: 2, UserID: 1, User: "bob", Comment: "meh", Rating: 2, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&unrelated).Error)

	rec, c := doJSONRequest(t, http.MethodGet, "/api/v1/comments?productId=1", nil)
	require.NoError(t, h.ListComments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "alice", resp[0].User)
	require.Equal(t, "bob", resp[1].User)
}

func TestCreateComment(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	rec, c := doJSONRequest(t, http.MethodPost, "/api/v1/comments",
		transport.CreateCommentRequest{ProductID: 1, Comment: "Excellente carte", Rating: 5},
		accessCookie(t, user.ID))
	require.NoError(t, h.CreateComment(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Alice", resp.User)
	require.Equal(t, user.ID, resp.UserID)
	require.Equal(t, 5, resp.Rating)
}

func TestCreateCommentValidation(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	_, c := doJSONRequest(t, http.MethodPost, "/api/v1/comments",
		transport.CreateCommentRequest{ProductID: 1, Rating: 5}, accessCookie(t, user.ID))
	he := httpError(t, h.CreateComment(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "Missing required fields", he.Message)

	_, c = doJSONRequest(t, http.MethodPost, "/api/v1/comments",
		transport.CreateCommentRequest{ProductID: 1, Comment: "x", Rating: 6}, accessCookie(t, user.ID))
	he = httpError(t, h.CreateComment(c))
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "Rating must be between 1 and 5", he.Message)
}

func TestCreateCommentUnknownProduct(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)
	user := createUser(t, db, "Alice", "alice@example.com", "password")

	_, c := doJSONRequest(t, http.MethodPost, "/api/v1/comments",
		transport.CreateCommentRequest{ProductID: 999, Comment: "x", Rating: 4},
		accessCookie(t, user.ID))
	he := httpError(t, h.CreateComment(c))
	require.Equal(t, http.StatusNotFound, he.Code)
	require.Equal(t, "Product not found", he.Message)
}

func TestCreateCommentUnauthenticated(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)

	_, c := doJSONRequest(t, http.MethodPost, "/api/v1/comments",
		transport.CreateCommentRequest{ProductID: 1, Comment: "x", Rating: 4})
	he := httpError(t, h.CreateComment(c))
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestDeleteCommentNotAuthor(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)
	alice := createUser(t, db, "alice", "alice@example.com", "password")
	bob := createUser(t, db, "bob", "bob@example.com", "password")

	comment := models.Comment{ProductID: 1, UserID: bob.ID, User: "bob", Comment: "mine", Rating: 4, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&comment).Error)

	_, c := doJSONRequest(t, http.MethodDelete, "/api/v1/comments/1", nil, accessCookie(t, alice.ID))
	c.SetParamNames("id")
	c.SetParamValues("1")

	he := httpError(t, h.DeleteComment(c))
	require.Equal(t, http.StatusForbidden, he.Code)
	require.Equal(t, "You can only delete your own comments", he.Message)

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	require.Equal(t, int64(1), count)
}

func TestDeleteCommentByAuthor(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)
	bob := createUser(t, db, "bob", "bob@example.com", "password")

	comment := models.Comment{ProductID: 1, UserID: bob.ID, User: "bob", Comment: "mine", Rating: 4, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&comment).Error)

	rec, c := doJSONRequest(t, http.MethodDelete, "/api/v1/comments/1", nil, accessCookie(t, bob.ID))
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.DeleteComment(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	require.Zero(t, count)
}

func TestDeleteCommentNotFound(t *testing.T) {
	db := InitTestDB(t)
	h := newCommentHandler(db)
	bob := createUser(t, db, "bob", "bob@example.com", "password")

	_, c := doJSONRequest(t, http.MethodDelete, "/api/v1/comments/9", nil, accessCookie(t, bob.ID))
	c.SetParamNames("id")
	c.SetParamValues("9")

	he := httpError(t, h.DeleteComment(c))
	require.Equal(t, http.StatusNotFound, he.Code)
	require.Equal(t, "Comment not found", he.Message)
}
