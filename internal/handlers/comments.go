package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nebulashop/storefront/internal/catalog"
	"github.com/nebulashop/storefront/internal/models"
	"github.com/nebulashop/storefront/internal/mykafka"
	"github.com/nebulashop/storefront/internal/transport"
)

type CommentHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	JWTSecret []byte
}

func (h *CommentHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "comment_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CommentHandler) ListComments(c echo.Context) error {
	raw := c.QueryParam("productId")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Product ID is required")
	}
	productID, err := strconv.Atoi(raw)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product ID")
	}

	var comments []models.Comment
	if err := h.DB.Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	return c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req transport.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == 0 || req.Comment == "" || req.Rating == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "Rating must be between 1 and 5")
	}

	// Products live in the in-memory catalog, not the store.
	if _, ok := catalog.ByID(req.ProductID); !ok {
		return echo.NewHTTPError(http.StatusNotFound, "Product not found")
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	display := user.Name
	if display == "" {
		display = user.Email
	}

	comment := models.Comment{
		ProductID: req.ProductID,
		UserID:    user.ID,
		User:      display,
		Comment:   req.Comment,
		Rating:    req.Rating,
		CreatedAt: time.Now(),
	}
	if err := h.DB.Create(&comment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	h.publish(c, fmt.Sprint(comment.ID), map[string]any{
		"type":      "comment_created",
		"commentID": comment.ID,
		"productID": comment.ProductID,
		"rating":    comment.Rating,
	})

	return c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var comment models.Comment
	if err := h.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	// Ownership is checked against the stable author id; the stored display
	// string only serves rendering.
	if comment.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only delete your own comments")
	}

	if err := h.DB.Delete(&comment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	h.publish(c, fmt.Sprint(comment.ID), map[string]any{
		"type":      "comment_deleted",
		"commentID": comment.ID,
		"productID": comment.ProductID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Comment deleted successfully"})
}
