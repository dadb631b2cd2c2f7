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

	"github.com/nebulashop/storefront/internal/models"
	"github.com/nebulashop/storefront/internal/mykafka"
	"github.com/nebulashop/storefront/internal/transport"
)

type OrderHandler struct {
	DB        *gorm.DB
	Producer  *mykafka.Producer
	JWTSecret []byte

	// Tracker is notified of every order worth auto-progressing. Optional.
	Tracker interface{ Track(orderID uint) }
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// ApplyStatus moves an order into status and stamps the matching timestamp.
// Re-entering a state re-stamps it; the timestamp tracks the latest entry.
func ApplyStatus(db *gorm.DB, order *models.Order, status string) error {
	now := time.Now()
	order.Status = status
	switch status {
	case models.StatusShipped:
		order.ShippedAt = &now
	case models.StatusDelivered:
		order.DeliveredAt = &now
	case models.StatusCancelled:
		order.CancelledAt = &now
	}
	return db.Save(order).Error
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	required := []struct {
		name  string
		value string
	}{
		{"email", req.Email},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"address", req.Address},
		{"city", req.City},
		{"postalCode", req.PostalCode},
		{"country", req.Country},
		{"paymentMethod", req.PaymentMethod},
	}
	for _, f := range required {
		if f.value == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing field: "+f.name)
		}
	}
	requiredAmounts := []struct {
		name  string
		value *float64
	}{
		{"shippingPrice", req.ShippingPrice},
		{"subtotal", req.Subtotal},
		{"total", req.Total},
	}
	for _, f := range requiredAmounts {
		if f.value == nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Missing field: "+f.name)
		}
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Order must contain at least one item")
	}

	// Guest checkout is allowed: a missing session leaves the order unowned.
	var userID *uint
	if id, err := GetID(c, h.JWTSecret); err == nil {
		userID = &id
	}

	order := models.Order{
		UserID:               userID,
		Email:                req.Email,
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Address:              req.Address,
		Apartment:            req.Apartment,
		City:                 req.City,
		PostalCode:           req.PostalCode,
		Country:              req.Country,
		PaymentMethod:        req.PaymentMethod,
		NameOnCard:           req.NameOnCard,
		CardNumber:           req.CardNumber,
		Expiry:               req.Expiry,
		CVC:                  req.CVC,
		RememberMe:           req.RememberMe,
		UseShippingAsBilling: req.UseShippingAsBilling,
		Status:               models.StatusProcessing,
		ShippingPrice:        *req.ShippingPrice,
		Subtotal:             *req.Subtotal,
		Total:                *req.Total,
		CreatedAt:            time.Now(),
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, it := range req.Items {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				Title:     it.Title,
				ImageURL:  it.ImageURL,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+txErr.Error())
	}

	if h.Tracker != nil {
		h.Tracker.Track(order.ID)
	}

	h.publish(c, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.Total,
	})

	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "orderId": order.ID})
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	// Unauthenticated callers get an empty list, not an error.
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{"orders": []transport.OrderView{}})
	}

	var rows []models.Order
	if err := h.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Items").
		Find(&rows).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	orders := make([]transport.OrderView, 0, len(rows))
	for _, o := range rows {
		view := transport.OrderView{
			ID:          fmt.Sprintf("ORD-%06d", o.ID),
			DBID:        o.ID,
			Date:        o.CreatedAt.Format(time.RFC3339),
			Total:       o.Total,
			Status:      o.Status,
			ShippedAt:   isoTime(o.ShippedAt),
			DeliveredAt: isoTime(o.DeliveredAt),
			CancelledAt: isoTime(o.CancelledAt),
			Items:       make([]transport.OrderItemView, 0, len(o.Items)),
		}
		for _, it := range o.Items {
			view.Items = append(view.Items, transport.OrderItemView{
				Title:    it.Title,
				ImageURL: it.ImageURL,
				Quantity: it.Quantity,
				Price:    it.Price,
			})
		}
		orders = append(orders, view)
	}

	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req transport.DeleteOrderRequest
	if err := c.Bind(&req); err != nil || req.OrderID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing or invalid orderId")
	}

	var order models.Order
	if err := h.DB.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found or not authorized")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}
	if order.UserID == nil || *order.UserID != userID {
		return echo.NewHTTPError(http.StatusNotFound, "Order not found or not authorized")
	}

	// Items must not outlive their parent row.
	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if txErr != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+txErr.Error())
	}

	h.publish(c, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_deleted",
		"orderID": order.ID,
		"userID":  userID,
	})

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": "Order deleted successfully"})
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	userID, err := GetID(c, h.JWTSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if !models.ValidStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid status")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	// Owned orders may only be moved by their owner. Guest orders have no
	// owner to compare against and stay open to any authenticated caller.
	if order.UserID != nil && *order.UserID != userID {
		return echo.NewHTTPError(http.StatusForbidden, "You can only update your own orders")
	}

	if err := ApplyStatus(h.DB, &order, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error: "+err.Error())
	}

	h.publish(c, fmt.Sprint(order.ID), map[string]any{
		"type":    "order_status_changed",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "id": order.ID, "status": order.Status})
}

func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
