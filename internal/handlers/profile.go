package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nebulashop/storefront/internal/models"
)

// ProfileHandler serves the account screens. Routes are registered behind
// the auto-refresh middleware, which puts the caller id into the context.
type ProfileHandler struct {
	DB *gorm.DB
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

func contextUserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok || id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Non autorisé")
	}
	return id, nil
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := contextUserID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Utilisateur non trouvé")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Erreur serveur")
	}

	var orderCount, completedOrders int64
	if err := h.DB.Model(&models.Order{}).Where("user_id = ?", userID).Count(&orderCount).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Erreur serveur")
	}
	if err := h.DB.Model(&models.Order{}).
		Where("user_id = ? AND status = ?", userID, models.StatusDelivered).
		Count(&completedOrders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Erreur serveur")
	}

	joinYear := user.CreatedAt.Year()
	joinMonth := frenchMonths[user.CreatedAt.Month()-1]

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
			"joinDate":   fmt.Sprintf("%s %d", joinMonth, joinYear),
		},
		"stats": echo.Map{
			"orders":          orderCount,
			"completedOrders": completedOrders,
			// The cart is client-local in this design; there is no server-side
			// cart row to count.
			"cartItems": 0,
			"joinYear":  fmt.Sprint(joinYear),
		},
	})
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	userID, err := contextUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" || req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Nom et email requis")
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Utilisateur non trouvé")
	}

	if req.Email != user.Email {
		var existing models.User
		err := h.DB.Where("email = ?", req.Email).First(&existing).Error
		if err == nil {
			return echo.NewHTTPError(http.StatusConflict, "Cet email est déjà utilisé")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusInternalServerError, "Erreur serveur")
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := h.DB.Save(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Erreur serveur")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Profil mis à jour avec succès",
		"user": echo.Map{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// GetSettings returns the static defaults; a settings table never made it
// into the schema and the client treats the blob as read-mostly.
func (h *ProfileHandler) GetSettings(c echo.Context) error {
	if _, err := contextUserID(c); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"emailNotifications": true,
		"orderUpdates":       true,
		"promotions":         false,
		"newsletter":         true,

		"twoFactorAuth":  false,
		"loginAlerts":    true,
		"sessionTimeout": "30",

		"theme":       "light",
		"compactMode": false,
		"animations":  true,

		"language": "fr",
		"currency": "EUR",
		"timezone": "Europe/Paris",

		"profileVisibility": "public",
		"dataSharing":       false,
		"analytics":         true,
	})
}

func (h *ProfileHandler) UpdateSettings(c echo.Context) error {
	if _, err := contextUserID(c); err != nil {
		return err
	}

	var settings map[string]any
	if err := c.Bind(&settings); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Paramètres sauvegardés avec succès"})
}
