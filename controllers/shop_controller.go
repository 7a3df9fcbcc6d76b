package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/furylabs/furycell/config"
	"github.com/furylabs/furycell/services"
	"github.com/furylabs/furycell/utils"
)

// ShopController exposes the static catalog and purchase/equip operations.
type ShopController struct {
	shop        *services.ShopService
	progression *services.Progression
	activity    *services.ActivityLog
}

// NewShopController creates a new controller instance.
func NewShopController(shop *services.ShopService, progression *services.Progression, activity *services.ActivityLog) *ShopController {
	return &ShopController{shop: shop, progression: progression, activity: activity}
}

// GetShop returns the catalog together with the profile, so clients can show
// ownership and affordability.
func (s *ShopController) GetShop(ctx *gin.Context) {
	profile, err := s.progression.EnsureProfile()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to load profile")
		return
	}
	utils.Success(ctx, gin.H{
		"items":   config.ShopCatalog,
		"profile": profile,
	})
}

// Purchase buys an item by identifier.
func (s *ShopController) Purchase(ctx *gin.Context) {
	itemID := ctx.Param("itemId")

	msg, err := s.shop.Purchase(itemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			utils.Error(ctx, http.StatusNotFound, 40403, "item not found")
		case errors.Is(err, services.ErrAlreadyOwned):
			utils.Error(ctx, http.StatusBadRequest, 40009, "you already own this item")
		case errors.Is(err, services.ErrInsufficientCoins):
			utils.Error(ctx, http.StatusBadRequest, 40010, "insufficient coins")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50004, "purchase failed")
		}
		return
	}

	s.activity.Append("Purchased item", itemID)
	utils.Info(ctx, msg, nil)
}

// Equip activates an owned theme.
func (s *ShopController) Equip(ctx *gin.Context) {
	itemID := ctx.Param("itemId")

	msg, err := s.shop.Equip(itemID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotOwned):
			utils.Error(ctx, http.StatusBadRequest, 40011, "you do not own this item")
		case errors.Is(err, services.ErrNotEquippable):
			utils.Error(ctx, http.StatusBadRequest, 40012, "this item cannot be equipped")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50004, "equip failed")
		}
		return
	}

	utils.Info(ctx, msg, nil)
}
