package api

import (
	"log/slog"
	"net/http"

	"github.com/truongtuankiet1/AIFlashCard/internal/api/shared"
	"github.com/truongtuankiet1/AIFlashCard/internal/platform/logger"
	"github.com/truongtuankiet1/AIFlashCard/internal/service/shop"
)

// PurchaseRequest represents the request body for buying a shop item.
type PurchaseRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// EquipPetRequest represents the request body for activating an owned pet.
type EquipPetRequest struct {
	PetID string `json:"pet_id" validate:"required"`
}

// EquipSkinRequest represents the request body for dressing the active pet.
// An empty skin ID reverts the pet to its default look.
type EquipSkinRequest struct {
	SkinID string `json:"skin_id"`
}

// RedeemRequest represents the request body for redeeming a promo code.
type RedeemRequest struct {
	Code string `json:"code" validate:"required"`
}

// EquipResponse acknowledges a successful equip operation.
type EquipResponse struct {
	Success bool `json:"success"`
}

// ShopHandler handles shop-related HTTP requests
type ShopHandler struct {
	shopService shop.Service
	logger      *slog.Logger
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService shop.Service, logger *slog.Logger) *ShopHandler {
	if shopService == nil {
		panic("shopService cannot be nil for ShopHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ShopHandler")
	}

	return &ShopHandler{
		shopService: shopService,
		logger:      logger.With(slog.String("component", "shop_handler")),
	}
}

// ListItems handles GET /shop/items requests.
func (h *ShopHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shopService.ListItems(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list shop items", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// Purchase handles POST /shop/purchase requests.
func (h *ShopHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req PurchaseRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	result, err := h.shopService.Purchase(r.Context(), userID, req.ItemID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to complete purchase"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// EquipPet handles POST /shop/equip-pet requests.
func (h *ShopHandler) EquipPet(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req EquipPetRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	if err := h.shopService.EquipPet(r.Context(), userID, req.PetID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to equip pet"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EquipResponse{Success: true})
}

// EquipSkin handles POST /shop/equip-skin requests.
func (h *ShopHandler) EquipSkin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req EquipSkinRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	if err := h.shopService.EquipSkin(r.Context(), userID, req.SkinID); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to equip skin"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, EquipResponse{Success: true})
}

// Inventory handles GET /shop/inventory requests.
func (h *ShopHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	result, err := h.shopService.Inventory(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load inventory"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// RedeemPromo handles POST /promo/redeem requests.
func (h *ShopHandler) RedeemPromo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	var req RedeemRequest
	if !decodeRequest(w, r, &req, log) {
		return
	}

	result, err := h.shopService.RedeemPromo(r.Context(), userID, req.Code)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to redeem code"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
