package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/truongtuankiet1/AIFlashCard/internal/api"
	apiMiddleware "github.com/truongtuankiet1/AIFlashCard/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	reviewHandler := api.NewReviewHandler(app.reviewService, app.logger)
	progressionHandler := api.NewProgressionHandler(app.progressionService, app.logger)
	shopHandler := api.NewShopHandler(app.shopService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(apiMiddleware.IdentityMiddleware)

		// Review schedule endpoints
		r.Post("/reviews", reviewHandler.SubmitReview)
		r.Get("/reviews/due-count", reviewHandler.DueCount)

		// Session and gamification endpoints
		r.Post("/sessions/complete", progressionHandler.CompleteSession)
		r.Get("/status", progressionHandler.Status)
		r.Post("/pet/interact", progressionHandler.Interact)

		// Shop endpoints
		r.Get("/shop/items", shopHandler.ListItems)
		r.Get("/shop/inventory", shopHandler.Inventory)
		r.Post("/shop/purchase", shopHandler.Purchase)
		r.Post("/shop/equip-pet", shopHandler.EquipPet)
		r.Post("/shop/equip-skin", shopHandler.EquipSkin)
		r.Post("/promo/redeem", shopHandler.RedeemPromo)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
