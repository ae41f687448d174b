package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/marukota/curiomart/internal/config"
	"github.com/marukota/curiomart/internal/server/http/handlers"
	"github.com/marukota/curiomart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	lotteryHandler := handlers.NewLotteryHandler(facade)
	auctionHandler := handlers.NewAuctionHandler(facade)
	shipmentHandler := handlers.NewShipmentHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.GET("/address", addressHandler.Get)
	userAuth.PUT("/address", addressHandler.Save)
	userAuth.POST("/checkout", checkoutHandler.Checkout)
	userAuth.GET("/payments", checkoutHandler.List)
	userAuth.GET("/payments/:merchantPaymentID", checkoutHandler.Status)
	userAuth.GET("/shipments", shipmentHandler.List)
	userAuth.GET("/lottery/events", lotteryHandler.Events)
	userAuth.POST("/lottery/events/:eventID/entries", lotteryHandler.Enter)
	userAuth.GET("/lottery/entries", lotteryHandler.Entries)
	userAuth.POST("/auctions/:auctionID/bids", auctionHandler.Bid)
	userAuth.GET("/auctions/:auctionID/bids", auctionHandler.Bids)
	userAuth.DELETE("/auctions/:auctionID/bids", auctionHandler.Retract)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(cfg.AdminCode))
	admin.PATCH("/shipments/:shipmentID/status", shipmentHandler.UpdateStatus)

	return engine
}
