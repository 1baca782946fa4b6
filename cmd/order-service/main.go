package main

import (
	"context"

	"ecommerce-backend/config"
	"ecommerce-backend/controllers"
	_ "ecommerce-backend/docs"
	"ecommerce-backend/libs"
	"ecommerce-backend/logging"
	"ecommerce-backend/repositories"
	"ecommerce-backend/routes"
	"ecommerce-backend/server"
	"ecommerce-backend/services"

	"github.com/shopspring/decimal"
)

// @title E-commerce Order Service
// @version 1.0
// @description Shopping carts and orders
// @BasePath /api

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load("order-service")
	if err != nil {
		server.Fatal(logging.Base(), err, "Failed to load config")
	}
	log := logging.Init(cfg.App.Name, cfg.Log.Level, cfg.Log.File)

	pool, err := config.ConnectDB(context.Background(), cfg)
	if err != nil {
		server.Fatal(log, err, "Failed to connect to database")
	}
	if err := config.RunMigrations(cfg); err != nil {
		server.Fatal(log, err, "Failed to run migrations")
	}

	store := repositories.NewPgStore(pool)
	catalog := libs.NewProductClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	log.Info().Str("catalog", cfg.Catalog.BaseURL).Msg("Product catalog client ready")

	router := server.NewRouter(cfg, log)
	routes.SetupOrderRoutes(
		router,
		controllers.NewCartController(services.NewCartService(store, catalog)),
		controllers.NewOrderController(services.NewOrderService(store)),
	)

	if err := server.Run(cfg, router, log, pool.Close); err != nil {
		server.Fatal(log, err, "Server error")
	}
}
