package main

import (
	"context"

	"ecommerce-backend/cache"
	"ecommerce-backend/config"
	"ecommerce-backend/controllers"
	_ "ecommerce-backend/docs"
	"ecommerce-backend/libs"
	"ecommerce-backend/logging"
	"ecommerce-backend/repositories"
	"ecommerce-backend/routes"
	"ecommerce-backend/server"
	"ecommerce-backend/services"
	"ecommerce-backend/utils"

	"github.com/shopspring/decimal"
)

// @title E-commerce Product Service
// @version 1.0
// @description Product catalog and categories
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load("product-service")
	if err != nil {
		server.Fatal(logging.Base(), err, "Failed to load config")
	}
	log := logging.Init(cfg.App.Name, cfg.Log.Level, cfg.Log.File)

	ctx := context.Background()
	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		server.Fatal(log, err, "Failed to connect to database")
	}
	if err := config.RunMigrations(cfg); err != nil {
		server.Fatal(log, err, "Failed to run migrations")
	}
	closers := []func(){pool.Close}

	var productCache, categoryCache cache.Cache = cache.Nop{}, cache.Nop{}
	if rdb, err := config.ConnectRedis(ctx, cfg); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
	} else {
		productCache = cache.NewRedisCache(rdb, "products", cfg.Cache.TTL)
		categoryCache = cache.NewRedisCache(rdb, "categories", cfg.Cache.TTL)
		closers = append(closers, func() { _ = rdb.Close() })
	}

	var images services.ImageStorage
	if cld, err := libs.NewCloudinaryService(cfg); err != nil {
		log.Warn().Err(err).Msg("Image uploads disabled")
	} else {
		images = cld
	}

	products := repositories.NewProductRepository(pool)
	categories := repositories.NewCategoryRepository(pool)
	productService := services.NewProductService(products, categories, productCache, images)
	categoryService := services.NewCategoryService(categories, categoryCache, productCache)

	router := server.NewRouter(cfg, log)
	routes.SetupProductRoutes(
		router,
		controllers.NewProductController(productService),
		controllers.NewCategoryController(categoryService),
		utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry),
	)

	if err := server.Run(cfg, router, log, closers...); err != nil {
		server.Fatal(log, err, "Server error")
	}
}
