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
	"ecommerce-backend/utils"
)

// @title E-commerce Auth Service
// @version 1.0
// @description Registration, login and profile lookup
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.

func main() {
	cfg, err := config.Load("auth-service")
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

	var mailer services.WelcomeMailer
	if svc, err := libs.NewEmailService(cfg); err != nil {
		log.Warn().Err(err).Msg("Welcome e-mails disabled")
	} else {
		mailer = svc
	}

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	authService := services.NewAuthService(repositories.NewUserRepository(pool), tokens, mailer)

	router := server.NewRouter(cfg, log)
	routes.SetupAuthRoutes(router, controllers.NewAuthController(authService), tokens)

	if err := server.Run(cfg, router, log, pool.Close); err != nil {
		server.Fatal(log, err, "Server error")
	}
}
