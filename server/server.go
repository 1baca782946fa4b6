package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce-backend/config"
	"ecommerce-backend/middleware"
	"ecommerce-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 30 * time.Second

// NewRouter builds the engine with the middleware chain shared by all services
// and the health, metrics and swagger routes.
func NewRouter(cfg *config.Config, log *zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(log),
		middleware.Logger(),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.CORS.Origins),
	)
	routes.SetupCommonRoutes(router, cfg.App.Name)
	return router
}

// Run serves handler on the configured port until SIGINT or SIGTERM, then
// drains in-flight requests and calls each closer in order.
func Run(cfg *config.Config, handler http.Handler, log *zerolog.Logger, closers ...func()) error {
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("env", cfg.App.Env).
			Msgf("Swagger UI: http://localhost:%s/swagger/index.html", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	for _, closeFn := range closers {
		closeFn()
	}
	if err != nil {
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}

// Fatal logs err and exits.
func Fatal(log *zerolog.Logger, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	os.Exit(1)
}
