package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/handler"
	"github.com/GoArmGo/ImageMailer/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter собирает маршруты сервиса
func newRouter(logger *slog.Logger, imageUseCase usecase.ImageUseCase) http.Handler {
	imageHandler := handler.NewImageHandler(imageUseCase, logger)

	r := chi.NewRouter()
	r.Use(handler.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", imageHandler.Index)
	r.Get("/ping", imageHandler.Ping)
	r.Post("/search_and_send_images", imageHandler.SearchAndSendImages)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// runServer запускает HTTP сервер и останавливает его при отмене ctx
func runServer(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	imageUseCase usecase.ImageUseCase,
) error {
	serverAddr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: newRouter(logger, imageUseCase),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка при запуске сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received, stopping server")

	// ctx уже отменён, поэтому таймаут считаем от фонового контекста
	ctxServer, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxServer); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
