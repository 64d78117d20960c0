package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/usecase"
)

type App struct {
	Config       *config.Config
	logger       *slog.Logger
	imageUseCase usecase.ImageUseCase
}

func NewApp(cfg *config.Config,
	logger *slog.Logger,
	imageUseCase usecase.ImageUseCase) *App {
	return &App{
		Config:       cfg,
		logger:       logger,
		imageUseCase: imageUseCase,
	}
}

// LoggerIns возвращает основной логгер приложения
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает HTTP сервер и блокируется до SIGINT/SIGTERM
func (a *App) Run(ctx context.Context) error {
	// канал для graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting server", "port", a.Config.ServerPort)

	if err := runServer(ctx, a.Config, a.logger, a.imageUseCase); err != nil {
		return err
	}

	a.logger.Info("application shut down")
	return nil
}
