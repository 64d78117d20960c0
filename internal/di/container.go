package di

import (
	"github.com/GoArmGo/ImageMailer/internal/adapter/googlesearch"
	"github.com/GoArmGo/ImageMailer/internal/adapter/imagehost"
	"github.com/GoArmGo/ImageMailer/internal/adapter/mailer"
	"github.com/GoArmGo/ImageMailer/internal/app"
	"github.com/GoArmGo/ImageMailer/internal/config"
	"github.com/GoArmGo/ImageMailer/internal/logger"
	"github.com/GoArmGo/ImageMailer/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Клиенты внешних сервисов
	searchClient := googlesearch.NewClient(cfg.Search, slogger)
	downloader := imagehost.NewDownloader(cfg.Download, slogger)
	smtpSender := mailer.NewSMTPSender(cfg.SMTP, slogger)
	packager := mailer.NewPackager(cfg.SMTP, smtpSender, slogger)

	// 3. Бизнес-логика
	imageUseCase := usecase.NewImageUseCase(searchClient, downloader, packager, cfg.OverfetchMultiplier, slogger)

	// 4. Сборка итогового приложения
	application := app.NewApp(cfg, slogger, imageUseCase)

	slogger.Info("all dependencies initialized")
	return application, nil
}
