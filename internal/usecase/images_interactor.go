package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoArmGo/ImageMailer/internal/core/ports"
	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/GoArmGo/ImageMailer/internal/logger"
)

// imageUseCase implements ImageUseCase
type imageUseCase struct {
	fetcher    ports.ImageURLFetcher
	downloader ports.ImageDownloader
	delivery   ports.ImageDelivery
	overfetch  int
	logger     *slog.Logger
}

// NewImageUseCase создает новый экземпляр ImageUseCase.
// overfetch — во сколько раз кандидатов запрашивается больше, чем нужно картинок.
func NewImageUseCase(
	fetcher ports.ImageURLFetcher,
	downloader ports.ImageDownloader,
	delivery ports.ImageDelivery,
	overfetch int,
	logger *slog.Logger,
) ImageUseCase {
	if overfetch < 1 {
		overfetch = 1
	}
	return &imageUseCase{
		fetcher:    fetcher,
		downloader: downloader,
		delivery:   delivery,
		overfetch:  overfetch,
		logger:     logger,
	}
}

// SearchAndSendImages: поиск ссылок -> скачивание -> упаковка и отправка
func (uc *imageUseCase) SearchAndSendImages(ctx context.Context, req domain.SearchRequest) (*domain.SendResult, error) {
	log := logger.FromContext(ctx, uc.logger)

	// 1. Ищем кандидатов с запасом на битые ссылки
	candidates := req.NumImages * uc.overfetch
	urls, err := uc.fetcher.FetchImageURLs(ctx, req.Query, candidates)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при поиске ссылок на картинки: %w", err)
	}
	log.Debug("fetched image URLs", "query", req.Query, "requested", candidates, "fetched", len(urls))

	// 2. Проверяем и скачиваем
	images := uc.downloader.DownloadImages(ctx, urls, req.NumImages)
	log.Debug("downloaded images", "query", req.Query, "downloaded", len(images))

	// 3. Упаковываем и отправляем
	res, err := uc.delivery.Deliver(ctx, req.Email, req.Query, images, req.NumImages, req.SendAsZip)
	if err != nil {
		return nil, fmt.Errorf("usecase: ошибка при отправке письма на %s: %w", req.Email, err)
	}
	log.Info("email sent", "email", req.Email, "query", req.Query, "sent", res.Sent)

	imageURLs := res.ImageURLs
	if imageURLs == nil {
		imageURLs = []string{}
	}
	return &domain.SendResult{
		Message:   fmt.Sprintf("Sent %d images for query '%s' to %s", res.Sent, req.Query, req.Email),
		ImageURLs: imageURLs,
	}, nil
}
