package ports

import (
	"context"

	"github.com/GoArmGo/ImageMailer/internal/domain"
	"github.com/wneessen/go-mail"
)

// ImageURLFetcher определяет методы для получения ссылок-кандидатов из поискового API
type ImageURLFetcher interface {
	// FetchImageURLs возвращает до count ссылок в порядке релевантности.
	// Ошибки отдельных страниц логируются и не прерывают обход.
	FetchImageURLs(ctx context.Context, query string, count int) ([]string, error)
}

// ImageDownloader определяет методы для проверки и скачивания картинок
type ImageDownloader interface {
	// DownloadImages скачивает не больше target картинок, сохраняя порядок входных ссылок
	DownloadImages(ctx context.Context, urls []string, target int) []domain.DownloadedImage
}

// ImageDelivery упаковывает картинки в письмо и отправляет его
type ImageDelivery interface {
	Deliver(ctx context.Context, to, query string, images []domain.DownloadedImage, target int, asZip bool) (domain.DeliveryResult, error)
}

// MessageSender — почтовый транспорт
type MessageSender interface {
	Send(ctx context.Context, msg *mail.Msg) error
}
