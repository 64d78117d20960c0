package usecase

import (
	"context"

	"github.com/GoArmGo/ImageMailer/internal/domain"
)

// ImageUseCase определяет интерфейс бизнес-логики поиска и отправки картинок
type ImageUseCase interface {
	// SearchAndSendImages ищет картинки по запросу, скачивает их и отправляет письмом.
	// Ошибка возвращается только если письмо не удалось отправить.
	SearchAndSendImages(ctx context.Context, req domain.SearchRequest) (*domain.SendResult, error)
}
